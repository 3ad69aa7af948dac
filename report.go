package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"tarcog/tarcog"
)

// 表面ごとの計算結果
type SurfaceRecord struct {
	Run            string  `csv:"run"`
	Solid          int     `csv:"solid"`           // 室外側からの固体層番号
	Side           string  `csv:"side"`            // front: 室外側, back: 室内側
	Temperature    float64 `csv:"temperature"`     // 表面温度, K
	Radiosity      float64 `csv:"radiosity"`       // ラジオシティ, W/m2
	MeanDeflection float64 `csv:"mean_deflection"` // 平均たわみ, m
	MaxDeflection  float64 `csv:"max_deflection"`  // 中央たわみ, m
}

// 中空層ごとの計算結果
type GapRecord struct {
	Run            string  `csv:"run"`
	Gap            int     `csv:"gap"`
	Width          float64 `csv:"width"`           // 中央幅, m
	MeanDeflection float64 `csv:"mean_deflection"` // 平均幅の変化量, m
	MaxDeflection  float64 `csv:"max_deflection"`  // 中央幅の変化量, m
	Pressure       float64 `csv:"pressure"`        // Pa
}

// 計算条件ごとの集計値
type RunRecord struct {
	Run                   string  `csv:"run"`
	State                 string  `csv:"state"`
	Iterations            int     `csv:"iterations"`
	HeatFlowOutdoor       float64 `csv:"heat_flow_outdoor"` // W/m2
	HeatFlowIndoor        float64 `csv:"heat_flow_indoor"`  // W/m2
	HcOutdoor             float64 `csv:"hc_outdoor"`        // W/m2K
	HrOutdoor             float64 `csv:"hr_outdoor"`        // W/m2K
	HcIndoor              float64 `csv:"hc_indoor"`         // W/m2K
	HrIndoor              float64 `csv:"hr_indoor"`         // W/m2K
	Thickness             float64 `csv:"thickness"`         // m
	EffectiveConductivity float64 `csv:"effective_conductivity"`
}

// 窓の性能値
type RatingRecord struct {
	SolarTransmittance float64 `csv:"solar_transmittance"` // -
	UValue             float64 `csv:"u_value"`             // W/m2K
	SHGC               float64 `csv:"shgc"`                // -
	RelativeHeatGain   float64 `csv:"relative_heat_gain"`  // W/m2
}

type Recorder struct {
	surfaces []*SurfaceRecord
	gaps     []*GapRecord
	runs     []*RunRecord
	ratings  []*RatingRecord
}

/*
計算結果を記録する。

	Args:
		s: 解いた U 値計算と SHGC 計算の組
		solarTransmittance: 日射透過率, -
*/
func NewRecorder(s *tarcog.System, solarTransmittance float64) *Recorder {
	r := &Recorder{}
	for _, run := range []tarcog.RunType{tarcog.RunUValue, tarcog.RunSHGC} {
		r.record(run, s.Run(run))
	}
	r.ratings = []*RatingRecord{{
		SolarTransmittance: solarTransmittance,
		UValue:             s.UValue(),
		SHGC:               s.SHGC(solarTransmittance),
		RelativeHeatGain:   s.RelativeHeatGain(solarTransmittance),
	}}
	return r
}

func (r *Recorder) record(run tarcog.RunType, s *tarcog.SingleSystem) {
	name := run.String()

	ts := s.Temperatures()
	js := s.Radiosities()
	mean := s.MeanLayerDeflections()
	peak := s.MaxLayerDeflections()
	for i := range ts {
		solid := i / 2
		side := tarcog.Front
		if i%2 == 1 {
			side = tarcog.Back
		}
		r.surfaces = append(r.surfaces, &SurfaceRecord{
			Run:            name,
			Solid:          solid + 1,
			Side:           side.String(),
			Temperature:    ts[i],
			Radiosity:      js[i],
			MeanDeflection: mean[solid],
			MaxDeflection:  peak[solid],
		})
	}

	widths := s.GapWidths()
	gapMean := s.MeanGapDeflections()
	gapMax := s.MaxGapDeflections()
	pressures := s.GapPressures()
	for j := range widths {
		r.gaps = append(r.gaps, &GapRecord{
			Run:            name,
			Gap:            j + 1,
			Width:          widths[j],
			MeanDeflection: gapMean[j],
			MaxDeflection:  gapMax[j],
			Pressure:       pressures[j],
		})
	}

	r.runs = append(r.runs, &RunRecord{
		Run:                   name,
		State:                 s.State().String(),
		Iterations:            s.NumberOfIterations(),
		HeatFlowOutdoor:       s.HeatFlow(tarcog.Outdoor),
		HeatFlowIndoor:        s.HeatFlow(tarcog.Indoor),
		HcOutdoor:             s.Hc(tarcog.Outdoor),
		HrOutdoor:             s.Hr(tarcog.Outdoor),
		HcIndoor:              s.Hc(tarcog.Indoor),
		HrIndoor:              s.Hr(tarcog.Indoor),
		Thickness:             s.Thickness(),
		EffectiveConductivity: s.EffectiveSystemConductivity(),
	})
}

func (r *Recorder) tables() []struct {
	name string
	rows interface{}
} {
	return []struct {
		name string
		rows interface{}
	}{
		{"rating", &r.ratings},
		{"runs", &r.runs},
		{"surfaces", &r.surfaces},
		{"gaps", &r.gaps},
	}
}

/*
計算結果を CSV ファイルとして保存する。

	Args:
		dir: 出力フォルダへのパス

	Notes:
		rating.csv, runs.csv, surfaces.csv, gaps.csv を出力する。
*/
func (r *Recorder) SaveCSV(dir string) error {
	for _, t := range r.tables() {
		path := filepath.Join(dir, t.name+".csv")
		log.WithField("path", path).Info("save results")
		if err := saveCSV(path, t.rows); err != nil {
			return err
		}
	}
	return nil
}

func saveCSV(path string, rows interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("failed to write `%s`: %w", path, err)
	}
	return nil
}

/*
計算結果を1つの xlsx ファイルに表ごとのシートとして保存する。

	Args:
		path: 出力する xlsx ファイルへのパス
*/
func (r *Recorder) SaveXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range r.tables() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return err
		}

		rows, err := tableCells(t.rows)
		if err != nil {
			return err
		}
		for n, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, n+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(t.name, cell, &row); err != nil {
				return err
			}
		}
	}

	log.WithField("path", path).Info("save results")
	return f.SaveAs(path)
}

// gocsv の列定義で表を文字列化し、数値の列はセルに数値として書く。
func tableCells(rows interface{}) ([][]interface{}, error) {
	text, err := gocsv.MarshalString(rows)
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		return nil, err
	}

	cells := make([][]interface{}, len(records))
	for n, record := range records {
		cells[n] = make([]interface{}, len(record))
		for k, v := range record {
			if f, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
				cells[n][k] = f
			} else {
				cells[n][k] = v
			}
		}
	}
	return cells, nil
}
