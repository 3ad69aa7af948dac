package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"tarcog/gas"
	"tarcog/tarcog"
)

var ErrUnknownLayerKind = errors.New("unknown layer kind")

// 層構成表の1行（室外側から順に並べる）
type LayerRow struct {
	Kind               string    `csv:"kind"`                // solid, gap, ventilated_gap, pillared_gap, sealed_gap
	Thickness          float64   `csv:"thickness"`           // 厚さ, m
	Conductivity       float64   `csv:"conductivity"`        // 固体層の熱伝導率, W/mK
	EmissivityFront    NullFloat `csv:"emissivity_front"`    // 室外側表面の放射率, -
	EmissivityBack     NullFloat `csv:"emissivity_back"`     // 室内側表面の放射率, -
	TransmittanceFront float64   `csv:"transmittance_front"` // 室外側表面の長波長透過率, -
	TransmittanceBack  float64   `csv:"transmittance_back"`  // 室内側表面の長波長透過率, -
	Absorptance        float64   `csv:"absorptance"`         // 日射吸収率, -
	Gas                string    `csv:"gas"`                 // "argon:0.9;air:0.1"
	Pressure           NullFloat `csv:"pressure"`            // 中空層の圧力, Pa
	Ventilation        string    `csv:"ventilation"`         // forced, natural
	AirSpeed           float64   `csv:"air_speed"`           // 強制通気の流速, m/s
	InletTemperature   float64   `csv:"inlet_temperature"`   // 流入空気温度, K
	InletLoss          float64   `csv:"inlet_loss"`          // 自然通気の流入口の圧力損失係数, -
	OutletLoss         float64   `csv:"outlet_loss"`         // 自然通気の流出口の圧力損失係数, -
	PillarShape        string    `csv:"pillar_shape"`        // circular, rectangular, triangular
	PillarConductivity float64   `csv:"pillar_conductivity"` // W/mK
	PillarSpacing      float64   `csv:"pillar_spacing"`      // m
	PillarSize         float64   `csv:"pillar_size"`         // 半径または辺の長さ, m
	PillarWidth        float64   `csv:"pillar_width"`        // 長方形の短辺, m
	FillTemperature    float64   `csv:"fill_temperature"`    // 封入時温度, K
	FillPressure       NullFloat `csv:"fill_pressure"`       // 封入時圧力, Pa
}

/*
層構成表を読み込む。拡張子が .xlsx の場合は先頭シートを読む。

	Args:
		path: CSV または xlsx ファイルへのパス

	Returns:
		層構成表の行
*/
func ReadLayers(path string) ([]*LayerRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readLayersXLSX(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*LayerRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read layers `%s`: %w", path, err)
	}
	return rows, nil
}

func readLayersXLSX(path string) ([]*LayerRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet `%s`: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet `%s` is empty", sheet)
	}

	// GetRows は末尾の空セルを省略するため、見出しの列数に揃える
	width := len(cells[0])
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range cells {
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row[:width]); err != nil {
			return nil, err
		}
	}
	w.Flush()

	var rows []*LayerRow
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		return nil, fmt.Errorf("failed to read layers `%s`: %w", path, err)
	}
	return rows, nil
}

/*
空欄を許す数値のセル

	Notes:
		空欄は Valid = false となり、既定値を用いる。0 は値として扱う。
*/
type NullFloat struct {
	Float64 float64
	Valid   bool
}

func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

func (n *NullFloat) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = NullFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*n = Float(v)
	return nil
}

func (n NullFloat) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return strconv.FormatFloat(n.Float64, 'g', -1, 64), nil
}

// 空欄の場合は def
func (n NullFloat) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}

// 行から層を作成する。
func (r *LayerRow) layer() (*tarcog.Layer, error) {
	if r.Kind == "solid" {
		l := tarcog.NewSolidLayerWithSurfaces(
			r.Thickness,
			r.Conductivity,
			tarcog.NewSurface(r.EmissivityFront.Or(tarcog.DefaultEmissivity), r.TransmittanceFront),
			tarcog.NewSurface(r.EmissivityBack.Or(tarcog.DefaultEmissivity), r.TransmittanceBack),
		)
		l.SetSolarAbsorptance(r.Absorptance)
		return l, nil
	}

	g, err := gas.Parse(r.Gas)
	if err != nil {
		return nil, err
	}
	gap := tarcog.NewGapLayerWithGas(r.Thickness, r.Pressure.Or(tarcog.DefaultPressure), g)

	switch r.Kind {
	case "gap":
		return gap, nil
	case "ventilated_gap":
		v, err := r.ventilation()
		if err != nil {
			return nil, err
		}
		return tarcog.NewVentilatedGap(gap, v)
	case "pillared_gap":
		p, err := r.pillars()
		if err != nil {
			return nil, err
		}
		return tarcog.NewPillaredGap(gap, p)
	case "sealed_gap":
		return tarcog.NewSealedGap(gap, r.FillTemperature, r.FillPressure.Or(tarcog.DefaultPressure))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayerKind, r.Kind)
	}
}

func (r *LayerRow) ventilation() (tarcog.Ventilation, error) {
	switch r.Ventilation {
	case "", "forced":
		return tarcog.ForcedVentilation(r.AirSpeed, r.InletTemperature), nil
	case "natural":
		return tarcog.NaturalVentilation(r.InletTemperature, r.InletLoss, r.OutletLoss), nil
	default:
		return tarcog.Ventilation{}, fmt.Errorf("ventilation: %w: %q", tarcog.ErrInvalidModel, r.Ventilation)
	}
}

func (r *LayerRow) pillars() (tarcog.PillarArray, error) {
	switch r.PillarShape {
	case "", "circular":
		return tarcog.CircularPillars(r.PillarConductivity, r.PillarSpacing, r.PillarSize), nil
	case "rectangular":
		return tarcog.RectangularPillars(r.PillarConductivity, r.PillarSpacing, r.PillarSize, r.PillarWidth), nil
	case "triangular":
		return tarcog.TriangularPillars(r.PillarConductivity, r.PillarSpacing, r.PillarSize), nil
	default:
		return tarcog.PillarArray{}, fmt.Errorf("pillar_shape: %w: %q", tarcog.ErrInvalidModel, r.PillarShape)
	}
}

/*
設定と層構成表から複層ガラスを組み立てる。

	Args:
		cfg: [igu] の設定
		rows: 層構成表の行

	Returns:
		複層ガラス
*/
func BuildIGU(cfg IGUConfig, rows []*LayerRow) (*tarcog.IGU, error) {
	igu := tarcog.NewIGU(cfg.Width, cfg.Height)
	igu.SetTilt(cfg.Tilt)

	for i, r := range rows {
		l, err := r.layer()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		if err := igu.AddLayer(l); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
	}

	if len(cfg.AppliedLoad) > 0 {
		if err := igu.SetAppliedLoad(cfg.AppliedLoad); err != nil {
			return nil, fmt.Errorf("applied_load: %w", err)
		}
	}

	switch cfg.Deflection {
	case tarcog.DeflectionFromState:
		igu.SetDeflectionProperties(cfg.DeflectionTemperature, cfg.DeflectionPressure)
	case tarcog.DeflectionMeasured:
		if err := igu.SetDeflectionFromMeasuredGaps(cfg.MeasuredGaps); err != nil {
			return nil, fmt.Errorf("measured_gaps: %w", err)
		}
	}
	return igu, nil
}
