package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tarcog/tarcog"
)

func solvedSystem(t *testing.T) (*tarcog.System, *Config) {
	t.Helper()
	cfg, err := LoadConfig("testdata/config.ini", "")
	require.NoError(t, err)
	rows, err := ReadLayers(cfg.IGU.LayersPath)
	require.NoError(t, err)
	igu, err := BuildIGU(cfg.IGU, rows)
	require.NoError(t, err)
	s, err := tarcog.NewSystem(igu, cfg.Indoor.environment(), cfg.Outdoor.environment())
	require.NoError(t, err)
	return s, cfg
}

func TestRecorder(t *testing.T) {
	s, cfg := solvedSystem(t)
	rec := NewRecorder(s, cfg.Run.SolarTransmittance)

	require.Len(t, rec.ratings, 1)
	assert.InDelta(t, 2.7034, rec.ratings[0].UValue, 2e-3)
	assert.Equal(t, s.SHGC(0.7), rec.ratings[0].SHGC)
	assert.InDelta(t, 7.8*rec.ratings[0].UValue+630*rec.ratings[0].SHGC, rec.ratings[0].RelativeHeatGain, 1e-9)

	// 2 計算条件 x 固体層 2 枚 x 両面
	require.Len(t, rec.surfaces, 8)
	assert.Equal(t, "u_value", rec.surfaces[0].Run)
	assert.Equal(t, "front", rec.surfaces[0].Side)
	assert.Equal(t, 2, rec.surfaces[3].Solid)
	assert.Equal(t, "back", rec.surfaces[3].Side)
	assert.Equal(t, s.Temperatures(tarcog.RunSHGC)[2], rec.surfaces[6].Temperature)

	require.Len(t, rec.gaps, 2)
	assert.Equal(t, 0.012, rec.gaps[0].Width)

	require.Len(t, rec.runs, 2)
	assert.Equal(t, tarcog.SolverConverged.String(), rec.runs[0].State)
	assert.Equal(t, s.HeatFlow(tarcog.RunUValue, tarcog.Indoor), rec.runs[0].HeatFlowIndoor)
}

func TestRecorderSaveCSV(t *testing.T) {
	s, cfg := solvedSystem(t)
	dir := t.TempDir()
	require.NoError(t, NewRecorder(s, cfg.Run.SolarTransmittance).SaveCSV(dir))

	for _, name := range []string{"rating.csv", "runs.csv", "surfaces.csv", "gaps.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	file, err := os.Open(filepath.Join(dir, "rating.csv"))
	require.NoError(t, err)
	defer file.Close()

	var ratings []*RatingRecord
	require.NoError(t, gocsv.UnmarshalFile(file, &ratings))
	require.Len(t, ratings, 1)
	assert.InDelta(t, s.UValue(), ratings[0].UValue, 1e-9)
	assert.Equal(t, 0.7, ratings[0].SolarTransmittance)
}

func TestRecorderSaveXLSX(t *testing.T) {
	s, cfg := solvedSystem(t)
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, NewRecorder(s, cfg.Run.SolarTransmittance).SaveXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"rating", "runs", "surfaces", "gaps"}, f.GetSheetList())

	rows, err := f.GetRows("surfaces")
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "run", rows[0][0])
	assert.Equal(t, "temperature", rows[0][3])

	rating, err := f.GetRows("rating")
	require.NoError(t, err)
	require.Len(t, rating, 2)
	assert.Equal(t, "u_value", rating[0][1])
}

func TestTableCellsKeepsTextColumns(t *testing.T) {
	cells, err := tableCells(&[]*GapRecord{{Run: "shgc", Gap: 1, Width: 0.012, Pressure: 101325}})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "run", cells[0][0])
	assert.Equal(t, "shgc", cells[1][0])
	assert.Equal(t, 1.0, cells[1][1])
	assert.Equal(t, 0.012, cells[1][2])
}
