package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tarcog/tarcog"
)

func TestReadLayersCSV(t *testing.T) {
	rows, err := ReadLayers("testdata/layers.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "solid", rows[0].Kind)
	assert.Equal(t, 0.005715, rows[0].Thickness)
	assert.Equal(t, 0.096, rows[0].Absorptance)
	assert.Equal(t, "gap", rows[1].Kind)
	assert.Equal(t, "air", rows[1].Gas)
	assert.Equal(t, 0.0, rows[1].Conductivity)
}

func TestBuildIGU(t *testing.T) {
	rows, err := ReadLayers("testdata/layers.csv")
	require.NoError(t, err)

	igu, err := BuildIGU(IGUConfig{Width: 1, Height: 1.5, Tilt: 60}, rows)
	require.NoError(t, err)

	assert.Equal(t, 1.5, igu.Height())
	assert.Equal(t, 60.0, igu.Tilt())
	assert.Equal(t, 3, igu.NumberOfLayers())
	assert.Len(t, igu.SolidLayers(), 2)
	assert.Equal(t, 0.072, igu.SolidLayers()[1].SolarAbsorptance())
	assert.Equal(t, tarcog.DeflectionOff, igu.DeflectionMode())
	assert.InDelta(t, 0.005715*2+0.012, igu.Thickness(), 1e-15)
}

func TestBuildIGUInvalidKind(t *testing.T) {
	rows, err := ReadLayers("testdata/layers_invalid.csv")
	require.NoError(t, err)

	_, err = BuildIGU(IGUConfig{Width: 1, Height: 1, Tilt: 90}, rows)
	assert.ErrorIs(t, err, ErrUnknownLayerKind)
	assert.Contains(t, err.Error(), "layer 2")
}

func TestBuildIGULayerOrder(t *testing.T) {
	rows := []*LayerRow{
		{Kind: "solid", Thickness: 0.004, Conductivity: 1},
		{Kind: "solid", Thickness: 0.004, Conductivity: 1},
	}
	_, err := BuildIGU(IGUConfig{Width: 1, Height: 1, Tilt: 90}, rows)
	assert.ErrorIs(t, err, tarcog.ErrLayerOrder)
}

func TestLayerRowGapKinds(t *testing.T) {
	for _, tc := range []struct {
		row  LayerRow
		kind tarcog.LayerKind
	}{
		{LayerRow{Kind: "gap", Thickness: 0.012, Gas: "argon:0.9;air:0.1"}, tarcog.LayerKindGap},
		{LayerRow{Kind: "ventilated_gap", Thickness: 0.05, AirSpeed: 0.1, InletTemperature: 294.15}, tarcog.LayerKindVentilatedGap},
		{LayerRow{Kind: "ventilated_gap", Thickness: 0.05, Ventilation: "natural", InletTemperature: 294.15}, tarcog.LayerKindVentilatedGap},
		{LayerRow{Kind: "pillared_gap", Thickness: 0.0001, Pressure: Float(0.1), PillarConductivity: 20, PillarSpacing: 0.02, PillarSize: 0.00025}, tarcog.LayerKindPillaredGap},
		{LayerRow{Kind: "pillared_gap", Thickness: 0.0001, Pressure: Float(0.1), PillarShape: "rectangular", PillarConductivity: 20, PillarSpacing: 0.02, PillarSize: 0.0004, PillarWidth: 0.0002}, tarcog.LayerKindPillaredGap},
		{LayerRow{Kind: "sealed_gap", Thickness: 0.012, FillTemperature: 293.15}, tarcog.LayerKindSealedGap},
	} {
		l, err := tc.row.layer()
		require.NoError(t, err, tc.row.Kind)
		assert.Equal(t, tc.kind, l.Kind())
	}
}

func TestLayerRowDefaults(t *testing.T) {
	l, err := (&LayerRow{Kind: "solid", Thickness: 0.004, Conductivity: 1, EmissivityBack: Float(0.1)}).layer()
	require.NoError(t, err)
	assert.Equal(t, tarcog.DefaultEmissivity, l.Emissivity(tarcog.Front))
	assert.Equal(t, 0.1, l.Emissivity(tarcog.Back))

	gap, err := (&LayerRow{Kind: "gap", Thickness: 0.012}).layer()
	require.NoError(t, err)
	assert.Equal(t, tarcog.DefaultPressure, gap.Pressure())

	// 0 は既定値に置き換えない
	l, err = (&LayerRow{Kind: "solid", Thickness: 0.001, Conductivity: 160, EmissivityFront: Float(0)}).layer()
	require.NoError(t, err)
	assert.Equal(t, 0.0, l.Emissivity(tarcog.Front))
	assert.Equal(t, tarcog.DefaultEmissivity, l.Emissivity(tarcog.Back))
}

func TestReadLayersOptionalColumns(t *testing.T) {
	rows, err := ReadLayers("testdata/layers_shade.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Float(0.84), rows[0].EmissivityFront)
	assert.Equal(t, Float(0), rows[2].EmissivityFront)
	assert.False(t, rows[2].EmissivityBack.Valid)
	assert.False(t, rows[1].Pressure.Valid)

	shade, err := rows[2].layer()
	require.NoError(t, err)
	assert.Equal(t, 0.0, shade.Emissivity(tarcog.Front))
	assert.Equal(t, tarcog.DefaultEmissivity, shade.Emissivity(tarcog.Back))

	v, err := rows[1].ventilation()
	require.NoError(t, err)
	assert.Equal(t, tarcog.NaturalVentilation(294.15, 1.5, 2.5), v)

	igu, err := BuildIGU(IGUConfig{Width: 1, Height: 1, Tilt: 90}, rows)
	require.NoError(t, err)
	assert.Equal(t, tarcog.LayerKindVentilatedGap, igu.Layers()[1].Kind())
	assert.Equal(t, tarcog.DefaultPressure, igu.Layers()[1].Pressure())
}

func TestNullFloatCSV(t *testing.T) {
	var n NullFloat
	require.NoError(t, n.UnmarshalCSV(" "))
	assert.False(t, n.Valid)
	assert.Equal(t, 0.5, n.Or(0.5))

	require.NoError(t, n.UnmarshalCSV("0"))
	assert.Equal(t, Float(0), n)
	assert.Equal(t, 0.0, n.Or(0.5))

	assert.Error(t, n.UnmarshalCSV("n/a"))

	s, err := Float(0.84).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.84", s)
	s, err = NullFloat{}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestLayerRowInvalid(t *testing.T) {
	_, err := (&LayerRow{Kind: "gap", Thickness: 0.012, Gas: "helium-3"}).layer()
	assert.Error(t, err)

	_, err = (&LayerRow{Kind: "ventilated_gap", Thickness: 0.05, Ventilation: "fan"}).layer()
	assert.ErrorIs(t, err, tarcog.ErrInvalidModel)

	_, err = (&LayerRow{Kind: "pillared_gap", Thickness: 0.0001, PillarShape: "hexagonal"}).layer()
	assert.ErrorIs(t, err, tarcog.ErrInvalidModel)
}

func TestBuildIGUDeflectionModes(t *testing.T) {
	rows, err := ReadLayers("testdata/layers.csv")
	require.NoError(t, err)

	cfg := IGUConfig{Width: 1, Height: 1, Tilt: 90, Deflection: tarcog.DeflectionFromState, DeflectionTemperature: 293.15, DeflectionPressure: tarcog.DefaultPressure}
	igu, err := BuildIGU(cfg, rows)
	require.NoError(t, err)
	assert.Equal(t, tarcog.DeflectionFromState, igu.DeflectionMode())

	cfg = IGUConfig{Width: 1, Height: 1, Tilt: 90, Deflection: tarcog.DeflectionMeasured, MeasuredGaps: []float64{0.0118}}
	igu, err = BuildIGU(cfg, rows)
	require.NoError(t, err)
	assert.Equal(t, tarcog.DeflectionMeasured, igu.DeflectionMode())

	cfg.MeasuredGaps = []float64{0.0118, 0.0121}
	_, err = BuildIGU(cfg, rows)
	assert.ErrorIs(t, err, tarcog.ErrSizeMismatch)

	cfg = IGUConfig{Width: 1, Height: 1, Tilt: 90, AppliedLoad: []float64{100}}
	_, err = BuildIGU(cfg, rows)
	assert.ErrorIs(t, err, tarcog.ErrSizeMismatch)
}

func TestReadLayersXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for n, row := range [][]interface{}{
		{"kind", "thickness", "conductivity", "gas", "absorptance"},
		{"solid", 0.004, 1.0, "", 0.1},
		{"gap", 0.016, "", "argon:0.9;air:0.1"},
		{"solid", 0.004, 1.0},
	} {
		cell, err := excelize.CoordinatesToCellName(1, n+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadLayers(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 0.1, rows[0].Absorptance)
	assert.Equal(t, 0.016, rows[1].Thickness)
	assert.Equal(t, "argon:0.9;air:0.1", rows[1].Gas)
	assert.Equal(t, 0.0, rows[2].Absorptance)

	igu, err := BuildIGU(IGUConfig{Width: 1, Height: 1, Tilt: 90}, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, igu.NumberOfLayers())
}
