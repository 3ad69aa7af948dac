package tarcog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarcog/gas"
)

func TestNusseltNumberConductionLimit(t *testing.T) {
	for _, tilt := range []float64{0, 30, 60, 75, 90, 120, 180} {
		assert.InDelta(t, 1.0, nusseltNumber(tilt, 0, 80), 1e-9, "tilt %v", tilt)
	}
}

func TestNusseltNumberIsContinuousAroundSixty(t *testing.T) {
	ra, ar := 2e4, 50.0
	assert.InDelta(t, nusseltNumber(60, ra, ar), nusseltNumber(60.0001, ra, ar), 1e-4)
	assert.InDelta(t, nusseltNumber(90, ra, ar), nusseltNumber(89.9999, ra, ar), 1e-4)
}

func TestNusseltNumberIncreasesWithRayleigh(t *testing.T) {
	low := nusseltNumber(90, 5e3, 80)
	high := nusseltNumber(90, 5e4, 80)
	assert.Greater(t, high, low)
}

func TestNusseltNumberPanicsOnInvalidTilt(t *testing.T) {
	assert.Panics(t, func() { nusseltNumber(-1, 1e3, 80) })
	assert.Panics(t, func() { nusseltNumber(181, 1e3, 80) })
}

func TestRayleighNumber(t *testing.T) {
	assert.Equal(t, 0.0, rayleighNumber(0.012, 10, 280, 1.2, 0, 1000, 0.025))

	ra := rayleighNumber(0.012, 10, 280, 1.2, 1.7e-5, 1006, 0.025)
	expected := GravityConstant * math.Pow(0.012, 3) * 10 * 1006 * 1.2 * 1.2 / (280 * 1.7e-5 * 0.025)
	assert.InDelta(t, expected, ra, 1e-9*expected)
}

func TestGapConvectionNarrowGapIsConduction(t *testing.T) {
	l := NewGapLayer(0.001, DefaultPressure)
	l.surfaces[Front].temperature = 280
	l.surfaces[Back].temperature = 281

	h := gapConvection(l, 1, 90, 280.5)
	props := gas.Pure(gas.Air).Properties(280.5, DefaultPressure)
	assert.InDelta(t, props.ThermalConductivity/0.001, h, 1e-6)
}

func TestGapConvectionBelowVacuumPressure(t *testing.T) {
	l := NewGapLayer(0.0001, 0.1)
	h := gapConvection(l, 1, 90, 290)
	assert.InDelta(t, gas.Pure(gas.Air).LowPressureConductance(290, 0.1), h, 1e-12)
}

func TestPillarConductance(t *testing.T) {
	p := CircularPillars(20, 0.02, 0.00025)
	a := 0.00025
	expected := 2 * 1.0 * a / (0.02 * 0.02) / (1 + 2*0.0001*1.0/(math.Pi*a*20))
	assert.InDelta(t, expected, p.conductance(0.0001, 1.0), 1e-12)

	// 断面積が等しい長方形は同じ熱コンダクタンス
	side := math.Sqrt(math.Pi) * a
	r := RectangularPillars(20, 0.02, side, side)
	assert.InDelta(t, p.conductance(0.0001, 1.0), r.conductance(0.0001, 1.0), 1e-12)

	tri := TriangularPillars(20, 0.02, 0.0005)
	assert.InDelta(t, math.Sqrt(3)/4*0.0005*0.0005, tri.area(), 1e-18)
}

func TestPillaredGapAddsConductance(t *testing.T) {
	build := func(pillared bool) *System {
		gap := NewGapLayer(0.0001, 0.1)
		if pillared {
			var err error
			gap, err = NewPillaredGap(gap, CircularPillars(20, 0.02, 0.00025))
			require.NoError(t, err)
		}
		igu := NewIGU(1, 1)
		require.NoError(t, igu.AddLayers(NewSolidLayer(0.004, 1), gap, NewSolidLayer(0.004, 1)))
		sys, err := NewSystem(igu, NewIndoorEnvironment(294.15), NewOutdoorEnvironment(255.15, 5.5, 0, 255.15, AllSpecified))
		require.NoError(t, err)
		return sys
	}

	plain := build(false)
	pillared := build(true)
	assert.True(t, pillared.Converged(RunUValue))
	assert.Greater(t, pillared.UValue(), plain.UValue())
}
