package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSolve(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 1, -1,
		-3, -1, 2,
		-2, 1, 2,
	})
	b := mat.NewVecDense(3, []float64{8, -11, -3})

	x, err := Solve(a, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, -1}, x.RawVector().Data, 1e-12)

	// inputs are left untouched
	assert.Equal(t, 2.0, a.At(0, 0))
	assert.Equal(t, 8.0, b.AtVec(0))
}

func TestSolveNeedsPivoting(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		0, 1,
		1, 1,
	})
	b := mat.NewVecDense(2, []float64{1, 3})

	x, err := Solve(a, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1}, x.RawVector().Data, 1e-12)
}

func TestSolveSingularIsFinite(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		1, 2,
		2, 4,
	})
	b := mat.NewVecDense(2, []float64{3, 6})

	x, err := Solve(a, b)
	require.NoError(t, err)
	for _, v := range x.RawVector().Data {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestSolveShape(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	b := mat.NewVecDense(2, nil)

	_, err := Solve(a, b)
	assert.ErrorIs(t, err, ErrShape)
}
