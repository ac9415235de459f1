package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewSquareLattice(t *testing.T) {
	l, err := NewSquareLattice(0.2, 5)
	require.NoError(t, err)

	rows, cols := l.Dims()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, cols)
	assert.InDeltaSlice(t, []float64{-0.2, -0.1, 0, 0.1, 0.2}, l.Axis(), 1e-15)

	// x varies along columns, y along rows.
	assert.InDelta(t, -0.2, l.X.At(3, 0), 1e-15)
	assert.InDelta(t, 0.1, l.Y.At(3, 0), 1e-15)
	assert.Zero(t, l.Z)
}

func TestNewSquareLatticeRejectsBadInput(t *testing.T) {
	_, err := NewSquareLattice(0.2, 1)
	assert.Error(t, err)
	_, err = NewSquareLattice(0, 10)
	assert.Error(t, err)
}

func TestCoulombSingleCharge(t *testing.T) {
	l, err := NewSquareLattice(0.1, 3)
	require.NoError(t, err)

	q := 1e-9
	f, err := Coulomb{}.Solve([]Source{{Charge: q}}, l, 0)
	require.NoError(t, err)

	// Point (0.1, 0) is column 2, row 1.
	want := coulomb * q / (0.1 * 0.1)
	assert.InEpsilon(t, want, f.Ex.At(1, 2), 1e-12)
	assert.InDelta(t, 0, f.Ey.At(1, 2), 1e-9)
	assert.Zero(t, f.Ez.At(1, 2))

	// Negative y side points down for a positive charge.
	assert.Less(t, f.Ey.At(0, 1), 0.0)

	// The sample at the charge itself is singular.
	assert.True(t, math.IsNaN(f.Ex.At(1, 1)))
}

func TestCoulombDipoleSymmetry(t *testing.T) {
	l, err := NewSquareLattice(0.2, 41)
	require.NoError(t, err)

	sources := []Source{
		{Position: r3.Vec{X: 0.05}, Charge: 1},
		{Position: r3.Vec{X: -0.05}, Charge: -1},
	}
	f, err := Coulomb{}.Solve(sources, l, 0)
	require.NoError(t, err)

	// On the perpendicular bisector the field points from + to -, i.e. along -x.
	for i := 0; i < 41; i++ {
		if i == 20 {
			continue
		}
		assert.Less(t, f.Ex.At(i, 20), 0.0)
		assert.InDelta(t, 0, f.Ey.At(i, 20), 1e-3*math.Abs(f.Ex.At(i, 20)))
	}
}

func TestCoulombRejectsNonFiniteInput(t *testing.T) {
	l, err := NewSquareLattice(0.1, 3)
	require.NoError(t, err)

	_, err = Coulomb{}.Solve([]Source{{Charge: math.Inf(1)}}, l, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Coulomb{}.Solve(nil, l, math.NaN())
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Coulomb{}.Solve(nil, Lattice{}, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFuncAdapter(t *testing.T) {
	called := false
	var s Solver = Func(func(sources []Source, lattice Lattice, t float64) (*Field, error) {
		called = true
		return nil, errors.New("boom")
	})
	_, err := s.Solve(nil, Lattice{}, 0)
	assert.EqualError(t, err, "boom")
	assert.True(t, called)
}

func TestCoulombNeutralSourceOnSample(t *testing.T) {
	l, err := NewSquareLattice(0.1, 3)
	require.NoError(t, err)

	f, err := Coulomb{}.Solve([]Source{{Charge: 0}}, l, 0)
	require.NoError(t, err)
	assert.Zero(t, f.Ex.At(1, 1))
	assert.Zero(t, f.Ey.At(1, 1))
}
