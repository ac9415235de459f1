// Package solver computes the electric field of stationary point charges on a sampling lattice.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vacuum permittivity, F/m.
const Epsilon0 = 8.8541878128e-12

// coulomb is 1/(4*pi*epsilon0).
var coulomb = 1 / (4 * math.Pi * Epsilon0)

// Source is a point charge in SI units.
type Source struct {
	Position r3.Vec // m
	Charge   float64
}

// Lattice is a regular grid of sampling points at a fixed z.
// Element (i, j) is the point at row i (y) and column j (x).
type Lattice struct {
	X, Y *mat.Dense
	Z    float64
}

// NewSquareLattice creates an n×n lattice spanning [-lim, lim] on both axes.
func NewSquareLattice(lim float64, n int) (Lattice, error) {
	if n < 2 {
		return Lattice{}, fmt.Errorf("lattice needs at least 2 points per axis, got %d", n)
	}
	if !(lim > 0) || math.IsInf(lim, 0) {
		return Lattice{}, fmt.Errorf("lattice half-width must be positive, got %v", lim)
	}

	axis := floats.Span(make([]float64, n), -lim, lim)
	xs := mat.NewDense(n, n, nil)
	ys := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		xs.SetRow(i, axis)
		ys.SetCol(i, axis)
	}
	return Lattice{X: xs, Y: ys}, nil
}

// Dims returns the lattice shape.
func (l Lattice) Dims() (rows, cols int) {
	return l.X.Dims()
}

// Axis returns the sample coordinates along x (the first row of X).
func (l Lattice) Axis() []float64 {
	return mat.Row(nil, 0, l.X)
}

// Field holds the three field components sampled on a lattice.
type Field struct {
	Ex, Ey, Ez *mat.Dense
}

// Solver evaluates the field of sources over a lattice at time t.
type Solver interface {
	Solve(sources []Source, lattice Lattice, t float64) (*Field, error)
}

// Func adapts a function to the Solver interface.
type Func func(sources []Source, lattice Lattice, t float64) (*Field, error)

// Solve calls f.
func (f Func) Solve(sources []Source, lattice Lattice, t float64) (*Field, error) {
	return f(sources, lattice, t)
}

// ErrInvalidInput is returned for sources or lattices that cannot be evaluated.
var ErrInvalidInput = errors.New("invalid solver input")

// Coulomb superposes the static fields of point charges.
// The field at a sample that coincides with a nonzero source is NaN.
type Coulomb struct{}

var _ Solver = Coulomb{}

// Solve evaluates the field at every lattice point. Stationary charges make t irrelevant.
func (Coulomb) Solve(sources []Source, lattice Lattice, t float64) (*Field, error) {
	if lattice.X == nil || lattice.Y == nil {
		return nil, fmt.Errorf("%w: empty lattice", ErrInvalidInput)
	}
	rows, cols := lattice.X.Dims()
	if r, c := lattice.Y.Dims(); r != rows || c != cols {
		return nil, fmt.Errorf("%w: lattice shape mismatch %dx%d vs %dx%d", ErrInvalidInput, rows, cols, r, c)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("%w: time %v", ErrInvalidInput, t)
	}
	for i, s := range sources {
		if !finite(s.Position) || math.IsNaN(s.Charge) || math.IsInf(s.Charge, 0) {
			return nil, fmt.Errorf("%w: source %d is not finite", ErrInvalidInput, i)
		}
	}

	f := &Field{
		Ex: mat.NewDense(rows, cols, nil),
		Ey: mat.NewDense(rows, cols, nil),
		Ez: mat.NewDense(rows, cols, nil),
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := r3.Vec{X: lattice.X.At(i, j), Y: lattice.Y.At(i, j), Z: lattice.Z}
			e := fieldAt(sources, p)
			f.Ex.Set(i, j, e.X)
			f.Ey.Set(i, j, e.Y)
			f.Ez.Set(i, j, e.Z)
		}
	}
	return f, nil
}

func fieldAt(sources []Source, p r3.Vec) r3.Vec {
	var e r3.Vec
	for _, s := range sources {
		if s.Charge == 0 {
			continue
		}
		d := r3.Sub(p, s.Position)
		r := r3.Norm(d)
		if r == 0 {
			return r3.Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
		}
		e = r3.Add(e, r3.Scale(coulomb*s.Charge/(r*r*r), d))
	}
	return e
}

func finite(v r3.Vec) bool {
	for _, x := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
