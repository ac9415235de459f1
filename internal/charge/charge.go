// Package charge holds the placed point charges and the rules for adding them.
package charge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bound is the half-width of the placement area in centimetres.
const Bound = 20.0

// Charge is a stationary point charge placed on the canvas.
type Charge struct {
	X float64 // cm
	Y float64 // cm
	Q float64 // signed charge; zero is a neutral marker
}

// Symbol returns the marker symbol for the sign of the charge.
func (c Charge) Symbol() string {
	switch {
	case c.Q > 0:
		return "+"
	case c.Q < 0:
		return "-"
	default:
		return "0"
	}
}

// String formats the charge the way it appears in the listing.
func (c Charge) String() string {
	return fmt.Sprintf("X=%g cm, Y=%g cm, q=%g", c.X, c.Y, c.Q)
}

// ParseCharge parses the three text fields of the add-charge form.
// All fields are checked so the error names every field that failed.
// NaN and infinities are rejected along with non-numeric text.
func ParseCharge(xText, yText, qText string) (Charge, error) {
	var perr ParseError
	parse := func(field, text string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			perr.Fields = append(perr.Fields, field)
		}
		return v
	}

	c := Charge{
		X: parse("X", xText),
		Y: parse("Y", yText),
		Q: parse("q", qText),
	}
	if len(perr.Fields) > 0 {
		return Charge{}, &perr
	}
	return c, nil
}

// Set is an ordered collection of charges with unique positions.
// Insertion order drives both the marker order and the listing order.
type Set struct {
	charges []Charge
}

// NewSet creates an empty charge set.
func NewSet() *Set {
	return &Set{}
}

// Add validates and appends a charge.
// Bounds are checked before uniqueness.
func (s *Set) Add(x, y, q float64) error {
	if err := checkBounds(x, y); err != nil {
		return err
	}
	for i, c := range s.charges {
		if c.X == x && c.Y == y {
			return &DuplicateError{X: x, Y: y, Index: i}
		}
	}
	s.charges = append(s.charges, Charge{X: x, Y: y, Q: q})
	return nil
}

// AddCharge is Add for an already constructed Charge.
func (s *Set) AddCharge(c Charge) error {
	return s.Add(c.X, c.Y, c.Q)
}

// Clear removes every charge.
func (s *Set) Clear() {
	s.charges = nil
}

// List returns a copy of the charges in insertion order.
func (s *Set) List() []Charge {
	out := make([]Charge, len(s.charges))
	copy(out, s.charges)
	return out
}

// Len returns the number of charges.
func (s *Set) Len() int {
	return len(s.charges)
}

func checkBounds(x, y float64) error {
	var berr BoundsError
	if !(x >= -Bound && x <= Bound) {
		berr.Violations = append(berr.Violations, fmt.Sprintf("X=%g is outside [-%g, %g] cm", x, Bound, Bound))
	}
	if !(y >= -Bound && y <= Bound) {
		berr.Violations = append(berr.Violations, fmt.Sprintf("Y=%g is outside [-%g, %g] cm", y, Bound, Bound))
	}
	if len(berr.Violations) > 0 {
		return &berr
	}
	return nil
}
