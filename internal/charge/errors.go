package charge

import (
	"fmt"
	"strings"
)

// ParseError reports form fields that are not numbers.
type ParseError struct {
	Fields []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number in %s: values must be numeric (scientific notation such as 1.6e-19 is accepted)",
		strings.Join(e.Fields, ", "))
}

// BoundsError reports a position outside the placement area.
type BoundsError struct {
	Violations []string
}

func (e *BoundsError) Error() string {
	return "charge out of bounds: " + strings.Join(e.Violations, "; ")
}

// DuplicateError reports a position already occupied by another charge.
type DuplicateError struct {
	X, Y  float64
	Index int // position of the existing charge in the set
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a charge already exists at (%g, %g) cm", e.X, e.Y)
}
