// Package settings holds the simulation resolution and display normalization parameters.
package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Limits enforced on user-supplied values.
const (
	MaxRadius   = 0.18 // keeps the boundary circle inside the canvas
	MinNPoints  = 2
	MaxNPoints  = 2000
	DomainLimit = 20.0 // half-width of the sampling domain, cm
)

// Settings are the parameters of one simulation run and its rendering.
type Settings struct {
	Linthresh float64    `toml:"linthresh"` // linear range of the symmetric log scale
	Linscale  float64    `toml:"linscale"`
	Vmin      float64    `toml:"vmin"`
	Vmax      float64    `toml:"vmax"`
	Lim       float64    `toml:"-"`       // fixed at DomainLimit
	NPoints   int        `toml:"npoints"` // grid samples per axis
	Radius    float64    `toml:"radius"`  // boundary circle radius, display only
	FigSize   [2]float64 `toml:"figsize"` // figure width and height, inches
}

// Defaults returns the built-in default settings.
func Defaults() Settings {
	return Settings{
		Linthresh: 1e2,
		Linscale:  1,
		Vmin:      -1e12,
		Vmax:      1e12,
		Lim:       DomainLimit,
		NPoints:   200,
		Radius:    0.0722,
		FigSize:   [2]float64{15, 5},
	}
}

// Field names a user-editable setting.
type Field string

const (
	FieldLinthresh Field = "linthresh"
	FieldLinscale  Field = "linscale"
	FieldVmin      Field = "vmin"
	FieldVmax      Field = "vmax"
	FieldNPoints   Field = "npoints"
	FieldRadius    Field = "radius"
	FieldFigWidth  Field = "figwidth"
	FieldFigHeight Field = "figheight"
)

// Fields lists the editable fields in form order.
var Fields = []Field{
	FieldLinthresh, FieldLinscale, FieldVmin, FieldVmax,
	FieldNPoints, FieldRadius, FieldFigWidth, FieldFigHeight,
}

// Candidate is a partial set of field values as typed into the settings form.
// Fields not present keep their current value.
type Candidate map[Field]string

// FormValues formats every editable field of s for display in a form.
func FormValues(s Settings) Candidate {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return Candidate{
		FieldLinthresh: f(s.Linthresh),
		FieldLinscale:  f(s.Linscale),
		FieldVmin:      f(s.Vmin),
		FieldVmax:      f(s.Vmax),
		FieldNPoints:   strconv.Itoa(s.NPoints),
		FieldRadius:    f(s.Radius),
		FieldFigWidth:  f(s.FigSize[0]),
		FieldFigHeight: f(s.FigSize[1]),
	}
}

// Apply parses c on top of base. Every failed field is reported in one ValidationError.
func Apply(base Settings, c Candidate) (Settings, error) {
	next := base
	var verr ValidationError

	float := func(field Field, dst *float64) {
		text, ok := c[field]
		if !ok {
			return
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			verr.add(field, fmt.Sprintf("%q is not a number", text))
			return
		}
		*dst = v
	}

	float(FieldLinthresh, &next.Linthresh)
	float(FieldLinscale, &next.Linscale)
	float(FieldVmin, &next.Vmin)
	float(FieldVmax, &next.Vmax)
	float(FieldRadius, &next.Radius)
	float(FieldFigWidth, &next.FigSize[0])
	float(FieldFigHeight, &next.FigSize[1])

	if text, ok := c[FieldNPoints]; ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			verr.add(FieldNPoints, fmt.Sprintf("%q is not an integer", text))
		} else {
			next.NPoints = int(math.Round(v))
		}
	}

	// Unparsed fields keep their base value; range issues on them are already reported.
	var rerr *ValidationError
	if errors.As(Validate(next), &rerr) {
		for _, is := range rerr.Issues {
			if !verr.Has(is.Field) {
				verr.Issues = append(verr.Issues, is)
			}
		}
	}
	if len(verr.Issues) > 0 {
		return base, &verr
	}
	return next, nil
}

// Validate checks the range constraints of s.
func Validate(s Settings) error {
	var verr ValidationError
	if s.Radius > MaxRadius {
		verr.add(FieldRadius, fmt.Sprintf("must be at most %g, got %g", MaxRadius, s.Radius))
	}
	if s.Radius < 0 {
		verr.add(FieldRadius, fmt.Sprintf("must not be negative, got %g", s.Radius))
	}
	if !(s.Linthresh > 0) {
		verr.add(FieldLinthresh, fmt.Sprintf("must be positive, got %g", s.Linthresh))
	}
	if !(s.Linscale > 0) {
		verr.add(FieldLinscale, fmt.Sprintf("must be positive, got %g", s.Linscale))
	}
	if !(s.Vmin < s.Vmax) {
		verr.add(FieldVmax, fmt.Sprintf("must be greater than vmin (%g), got %g", s.Vmin, s.Vmax))
	}
	if s.NPoints < MinNPoints || s.NPoints > MaxNPoints {
		verr.add(FieldNPoints, fmt.Sprintf("must be between %d and %d, got %d", MinNPoints, MaxNPoints, s.NPoints))
	}
	if !(s.FigSize[0] > 0) {
		verr.add(FieldFigWidth, fmt.Sprintf("must be positive, got %g", s.FigSize[0]))
	}
	if !(s.FigSize[1] > 0) {
		verr.add(FieldFigHeight, fmt.Sprintf("must be positive, got %g", s.FigSize[1]))
	}
	if len(verr.Issues) > 0 {
		return &verr
	}
	return nil
}

// Issue is a single failed check.
type Issue struct {
	Field   Field
	Message string
}

// ValidationError aggregates every failed check of one settings update.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) add(field Field, msg string) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: msg})
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", is.Field, is.Message)
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field Field) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}
