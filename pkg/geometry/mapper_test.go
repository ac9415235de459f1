package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperToScreen(t *testing.T) {
	m := NewMapper(800, 800, 20)

	tests := []struct {
		name string
		in   Point2D
		want Point2D
	}{
		{"origin is center", NewPoint2D(0, 0), NewPoint2D(400, 400)},
		{"positive x moves right", NewPoint2D(5, 0), NewPoint2D(500, 400)},
		{"positive y moves up", NewPoint2D(0, 5), NewPoint2D(400, 300)},
		{"corner", NewPoint2D(-20, -20), NewPoint2D(0, 800)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ToScreen(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestMapperRoundTrip(t *testing.T) {
	surfaces := []Mapper{
		NewMapper(800, 800, 20),
		NewMapper(640, 480, 12.5),
		NewMapper(1001, 999, 0.37),
	}
	for _, m := range surfaces {
		for x := -20.0; x <= 20.0; x += 0.73 {
			for y := -20.0; y <= 20.0; y += 1.19 {
				p := NewPoint2D(x, y)
				s, err := m.ToScreen(p)
				require.NoError(t, err)
				back, err := m.ToPhysical(s)
				require.NoError(t, err)
				assert.InDelta(t, x, back.X, 1e-9)
				assert.InDelta(t, y, back.Y, 1e-9)
			}
		}
	}
}

func TestFunctionalForms(t *testing.T) {
	px, py, err := ToScreen(1.5, -2.25, 800, 600, 40)
	require.NoError(t, err)
	assert.InDelta(t, 460.0, px, 1e-12)
	assert.InDelta(t, 390.0, py, 1e-12)

	x, y, err := ToPhysical(px, py, 800, 600, 40)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, x, 1e-12)
	assert.InDelta(t, -2.25, y, 1e-12)
}

func TestMapperRejectsInvalidInput(t *testing.T) {
	m := NewMapper(800, 800, 20)

	_, err := m.ToScreen(NewPoint2D(math.NaN(), 0))
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = m.ToPhysical(NewPoint2D(0, math.Inf(1)))
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = NewMapper(800, 800, 0).ToScreen(NewPoint2D(1, 1))
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, _, err = ToPhysical(1, 1, -5, 800, 20)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	// Too small to invert.
	_, err = NewMapper(800, 800, 1e-6).ToPhysical(NewPoint2D(1, 1))
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))
}

func TestTransformMatchesMapper(t *testing.T) {
	m := NewMapper(800, 600, 20)
	tr := m.Transform()
	p := NewPoint2D(3.5, -7.25)

	want, err := m.ToScreen(p)
	require.NoError(t, err)
	got := tr.Apply(p)
	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.InDelta(t, want.Y, got.Y, 1e-12)

	inv, ok := tr.Inverse()
	require.True(t, ok)
	back := inv.Apply(got)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestGenerateCirclePointsClosed(t *testing.T) {
	pts := GenerateCirclePoints(NewPoint2D(1, 2), 3, 64)
	require.Len(t, pts, 65)
	assert.Equal(t, pts[0], pts[64])
	for _, p := range pts {
		assert.InDelta(t, 3.0, math.Hypot(p.X-1, p.Y-2), 1e-12)
	}
}
