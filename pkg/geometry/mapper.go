package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a coordinate or surface parameter is not a usable number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Mapper converts between physical coordinates (cm) and pixel coordinates on a
// fixed-size display surface whose origin is its geometric center.
// Physical +Y points up; pixel +Y points down.
type Mapper struct {
	Width       float64 // surface width in pixels
	Height      float64 // surface height in pixels
	PixelsPerCm float64
}

// NewMapper creates a Mapper for a surface of the given size and scale.
func NewMapper(width, height, pixelsPerCm float64) Mapper {
	return Mapper{Width: width, Height: height, PixelsPerCm: pixelsPerCm}
}

// ToScreen converts a physical point (cm) to pixel coordinates.
func (m Mapper) ToScreen(p Point2D) (Point2D, error) {
	if err := m.check(p); err != nil {
		return Point2D{}, err
	}
	return m.Transform().Apply(p), nil
}

// ToPhysical converts pixel coordinates to a physical point (cm).
func (m Mapper) ToPhysical(p Point2D) (Point2D, error) {
	if err := m.check(p); err != nil {
		return Point2D{}, err
	}
	inv, ok := m.Transform().Inverse()
	if !ok {
		return Point2D{}, fmt.Errorf("%w: scale %v is not invertible", ErrInvalidCoordinate, m.PixelsPerCm)
	}
	return inv.Apply(p), nil
}

// Transform returns the physical-to-screen mapping as an affine transform:
// px = w/2 + x*ppc, py = h/2 - y*ppc.
func (m Mapper) Transform() AffineTransform {
	return AffineTransform{
		A: m.PixelsPerCm, TX: m.Width / 2,
		D: -m.PixelsPerCm, TY: m.Height / 2,
	}
}

func (m Mapper) check(p Point2D) error {
	if !p.IsFinite() {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, p.X, p.Y)
	}
	if !(m.PixelsPerCm > 0) || math.IsInf(m.PixelsPerCm, 0) {
		return fmt.Errorf("%w: pixels per cm must be positive, got %v", ErrInvalidCoordinate, m.PixelsPerCm)
	}
	if !NewPoint2D(m.Width, m.Height).IsFinite() || m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: surface size %vx%v", ErrInvalidCoordinate, m.Width, m.Height)
	}
	return nil
}

// ToScreen converts (xCm, yCm) to pixel coordinates on a surface of the given size.
func ToScreen(xCm, yCm, surfaceWidth, surfaceHeight, pixelsPerCm float64) (px, py float64, err error) {
	p, err := NewMapper(surfaceWidth, surfaceHeight, pixelsPerCm).ToScreen(NewPoint2D(xCm, yCm))
	return p.X, p.Y, err
}

// ToPhysical converts pixel coordinates (px, py) to centimetres on a surface of the given size.
func ToPhysical(px, py, surfaceWidth, surfaceHeight, pixelsPerCm float64) (xCm, yCm float64, err error) {
	p, err := NewMapper(surfaceWidth, surfaceHeight, pixelsPerCm).ToPhysical(NewPoint2D(px, py))
	return p.X, p.Y, err
}
