// Package canvas provides the charge placement canvas.
package canvas

import (
	"image/color"
	"log"

	"charge-field/internal/charge"
	"charge-field/internal/render"
	"charge-field/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	markerRadius   = 5 // pixels
	boundaryStroke = 4
	metresToCm     = 100
)

// ChargeCanvas draws the boundary circle and one marker per placed charge on a
// fixed-size surface with its origin at the center. Markers are always rebuilt
// from the full charge list.
type ChargeCanvas struct {
	widget.BaseWidget

	mapper geometry.Mapper
	radius float64 // boundary radius, m

	background *fynecanvas.Rectangle
	boundary   *fynecanvas.Circle
	markers    *fyne.Container
	content    *fyne.Container

	// Called with the physical position (cm) of a left click.
	onTap func(p geometry.Point2D)
}

// NewChargeCanvas creates a canvas using mapper for pixel/physical conversion.
func NewChargeCanvas(mapper geometry.Mapper, radius float64) *ChargeCanvas {
	cc := &ChargeCanvas{
		mapper: mapper,
		radius: radius,
	}

	cc.background = fynecanvas.NewRectangle(color.White)
	cc.background.Resize(cc.surfaceSize())

	cc.boundary = fynecanvas.NewCircle(color.Transparent)
	cc.boundary.StrokeColor = color.Black
	cc.boundary.StrokeWidth = boundaryStroke
	cc.layoutBoundary()

	cc.markers = container.NewWithoutLayout()
	cc.content = container.NewWithoutLayout(cc.background, cc.boundary, cc.markers)

	cc.ExtendBaseWidget(cc)
	return cc
}

// SetOnTap sets the callback for clicks on the canvas.
func (cc *ChargeCanvas) SetOnTap(f func(p geometry.Point2D)) {
	cc.onTap = f
}

// CreateRenderer implements fyne.Widget.
func (cc *ChargeCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.content)
}

// MinSize keeps the canvas at its fixed surface size.
func (cc *ChargeCanvas) MinSize() fyne.Size {
	return cc.surfaceSize()
}

// Tapped converts the click position to physical coordinates.
func (cc *ChargeCanvas) Tapped(ev *fyne.PointEvent) {
	if cc.onTap == nil {
		return
	}

	size := cc.surfaceSize()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	p, err := cc.mapper.ToPhysical(geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y)))
	if err != nil {
		log.Printf("Canvas: %v", err)
		return
	}
	cc.onTap(p)
}

// SetCharges replaces all markers with one per charge, in list order.
func (cc *ChargeCanvas) SetCharges(charges []charge.Charge) {
	objects := make([]fyne.CanvasObject, 0, 2*len(charges))
	for _, c := range charges {
		center, err := cc.mapper.ToScreen(geometry.NewPoint2D(c.X, c.Y))
		if err != nil {
			log.Printf("Canvas: skipping marker for %v: %v", c, err)
			continue
		}
		objects = append(objects, newMarker(center, c.Symbol())...)
	}
	cc.markers.Objects = objects
	cc.markers.Refresh()
}

// SetRadius moves the boundary circle to a new radius (m).
func (cc *ChargeCanvas) SetRadius(radius float64) {
	cc.radius = radius
	cc.layoutBoundary()
	cc.boundary.Refresh()
}

// Reset removes every marker and redraws the boundary.
func (cc *ChargeCanvas) Reset(radius float64) {
	cc.SetCharges(nil)
	cc.SetRadius(radius)
}

func (cc *ChargeCanvas) surfaceSize() fyne.Size {
	return fyne.NewSize(float32(cc.mapper.Width), float32(cc.mapper.Height))
}

func (cc *ChargeCanvas) layoutBoundary() {
	r := float32(cc.radius * metresToCm * cc.mapper.PixelsPerCm)
	cx, cy := float32(cc.mapper.Width/2), float32(cc.mapper.Height/2)
	cc.boundary.Position1 = fyne.NewPos(cx-r, cy-r)
	cc.boundary.Position2 = fyne.NewPos(cx+r, cy+r)
}

func newMarker(center geometry.Point2D, symbol string) []fyne.CanvasObject {
	x, y := float32(center.X), float32(center.Y)

	dot := fynecanvas.NewCircle(render.MarkerColor(symbol))
	dot.Position1 = fyne.NewPos(x-markerRadius, y-markerRadius)
	dot.Position2 = fyne.NewPos(x+markerRadius, y+markerRadius)

	label := fynecanvas.NewText(symbol, color.Black)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Move(fyne.NewPos(x+markerRadius+1, y-2*markerRadius-6))

	return []fyne.CanvasObject{dot, label}
}
