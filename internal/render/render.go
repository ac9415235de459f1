// Package render draws simulation results as a multi-panel figure.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"charge-field/internal/sim"
	"charge-field/pkg/geometry"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultDPI is the resolution used when a Renderer has none set.
const DefaultDPI = 96

const (
	paletteSize   = 255
	circleSamples = 180
	colorBarShare = 0.18 // fraction of each panel's height given to its colorbar
)

var (
	positiveColor = color.RGBA{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xFF}
	negativeColor = color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}
	neutralColor  = color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xFF}
)

// Renderer turns DisplayData into an image.
type Renderer struct {
	DPI float64
}

// NewRenderer creates a renderer at the given resolution.
func NewRenderer(dpi float64) *Renderer {
	return &Renderer{DPI: dpi}
}

// Render draws the Ex, Ey and |E| panels side by side, each with its own colorbar.
// The figure size comes from the settings snapshot carried in data.
func (r *Renderer) Render(data *sim.DisplayData) (image.Image, error) {
	if data == nil {
		return nil, errors.New("render: no data")
	}
	s := data.Settings
	norm := SymLogNorm{Linthresh: s.Linthresh, Linscale: s.Linscale, Vmin: s.Vmin, Vmax: s.Vmax}

	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	width := vg.Length(s.FigSize[0]) * vg.Inch
	height := vg.Length(s.FigSize[1]) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(dpi)))
	dc := draw.New(img)

	panels := []struct {
		title string
		m     *mat.Dense
	}{
		{"Ex", data.Ex},
		{"Ey", data.Ey},
		{"|E|", data.Magnitude},
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}

	for i, p := range panels {
		heat, bar, err := panel(p.title, p.m, data, norm)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.title, err)
		}
		tile := tiles.At(dc, i, 0)
		h := tile.Rectangle.Max.Y - tile.Rectangle.Min.Y
		heat.Draw(draw.Crop(tile, 0, 0, h*colorBarShare, 0))
		bar.Draw(draw.Crop(tile, 0, 0, 0, -h*(1-colorBarShare)))
	}
	return img.Image(), nil
}

// panel builds the heat map plot and its colorbar for one field array.
func panel(title string, m *mat.Dense, data *sim.DisplayData, norm SymLogNorm) (*plot.Plot, *plot.Plot, error) {
	if m == nil {
		return nil, nil, errors.New("missing field array")
	}
	rows, cols := m.Dims()
	if rows != len(data.Axis) || cols != len(data.Axis) || rows < 2 {
		return nil, nil, fmt.Errorf("field is %dx%d, axis has %d samples", rows, cols, len(data.Axis))
	}

	tmin, tmax := norm.Range()
	if !(tmin < tmax) {
		return nil, nil, fmt.Errorf("empty color range [%g, %g] after normalization", tmin, tmax)
	}
	cmap := colorMap(tmin, tmax)
	pal := cmap.Palette(paletteSize)
	colors := pal.Colors()

	hm := plotter.NewHeatMap(grid{m: m, axis: data.Axis, norm: norm}, pal)
	hm.Min, hm.Max = tmin, tmax
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = color.Black
	hm.Rasterized = true

	p := plot.New()
	p.Title.Text = title + " (V/m)"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(hm)

	lim := data.Axis[len(data.Axis)-1]
	if data.Radius > 0 {
		pts := geometry.GenerateCirclePoints(geometry.Point2D{}, data.Radius, circleSamples)
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.Black
		p.Add(line)
	}

	if len(data.Markers) > 0 {
		if err := addMarkers(p, data.Markers); err != nil {
			return nil, nil, err
		}
	}
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	bar := plot.New()
	bar.HideY()
	bar.X.Tick.Marker = symLogTicks{norm: norm}
	bar.Add(&plotter.ColorBar{ColorMap: cmap})
	return p, bar, nil
}

func addMarkers(p *plot.Plot, markers []sim.Marker) error {
	xys := make(plotter.XYs, len(markers))
	symbols := make([]string, len(markers))
	for i, m := range markers {
		xys[i] = plotter.XY{X: m.Position.X, Y: m.Position.Y}
		symbols[i] = m.Symbol
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		st := sc.GlyphStyle
		st.Color = MarkerColor(markers[i].Symbol)
		return st
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: symbols})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(4)}

	p.Add(sc, labels)
	return nil
}

// MarkerColor returns the marker color for a charge symbol.
func MarkerColor(symbol string) color.RGBA {
	switch symbol {
	case "+":
		return positiveColor
	case "-":
		return negativeColor
	default:
		return neutralColor
	}
}

// colorMap returns a blue-white-red map spanning [min, max] in scale space,
// converging at zero when zero is inside the range.
func colorMap(min, max float64) palette.DivergingColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMax(max)
	cm.SetMin(min)
	mid := (min + max) / 2
	if min < 0 && max > 0 {
		mid = 0
	}
	cm.SetConvergePoint(mid)
	return cm
}

// grid exposes a field array in scale space as a plotter.GridXYZ.
type grid struct {
	m    *mat.Dense
	axis []float64
	norm SymLogNorm
}

func (g grid) Dims() (c, r int)   { r, c = g.m.Dims(); return c, r }
func (g grid) Z(c, r int) float64 { return g.norm.Forward(g.m.At(r, c)) }
func (g grid) X(c int) float64    { return g.axis[c] }
func (g grid) Y(r int) float64    { return g.axis[r] }
