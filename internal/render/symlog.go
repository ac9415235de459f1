package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// SymLogNorm maps signed values onto a scale that is linear within ±Linthresh
// and logarithmic (base 10) outside it. Linscale stretches the linear range
// relative to one decade of the logarithmic range.
type SymLogNorm struct {
	Linthresh float64
	Linscale  float64
	Vmin      float64
	Vmax      float64
}

func (n SymLogNorm) linscaleAdj() float64 {
	return n.Linscale / (1 - 1/10.0)
}

// Forward maps a data value into scale space.
func (n SymLogNorm) Forward(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	a := math.Abs(v)
	if a <= n.Linthresh {
		return v * n.linscaleAdj()
	}
	return math.Copysign(n.Linthresh*(n.linscaleAdj()+math.Log10(a/n.Linthresh)), v)
}

// Inverse maps a scale-space value back to data space.
func (n SymLogNorm) Inverse(t float64) float64 {
	if math.IsNaN(t) {
		return t
	}
	adj := n.linscaleAdj()
	a := math.Abs(t)
	if a <= n.Linthresh*adj {
		if adj == 0 {
			return 0
		}
		return t / adj
	}
	return math.Copysign(n.Linthresh*math.Pow(10, a/n.Linthresh-adj), t)
}

// Range returns Vmin and Vmax in scale space.
func (n SymLogNorm) Range() (min, max float64) {
	return n.Forward(n.Vmin), n.Forward(n.Vmax)
}

// maxLabels is the number of labelled ticks per sign before decades are thinned.
const maxLabels = 3

// symLogTicks labels a scale-space axis with data-space values at zero and at
// whole decades beyond the linear threshold.
type symLogTicks struct {
	norm SymLogNorm
}

var _ plot.Ticker = symLogTicks{}

func (t symLogTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := t.norm.Inverse(min), t.norm.Inverse(max)
	top := math.Max(math.Abs(lo), math.Abs(hi))
	if !(top > 0) || math.IsInf(top, 0) {
		return nil
	}

	const slack = 1e-9
	first := int(math.Ceil(math.Log10(t.norm.Linthresh) - slack))
	last := int(math.Floor(math.Log10(top) + slack))
	step := 1
	if n := last - first + 1; n > maxLabels {
		step = (n + maxLabels - 1) / maxLabels
	}

	tol := slack * (max - min)
	var ticks []plot.Tick
	add := func(v float64, labelled bool) {
		f := t.norm.Forward(v)
		if f < min-tol || f > max+tol {
			return
		}
		label := ""
		if labelled {
			label = formatTick(v)
		}
		ticks = append(ticks, plot.Tick{Value: f, Label: label})
	}

	add(0, true)
	for k := first; k <= last; k++ {
		v := math.Pow(10, float64(k))
		labelled := (last-k)%step == 0
		add(v, labelled)
		add(-v, labelled)
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.0e", v)
}
