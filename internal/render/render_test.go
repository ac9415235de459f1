package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"charge-field/internal/charge"
	"charge-field/internal/settings"
	"charge-field/internal/sim"
	"charge-field/internal/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymLogNormRoundTrip(t *testing.T) {
	n := SymLogNorm{Linthresh: 100, Linscale: 1, Vmin: -1e12, Vmax: 1e12}
	for _, v := range []float64{0, 1, -50, 100, -100, 1234.5, -9.9e11, 1e12} {
		assert.InEpsilon(t, math.Abs(v)+1, math.Abs(n.Inverse(n.Forward(v)))+1, 1e-9, "v=%g", v)
	}
}

func TestSymLogNormShape(t *testing.T) {
	n := SymLogNorm{Linthresh: 10, Linscale: 0.9}

	// Linear inside the threshold with slope linscale/(1-1/10).
	assert.InDelta(t, 5.0, n.Forward(5), 1e-12)
	assert.InDelta(t, -5.0, n.Forward(-5), 1e-12)

	// One decade beyond the threshold adds one threshold width.
	assert.InDelta(t, 20.0, n.Forward(100), 1e-12)
	assert.InDelta(t, -30.0, n.Forward(-1000), 1e-12)

	assert.True(t, math.IsNaN(n.Forward(math.NaN())))

	prev := math.Inf(-1)
	for v := -1e6; v <= 1e6; v += 997 {
		f := n.Forward(v)
		assert.Greater(t, f, prev)
		prev = f
	}
}

func TestSymLogTicks(t *testing.T) {
	n := SymLogNorm{Linthresh: 100, Linscale: 1, Vmin: -1e4, Vmax: 1e4}
	lo, hi := n.Range()
	ticks := symLogTicks{norm: n}.Ticks(lo, hi)

	var labels []string
	for _, tk := range ticks {
		assert.InDelta(t, (lo+hi)/2, tk.Value, (hi-lo)/2+1e-6)
		if tk.Label != "" {
			labels = append(labels, tk.Label)
		}
	}
	assert.ElementsMatch(t, []string{"0", "1e+02", "-1e+02", "1e+03", "-1e+03", "1e+04", "-1e+04"}, labels)
}

func TestSymLogTicksThinsDecades(t *testing.T) {
	n := SymLogNorm{Linthresh: 1, Linscale: 1, Vmin: -1e12, Vmax: 1e12}
	lo, hi := n.Range()

	labelled := 0
	for _, tk := range (symLogTicks{norm: n}).Ticks(lo, hi) {
		if tk.Label != "" {
			labelled++
		}
	}
	assert.LessOrEqual(t, labelled, 2*maxLabels+1)
}

func runDipole(t *testing.T) *sim.DisplayData {
	t.Helper()
	set := charge.NewSet()
	require.NoError(t, set.Add(5, 0, 1e-9))
	require.NoError(t, set.Add(-5, 0, -1e-9))
	require.NoError(t, set.Add(0, 5, 0))

	s := settings.Defaults()
	s.NPoints = 31
	s.Vmin, s.Vmax = -1e5, 1e5

	data, err := sim.NewRunner(solver.Coulomb{}).Run(set.List(), s, nil)
	require.NoError(t, err)
	return data
}

func TestRenderProducesFigure(t *testing.T) {
	data := runDipole(t)

	img, err := NewRenderer(96).Render(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1440, 480), img.Bounds())
}

func TestRenderAcceptsNarrowValidatedRange(t *testing.T) {
	data := runDipole(t)
	data.Settings.Linscale = 0.01
	data.Settings.Vmin, data.Settings.Vmax = -10, 10
	require.NoError(t, settings.Validate(data.Settings))

	_, err := NewRenderer(96).Render(data)
	assert.NoError(t, err)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := NewRenderer(50).Render(nil)
	assert.Error(t, err)

	data := runDipole(t)
	data.Axis = data.Axis[:5]
	_, err = NewRenderer(50).Render(data)
	assert.Error(t, err)
}

func TestThumbnailPreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1500, 500))
	for x := 0; x < 1500; x++ {
		src.Set(x, 250, color.White)
	}

	th := Thumbnail(src, 300, 300)
	assert.Equal(t, image.Rect(0, 0, 300, 100), th.Bounds())

	assert.True(t, Thumbnail(src, 0, 10).Bounds().Empty())
}

func TestMarkerColor(t *testing.T) {
	assert.Equal(t, positiveColor, MarkerColor("+"))
	assert.Equal(t, negativeColor, MarkerColor("-"))
	assert.Equal(t, neutralColor, MarkerColor("0"))
}
