// Package panels provides UI panels for the application.
package panels

import (
	"image"
	"strconv"
	"sync"

	"charge-field/internal/app"
	"charge-field/internal/charge"
	"charge-field/internal/render"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	thumbWidth  = 300
	thumbHeight = 100
)

// Actions are the handlers behind the side panel buttons.
type Actions struct {
	Add      func()
	Clear    func()
	Run      func()
	Settings func()
}

// SidePanel shows the charge listing, the simulation controls, and a
// preview of the last result.
type SidePanel struct {
	state     *app.State
	container *fyne.Container

	mu      sync.Mutex
	charges []charge.Charge

	list     *widget.List
	count    *widget.Label
	runBtn   *widget.Button
	progress *widget.ProgressBar
	thumb    *fynecanvas.Image
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, actions Actions) *SidePanel {
	sp := &SidePanel{
		state:   state,
		charges: state.Charges.List(),
	}

	sp.list = widget.NewList(
		sp.length,
		func() fyne.CanvasObject {
			return widget.NewLabel("X=-20 cm, Y=-20 cm, q=-1.6e-19")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			sp.mu.Lock()
			defer sp.mu.Unlock()
			if id < len(sp.charges) {
				obj.(*widget.Label).SetText(sp.charges[id].String())
			}
		},
	)
	sp.count = widget.NewLabel("")
	sp.updateCount(len(sp.charges))

	addBtn := widget.NewButton("Add Charge", actions.Add)
	clearBtn := widget.NewButton("Clear All", actions.Clear)
	sp.runBtn = widget.NewButton("Run Simulation", actions.Run)
	sp.runBtn.Importance = widget.HighImportance
	settingsBtn := widget.NewButton("Settings", actions.Settings)

	sp.progress = widget.NewProgressBar()
	sp.thumb = fynecanvas.NewImageFromImage(nil)
	sp.thumb.FillMode = fynecanvas.ImageFillContain
	sp.thumb.SetMinSize(fyne.NewSize(thumbWidth, thumbHeight))

	controls := container.NewVBox(
		container.NewGridWithColumns(2, addBtn, clearBtn),
		container.NewGridWithColumns(2, settingsBtn, sp.runBtn),
		sp.progress,
		widget.NewSeparator(),
		widget.NewLabel("Last result"),
		sp.thumb,
	)

	sp.container = container.NewBorder(
		container.NewVBox(widget.NewLabelWithStyle("Charges", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), sp.count),
		controls,
		nil, nil,
		sp.list,
	)
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetCharges replaces the listing with charges.
func (sp *SidePanel) SetCharges(charges []charge.Charge) {
	sp.mu.Lock()
	sp.charges = append([]charge.Charge(nil), charges...)
	n := len(sp.charges)
	sp.mu.Unlock()

	sp.updateCount(n)
	sp.list.UnselectAll()
	sp.list.Refresh()
	if n > 0 {
		sp.list.ScrollToBottom()
	}
}

// Charges returns the listed charges.
func (sp *SidePanel) Charges() []charge.Charge {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return append([]charge.Charge(nil), sp.charges...)
}

// SetProgress sets the progress bar to fraction.
func (sp *SidePanel) SetProgress(fraction float64) {
	sp.progress.SetValue(fraction)
}

// Progress returns the progress bar value.
func (sp *SidePanel) Progress() float64 {
	return sp.progress.Value
}

// SetRunning enables or disables the Run button.
func (sp *SidePanel) SetRunning(running bool) {
	if running {
		sp.runBtn.Disable()
	} else {
		sp.runBtn.Enable()
	}
}

// RunEnabled reports whether the Run button accepts taps.
func (sp *SidePanel) RunEnabled() bool {
	return !sp.runBtn.Disabled()
}

// SetThumbnail shows a scaled-down copy of img.
func (sp *SidePanel) SetThumbnail(img image.Image) {
	if img == nil {
		sp.thumb.Image = nil
	} else {
		sp.thumb.Image = render.Thumbnail(img, thumbWidth, thumbHeight)
	}
	sp.thumb.Refresh()
}

func (sp *SidePanel) length() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return len(sp.charges)
}

func (sp *SidePanel) updateCount(n int) {
	switch n {
	case 0:
		sp.count.SetText("No charges placed")
	case 1:
		sp.count.SetText("1 charge")
	default:
		sp.count.SetText(strconv.Itoa(n) + " charges")
	}
}
