// Package dialogs provides application dialogs.
package dialogs

import (
	"strconv"

	"charge-field/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AddChargeDialog collects the position and magnitude of a new charge.
// The dialog stays open when onSave returns an error.
type AddChargeDialog struct {
	window fyne.Window
	dlg    *dialog.CustomDialog

	xEntry *widget.Entry
	yEntry *widget.Entry
	qEntry *widget.Entry

	// Callback; a non-nil error is shown and the dialog is kept open.
	onSave func(xText, yText, qText string) error
}

// NewAddChargeDialog creates an add-charge dialog.
func NewAddChargeDialog(window fyne.Window, onSave func(xText, yText, qText string) error) *AddChargeDialog {
	d := &AddChargeDialog{
		window: window,
		onSave: onSave,
	}
	d.createContent()
	return d
}

// Prefill sets the position fields, e.g. from a canvas click.
func (d *AddChargeDialog) Prefill(p geometry.Point2D) {
	d.xEntry.SetText(strconv.FormatFloat(p.X, 'f', 2, 64))
	d.yEntry.SetText(strconv.FormatFloat(p.Y, 'f', 2, 64))
}

// Show displays the dialog.
func (d *AddChargeDialog) Show() {
	d.dlg.Show()
	d.window.Canvas().Focus(d.qEntry)
}

// Save submits the current field values.
func (d *AddChargeDialog) Save() {
	if err := d.onSave(d.xEntry.Text, d.yEntry.Text, d.qEntry.Text); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	d.dlg.Hide()
}

func (d *AddChargeDialog) createContent() {
	d.xEntry = widget.NewEntry()
	d.xEntry.SetPlaceHolder("cm")
	d.yEntry = widget.NewEntry()
	d.yEntry.SetPlaceHolder("cm")
	d.qEntry = widget.NewEntry()
	d.qEntry.SetPlaceHolder("e.g. 1e-9")
	d.qEntry.OnSubmitted = func(string) { d.Save() }

	form := container.NewGridWithColumns(3,
		widget.NewLabel("X (cm)"), widget.NewLabel("Y (cm)"), widget.NewLabel("q"),
		d.xEntry, d.yEntry, d.qEntry,
	)

	d.dlg = dialog.NewCustomWithoutButtons("Add stationary charge", form, d.window)
	d.dlg.SetButtons([]fyne.CanvasObject{
		widget.NewButton("Cancel", d.dlg.Hide),
		widget.NewButton("Save", d.Save),
	})
	d.dlg.Resize(fyne.NewSize(380, 180))
}

// SetChargeText sets the charge field.
func (d *AddChargeDialog) SetChargeText(q string) {
	d.qEntry.SetText(q)
}
