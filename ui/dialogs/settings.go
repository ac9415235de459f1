package dialogs

import (
	"charge-field/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var fieldLabels = map[settings.Field]string{
	settings.FieldLinthresh: "Linear threshold",
	settings.FieldLinscale:  "Linear scale",
	settings.FieldVmin:      "Color min (V/m)",
	settings.FieldVmax:      "Color max (V/m)",
	settings.FieldNPoints:   "Grid points per axis",
	settings.FieldRadius:    "Boundary radius (m, ≤ 0.18)",
	settings.FieldFigWidth:  "Figure width (in)",
	settings.FieldFigHeight: "Figure height (in)",
}

// SettingsDialog edits the simulation settings.
// Reset only refills the form with defaults; nothing is stored until Save.
type SettingsDialog struct {
	store  *settings.Store
	window fyne.Window
	dlg    *dialog.CustomDialog

	entries map[settings.Field]*widget.Entry

	// Callback; a non-nil error is shown and the dialog is kept open.
	onSave func(settings.Candidate) error
}

// NewSettingsDialog creates a settings dialog over store.
func NewSettingsDialog(store *settings.Store, window fyne.Window, onSave func(settings.Candidate) error) *SettingsDialog {
	d := &SettingsDialog{
		store:   store,
		window:  window,
		entries: make(map[settings.Field]*widget.Entry),
		onSave:  onSave,
	}
	d.createContent()
	return d
}

// Show refreshes the form from the current settings and displays it.
func (d *SettingsDialog) Show() {
	d.fill(d.store.Get())
	d.dlg.Show()
}

// Reset stages the default values in the form.
func (d *SettingsDialog) Reset() {
	d.fill(d.store.Reset())
}

// Save submits the form.
func (d *SettingsDialog) Save() {
	if err := d.onSave(d.candidate()); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	d.dlg.Hide()
}

func (d *SettingsDialog) createContent() {
	items := make([]*widget.FormItem, 0, len(settings.Fields))
	for _, f := range settings.Fields {
		e := widget.NewEntry()
		d.entries[f] = e
		items = append(items, widget.NewFormItem(fieldLabels[f], e))
	}
	form := widget.NewForm(items...)

	d.dlg = dialog.NewCustomWithoutButtons("Settings", form, d.window)
	d.dlg.SetButtons([]fyne.CanvasObject{
		widget.NewButton("Cancel", d.dlg.Hide),
		widget.NewButton("Reset", d.Reset),
		widget.NewButton("Save", d.Save),
	})
	d.dlg.Resize(fyne.NewSize(460, 480))
}

func (d *SettingsDialog) fill(s settings.Settings) {
	for f, v := range settings.FormValues(s) {
		d.entries[f].SetText(v)
	}
}

func (d *SettingsDialog) candidate() settings.Candidate {
	c := make(settings.Candidate, len(d.entries))
	for f, e := range d.entries {
		c[f] = e.Text
	}
	return c
}
