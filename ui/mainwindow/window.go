// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"sync"

	"charge-field/internal/app"
	"charge-field/internal/charge"
	"charge-field/internal/config"
	"charge-field/internal/render"
	"charge-field/internal/settings"
	"charge-field/internal/sim"
	"charge-field/internal/version"
	"charge-field/pkg/geometry"
	"charge-field/ui/canvas"
	"charge-field/ui/dialogs"
	"charge-field/ui/panels"
	"charge-field/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Electric Field of Stationary Charges"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	prefs    *prefs.Prefs
	cfg      config.Config
	renderer *render.Renderer

	canvas         *canvas.ChargeCanvas
	sidePanel      *panels.SidePanel
	statusBar      *widget.Label
	addDialog      *dialogs.AddChargeDialog
	settingsDialog *dialogs.SettingsDialog

	mu            sync.Mutex
	lastImage     image.Image
	resultsWindow fyne.Window
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, cfg config.Config, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		prefs:    p,
		cfg:      cfg,
		renderer: render.NewRenderer(cfg.Render.DPI),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	w, h := p.WindowSize(float64(cfg.Window.Width), float64(cfg.Window.Height))
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
	mw.SetOnClosed(mw.SavePreferences)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	size := mw.cfg.Canvas.Size
	mapper := geometry.NewMapper(size, size, mw.cfg.Canvas.PixelsPerCm)
	mw.canvas = canvas.NewChargeCanvas(mapper, mw.state.Settings.Get().Radius)
	mw.canvas.SetOnTap(mw.onCanvasTapped)

	mw.sidePanel = panels.NewSidePanel(mw.state, panels.Actions{
		Add:      mw.onAddCharge,
		Clear:    mw.onClearAll,
		Run:      mw.onRun,
		Settings: mw.onSettings,
	})

	mw.addDialog = dialogs.NewAddChargeDialog(mw.Window, mw.addCharge)
	mw.addDialog.SetChargeText(mw.prefs.LastCharge())
	mw.settingsDialog = dialogs.NewSettingsDialog(mw.state.Settings, mw.Window, mw.updateSettings)

	mw.statusBar = widget.NewLabel("Ready")

	split := container.NewHSplit(
		container.NewScroll(container.NewCenter(mw.canvas)),
		mw.sidePanel.Container(),
	)
	split.SetOffset(0.7)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Result Image...", mw.onSaveImage),
	)

	simMenu := fyne.NewMenu("Simulation",
		fyne.NewMenuItem("Add Charge...", mw.onAddCharge),
		fyne.NewMenuItem("Clear All", mw.onClearAll),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Run Simulation", mw.onRun),
		fyne.NewMenuItem("Show Last Result", mw.onShowResult),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, simMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventChargesChanged, func(data interface{}) {
		charges, _ := data.([]charge.Charge)
		mw.canvas.SetCharges(charges)
		mw.sidePanel.SetCharges(charges)
		if len(charges) == 0 {
			mw.updateStatus("All charges cleared")
		} else {
			mw.updateStatus("Added " + charges[len(charges)-1].String())
		}
	})

	mw.state.On(app.EventBoundaryChanged, func(data interface{}) {
		if radius, ok := data.(float64); ok {
			mw.canvas.Reset(radius)
			mw.updateStatus(fmt.Sprintf("Boundary radius set to %g m; charges cleared", radius))
		}
	})

	mw.state.On(app.EventSettingsChanged, func(data interface{}) {
		mw.updateStatus("Settings saved")
	})

	mw.state.On(app.EventRunStarted, func(data interface{}) {
		mw.sidePanel.SetRunning(true)
		mw.sidePanel.SetProgress(0)
	})

	mw.state.On(app.EventRunProgress, func(data interface{}) {
		if p, ok := data.(app.Progress); ok {
			mw.sidePanel.SetProgress(p.Fraction)
			mw.updateStatus(fmt.Sprintf("Simulation: %s (%.0f%%)", p.Stage, p.Fraction*100))
		}
	})

	mw.state.On(app.EventRunFailed, func(data interface{}) {
		mw.sidePanel.SetRunning(false)
		if err, ok := data.(error); ok {
			mw.updateStatus("Simulation failed: " + err.Error())
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// SavePreferences stores the window size and the last charge value.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(float64(size.Width), float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func (mw *MainWindow) onCanvasTapped(p geometry.Point2D) {
	mw.addDialog.Prefill(p)
	mw.addDialog.Show()
}

func (mw *MainWindow) onAddCharge() {
	mw.addDialog.Show()
}

func (mw *MainWindow) addCharge(xText, yText, qText string) error {
	if err := mw.state.AddChargeText(xText, yText, qText); err != nil {
		return err
	}
	mw.prefs.SetLastCharge(qText)
	return nil
}

func (mw *MainWindow) onClearAll() {
	mw.state.ClearCharges()
}

func (mw *MainWindow) onSettings() {
	mw.settingsDialog.Show()
}

func (mw *MainWindow) updateSettings(c settings.Candidate) error {
	_, err := mw.state.UpdateSettings(c)
	return err
}

func (mw *MainWindow) onRun() {
	mw.sidePanel.SetRunning(true)
	err := mw.state.StartRun(mw.runFinished)
	if errors.Is(err, sim.ErrBusy) {
		mw.updateStatus("A simulation is already running")
		return
	}
	if err != nil {
		mw.sidePanel.SetRunning(false)
		dialog.ShowError(err, mw.Window)
	}
}

// runFinished is called on the worker goroutine.
func (mw *MainWindow) runFinished(data *sim.DisplayData, err error) {
	if err != nil {
		var solverErr *sim.SolverError
		if errors.As(err, &solverErr) {
			err = fmt.Errorf("the field solver failed: %w", solverErr.Err)
		}
		dialog.ShowError(err, mw.Window)
		return
	}

	mw.updateStatus("Rendering figure...")
	img, err := mw.renderer.Render(data)
	mw.sidePanel.SetRunning(false)
	if err != nil {
		log.Printf("Render failed: %v", err)
		dialog.ShowError(fmt.Errorf("rendering failed: %w", err), mw.Window)
		return
	}

	mw.mu.Lock()
	mw.lastImage = img
	mw.mu.Unlock()

	mw.sidePanel.SetThumbnail(img)
	mw.updateStatus(fmt.Sprintf("Simulation complete: %d charges", len(data.Markers)))
	mw.onShowResult()
}

func (mw *MainWindow) resultImage() image.Image {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.lastImage
}

// onShowResult opens the results window, replacing any previous one.
func (mw *MainWindow) onShowResult() {
	img := mw.resultImage()
	if img == nil {
		mw.updateStatus("No simulation result yet")
		return
	}

	mw.mu.Lock()
	prev := mw.resultsWindow
	mw.resultsWindow = nil
	mw.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	w := mw.app.NewWindow("Simulation Result")
	picture := fynecanvas.NewImageFromImage(img)
	picture.FillMode = fynecanvas.ImageFillContain
	picture.ScaleMode = fynecanvas.ImageScaleSmooth
	w.SetContent(picture)
	b := img.Bounds()
	w.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	mw.mu.Lock()
	mw.resultsWindow = w
	mw.mu.Unlock()
	w.SetOnClosed(func() {
		mw.mu.Lock()
		if mw.resultsWindow == w {
			mw.resultsWindow = nil
		}
		mw.mu.Unlock()
	})
	w.Show()
}

func (mw *MainWindow) onSaveImage() {
	img := mw.resultImage()
	if img == nil {
		dialog.ShowInformation("Save Result Image", "Run a simulation first.", mw.Window)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := png.Encode(writer, img); err != nil {
			dialog.ShowError(fmt.Errorf("save %s: %w", writer.URI().Name(), err), mw.Window)
			return
		}
		mw.prefs.SetLastExportDir(filepath.Dir(writer.URI().Path()))
		mw.updateStatus("Saved " + writer.URI().Path())
	}, mw.Window)
	fd.SetFileName("field.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if dir := mw.prefs.LastExportDir(); dir != "" {
		if listable, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(listable)
		}
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("%s\n%s\n\n"+
			"Place point charges on the canvas and plot the electric field they produce.",
			appTitle, version.String()),
		mw.Window)
}
