package mainwindow

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"charge-field/internal/app"
	"charge-field/internal/config"
	"charge-field/internal/settings"
	"charge-field/internal/sim"
	"charge-field/internal/solver"
	"charge-field/ui/prefs"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindow(t *testing.T, s solver.Solver) *MainWindow {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	state := app.NewState(settings.Defaults(), s)
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	return New(a, state, config.Default(), p)
}

// runAndWait runs a simulation through the window's completion handler.
func runAndWait(t *testing.T, mw *MainWindow) error {
	t.Helper()
	done := make(chan error, 1)
	require.NoError(t, mw.state.StartRun(func(data *sim.DisplayData, err error) {
		mw.runFinished(data, err)
		done <- err
	}))
	select {
	case err := <-done:
		return err
	case <-time.After(30 * time.Second):
		t.Fatal("run did not finish")
		return nil
	}
}

func TestChargesMirroredInPanelAndCanvas(t *testing.T) {
	mw := newWindow(t, solver.Coulomb{})

	require.NoError(t, mw.addCharge("5", "0", "1e-9"))
	require.NoError(t, mw.addCharge("-5", "0", "-1e-9"))
	assert.Len(t, mw.sidePanel.Charges(), 2)
	assert.Equal(t, "1e-9", mw.prefs.LastCharge())

	err := mw.addCharge("5", "0", "3")
	assert.Error(t, err)
	assert.Len(t, mw.sidePanel.Charges(), 2)
	assert.Equal(t, "1e-9", mw.prefs.LastCharge())

	mw.onClearAll()
	assert.Empty(t, mw.sidePanel.Charges())
	assert.Equal(t, "All charges cleared", mw.statusBar.Text)
}

func TestRadiusChangeClearsListing(t *testing.T) {
	mw := newWindow(t, solver.Coulomb{})
	require.NoError(t, mw.addCharge("1", "1", "1"))

	require.NoError(t, mw.updateSettings(settings.Candidate{settings.FieldRadius: "0.10"}))
	assert.Empty(t, mw.sidePanel.Charges())
	assert.Equal(t, 0.10, mw.state.Settings.Get().Radius)
}

func TestSecondRunRejectedWhileBusy(t *testing.T) {
	release := make(chan struct{})
	mw := newWindow(t, solver.Func(func(src []solver.Source, l solver.Lattice, tm float64) (*solver.Field, error) {
		<-release
		return solver.Coulomb{}.Solve(src, l, tm)
	}))
	require.NoError(t, mw.updateSettings(settings.Candidate{settings.FieldNPoints: "20"}))

	done := make(chan error, 1)
	require.NoError(t, mw.state.StartRun(func(data *sim.DisplayData, err error) {
		mw.runFinished(data, err)
		done <- err
	}))
	require.Eventually(t, func() bool { return mw.sidePanel.Progress() == 0.35 }, 10*time.Second, time.Millisecond)
	assert.False(t, mw.sidePanel.RunEnabled())

	mw.onRun()
	assert.Equal(t, "A simulation is already running", mw.statusBar.Text)
	assert.False(t, mw.sidePanel.RunEnabled())
	assert.InDelta(t, 0.35, mw.sidePanel.Progress(), 1e-12)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("run did not finish")
	}
	assert.True(t, mw.sidePanel.RunEnabled())
}

func TestRunFinishedShowsResult(t *testing.T) {
	mw := newWindow(t, solver.Coulomb{})
	require.NoError(t, mw.addCharge("5", "0", "1e-9"))
	require.NoError(t, mw.updateSettings(settings.Candidate{settings.FieldNPoints: "20"}))

	require.NoError(t, runAndWait(t, mw))

	assert.NotNil(t, mw.resultImage())
	assert.True(t, mw.sidePanel.RunEnabled())
	assert.InDelta(t, 1.0, mw.sidePanel.Progress(), 1e-12)
}

func TestRunFailureLeavesProgressStalled(t *testing.T) {
	boom := errors.New("boom")
	mw := newWindow(t, solver.Func(func([]solver.Source, solver.Lattice, float64) (*solver.Field, error) {
		return nil, boom
	}))

	require.ErrorIs(t, runAndWait(t, mw), boom)

	assert.InDelta(t, 0.35, mw.sidePanel.Progress(), 1e-12)
	assert.True(t, mw.sidePanel.RunEnabled())
	assert.Nil(t, mw.resultImage())
}
