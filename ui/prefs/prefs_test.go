package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesFallbacks(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "none.json"))
	w, h := p.WindowSize(1180, 860)
	assert.Equal(t, 1180.0, w)
	assert.Equal(t, 860.0, h)
	assert.Empty(t, p.LastCharge())
	assert.Empty(t, p.LastExportDir())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", prefsFile)
	p := LoadFrom(path)
	p.SetWindowSize(900, 700)
	p.SetLastCharge("-1e-9")
	p.SetLastExportDir("/tmp/figs")
	require.NoError(t, p.Save())

	q := LoadFrom(path)
	w, h := q.WindowSize(0, 0)
	assert.Equal(t, 900.0, w)
	assert.Equal(t, 700.0, h)
	assert.Equal(t, "-1e-9", q.LastCharge())
	assert.Equal(t, "/tmp/figs", q.LastExportDir())
}

func TestZeroWindowSizeUsesFallback(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), prefsFile))
	p.SetWindowSize(0, 700)
	w, h := p.WindowSize(1180, 860)
	assert.Equal(t, 1180.0, w)
	assert.Equal(t, 860.0, h)
}

func TestCorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"lastCharge": 5`), 0o644))
	p := LoadFrom(path)
	assert.Empty(t, p.LastCharge())
}
