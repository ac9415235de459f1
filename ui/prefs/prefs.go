// Package prefs persists small UI preferences between sessions.
package prefs

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

type values struct {
	WindowWidth   float64 `json:"windowWidth,omitempty"`
	WindowHeight  float64 `json:"windowHeight,omitempty"`
	LastCharge    string  `json:"lastCharge,omitempty"`
	LastExportDir string  `json:"lastExportDir,omitempty"`
}

// Prefs holds the main window geometry, the last charge value entered, and
// the last figure export directory.
type Prefs struct {
	mu   sync.RWMutex
	v    values
	path string
}

// Load reads preferences from <user config dir>/charges/preferences.json.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(configDir, "charges", prefsFile))
}

// LoadFrom reads preferences from path. A missing or unreadable file gives empty preferences.
func LoadFrom(path string) *Prefs {
	p := &Prefs{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p.v); err != nil {
		log.Printf("Preferences %s ignored: %v", path, err)
		p.v = values{}
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.v, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// WindowSize returns the saved window size, or the fallback when none is saved.
func (p *Prefs) WindowSize(fallbackW, fallbackH float64) (w, h float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.v.WindowWidth > 0 && p.v.WindowHeight > 0 {
		return p.v.WindowWidth, p.v.WindowHeight
	}
	return fallbackW, fallbackH
}

// SetWindowSize records the window size.
func (p *Prefs) SetWindowSize(w, h float64) {
	p.mu.Lock()
	p.v.WindowWidth, p.v.WindowHeight = w, h
	p.mu.Unlock()
}

// LastCharge returns the charge text of the last accepted Add, or "".
func (p *Prefs) LastCharge() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v.LastCharge
}

// SetLastCharge records the charge text of an accepted Add.
func (p *Prefs) SetLastCharge(q string) {
	p.mu.Lock()
	p.v.LastCharge = q
	p.mu.Unlock()
}

// LastExportDir returns the directory of the last saved figure, or "".
func (p *Prefs) LastExportDir() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v.LastExportDir
}

// SetLastExportDir records the directory of a saved figure.
func (p *Prefs) SetLastExportDir(dir string) {
	p.mu.Lock()
	p.v.LastExportDir = dir
	p.mu.Unlock()
}
