// Package main provides the entry point for the charge field application.
package main

import (
	"flag"
	"log"

	"charge-field/internal/app"
	"charge-field/internal/config"
	"charge-field/internal/solver"
	"charge-field/internal/version"
	"charge-field/ui/mainwindow"
	"charge-field/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.charge-field"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to config.toml (default $"+config.EnvPath+" or the user config dir)")
	flag.Parse()

	log.Printf("Starting charge-field %s", version.String())

	path := *configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Config %s: %v; using built-in defaults", path, err)
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.ChargesTheme{})

	state := app.NewState(cfg.Settings, solver.Coulomb{})
	win := mainwindow.New(a, state, cfg, prefs.Load())
	win.SetMaster()

	if flag.NArg() > 0 {
		log.Printf("Ignoring extra arguments: %v", flag.Args())
	}

	win.ShowAndRun()
}
