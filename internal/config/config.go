package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigPath is the path to the repro config file, relative to the process working
// directory.
const ConfigPath = "config/jointbug.json"

// Prefs holds run preferences for the repro: window size, whether the filter-data
// workaround is applied when the diagnostic joint is created, how long after loop
// start the joint is created, debug overlays, and optional profiling.
type Prefs struct {
	Width          int32   `json:"width"`
	Height         int32   `json:"height"`
	UseWorkaround  bool    `json:"use_workaround"`
	TriggerSeconds float64 `json:"trigger_seconds"`
	ShowFPS        bool    `json:"show_fps"`
	ShowMemAlloc   bool    `json:"show_memalloc"`
	GridVisible    bool    `json:"grid_visible"`
	// Profile selects run profiling: "" (off), "cpu", or "mem".
	Profile string `json:"profile,omitempty"`
}

// Default returns the preferences the original harness was run with: 1280x720,
// workaround off (the bug is shown, not fixed), joint created 3 seconds in.
func Default() Prefs {
	return Prefs{
		Width:          1280,
		Height:         720,
		UseWorkaround:  false,
		TriggerSeconds: 3,
		GridVisible:    true,
	}
}

// Load reads preferences from config/jointbug.json. If the file is missing or
// invalid, returns Default() and does not create a file.
func Load() (Prefs, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to config/jointbug.json, creating the config directory
// if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}
