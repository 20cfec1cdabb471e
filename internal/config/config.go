// Package config loads and saves the persistent application settings shared
// by the ots commands and the editor window.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/router"
)

// AppConfig stores persistent application settings
type AppConfig struct {
	Policy   string  `json:"policy"`    // both, components, wires, none
	Batch    string  `json:"batch"`     // frozen, sequential
	Drag     string  `json:"drag"`      // live, deferred
	Budget   string  `json:"budget"`    // Go duration, e.g. "1s"
	Margin   int     `json:"margin"`    // Free cells around each search region
	Simplify bool    `json:"simplify"`  // Merge collinear waypoints
	Theme    string  `json:"theme"`     // light, dark
	SnapStep float64 `json:"snap_step"` // Placement lattice step in world units
	Columns  int     `json:"columns"`   // Canvas width in lattice steps (0: unbounded)
	Rows     int     `json:"rows"`      // Canvas height in lattice steps (0: unbounded)
}

// Default returns the settings used when no config file exists.
func Default() *AppConfig {
	return &AppConfig{
		Policy:   obstacle.Both.String(),
		Batch:    editor.Frozen.String(),
		Drag:     editor.Live.String(),
		Budget:   router.DefaultBudget.String(),
		Margin:   obstacle.DefaultMargin,
		Simplify: true,
		Theme:    render.ThemeLight.String(),
		SnapStep: grid.DefaultExtent.Step,
		Columns:  grid.DefaultExtent.Columns,
		Rows:     grid.DefaultExtent.Rows,
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var configDir string
	if os.Getenv("APPDATA") != "" {
		// Windows: %APPDATA%\OpenTraceSchem
		configDir = filepath.Join(os.Getenv("APPDATA"), "OpenTraceSchem")
	} else {
		// Linux/macOS: ~/.config/opentraceschem
		configDir = filepath.Join(homeDir, ".config", "opentraceschem")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from the default location. A missing
// file yields Default().
func LoadConfig() (*AppConfig, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration at path. Fields absent from the
// file keep their default values.
func LoadConfigFrom(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to the default location.
func SaveConfig(config *AppConfig) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

// SaveConfigTo saves the configuration at path, creating its directory.
func SaveConfigTo(path string, config *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EditorConfig converts the settings into an editor configuration.
func (c *AppConfig) EditorConfig() (*editor.Config, error) {
	cfg := editor.DefaultConfig()

	policy, err := obstacle.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	if cfg.Batch, err = editor.ParseBatchMode(c.Batch); err != nil {
		return nil, err
	}
	if cfg.Drag, err = editor.ParseDragMode(c.Drag); err != nil {
		return nil, err
	}

	if c.Budget != "" {
		d, err := time.ParseDuration(c.Budget)
		if err != nil {
			return nil, fmt.Errorf("invalid budget %q: %w", c.Budget, err)
		}
		cfg.Router.Budget = d
	}
	cfg.Router.Simplify = c.Simplify
	cfg.Router.Obstacles.Margin = c.Margin

	cfg.Extent = grid.Extent{Columns: c.Columns, Rows: c.Rows, Step: c.SnapStep}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RenderTheme returns the configured colour theme.
func (c *AppConfig) RenderTheme() (render.Theme, error) {
	return render.ParseTheme(c.Theme)
}
