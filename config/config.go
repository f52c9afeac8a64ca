// Package config loads and saves Vism's ambient configuration: the
// Assign-mode escape table, the confusable-symbol hint table consulted
// by E008, the macro allowlist, and diagnostic display options, with
// platform-specific config-path resolution and fallback to defaults
// when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents Vism's compiler and diagnostics configuration.
type Config struct {
	// Compiler settings.
	Compiler struct {
		// Escapes overrides/extends the default Assign-mode escape
		// table (escape letter -> literal character).
		Escapes map[string]string `toml:"escapes"`
		// Macros lists the macro IDs enabled at compile time. A
		// registered macro, the built-in `d` (debug) included, runs only
		// when its ID is listed here.
		Macros []string `toml:"macros"`
	} `toml:"compiler"`

	// Display settings for diagnostic rendering.
	Display struct {
		ColorOutput   bool `toml:"color_output"`
		SourceContext int  `toml:"source_context"`
	} `toml:"display"`

	// Confusables maps a symbol a user might mistakenly type to the
	// symbol E008 should suggest instead, seeded with `*` -> `×`
	// (multiplication has no ASCII key on most layouts). Operator
	// packages may register further entries without touching the
	// compiler's error-rendering logic.
	Confusables map[string]string `toml:"confusables"`
}

// DefaultConfig returns a configuration with Vism's default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Compiler.Escapes = map[string]string{}
	cfg.Compiler.Macros = []string{"d"}

	cfg.Display.ColorOutput = true
	cfg.Display.SourceContext = 1

	cfg.Confusables = map[string]string{
		"*": "×",
	}

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "vism")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "vism")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, decoding it over
// the defaults so that settings absent from the file keep their default
// values. If the file does not exist, the defaults are returned as-is.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
