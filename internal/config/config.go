// Package config loads config.toml from the executable directory, with
// defaults when absent and environment-variable overrides on top.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Viewer  ViewerConfig  `toml:"viewer"`
	Columns ColumnsConfig `toml:"columns"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig carries the default source URLs pre-filled into the UI.
type DataConfig struct {
	PolygonURL     string `toml:"polygon_url"`
	SpreadsheetURL string `toml:"spreadsheet_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ViewerConfig configures the join and render behavior.
type ViewerConfig struct {
	PrefixLength int      `toml:"prefix_length"`
	Simplify     bool     `toml:"simplify"`
	PopupFields  []string `toml:"popup_fields"`
}

// ColumnsConfig is the explicit column mapping. Blank fields fall back to
// alias discovery; a farmer-code column that resolves to nothing fails the
// load with a clear error.
type ColumnsConfig struct {
	FarmerCode string `toml:"farmer_code"`
	Village    string `toml:"village"`
	Group      string `toml:"group"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20831,
			DevMode: false,
		},
		Data: DataConfig{
			TimeoutSeconds: 60,
		},
		Viewer: ViewerConfig{
			PrefixLength: 8,
			Simplify:     true,
			PopupFields:  []string{"Name", "FarmerCode", "Village", "Group"},
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml next to the executable. A missing file is not
// an error; environment overrides apply either way.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv layers FARMVIEW_* environment variables over the file values.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("FARMVIEW_POLYGON_URL"); v != "" {
		cfg.Data.PolygonURL = v
	}
	if v := os.Getenv("FARMVIEW_SPREADSHEET_URL"); v != "" {
		cfg.Data.SpreadsheetURL = v
	}
	if v := os.Getenv("FARMVIEW_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("FARMVIEW_PREFIX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Viewer.PrefixLength = n
		}
	}
	if v := os.Getenv("FARMVIEW_FARMER_CODE_COLUMN"); v != "" {
		cfg.Columns.FarmerCode = v
	}
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}
