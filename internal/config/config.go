package config

import (
	"fmt"
	"os"
	"path/filepath"

	"easyExcel/internal/host"
	"easyExcel/internal/logger"

	"github.com/BurntSushi/toml"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Host   HostConfig   `toml:"host"`
	Sheets SheetsConfig `toml:"sheets"`
	Format FormatConfig `toml:"format"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

type HostConfig struct {
	// Backend is "excelize" or "com".
	Backend        string `toml:"backend"`
	Visible        bool   `toml:"visible"`
	DisplayAlerts  bool   `toml:"display_alerts"`
	ScreenUpdating bool   `toml:"screen_updating"`
	EnableEvents   bool   `toml:"enable_events"`
	// BindingCache overrides where the COM backend keeps generated bindings.
	BindingCache string `toml:"binding_cache"`
}

type SheetsConfig struct {
	StrictNames          bool `toml:"strict_names"`
	RollbackInvalidSheet bool `toml:"rollback_invalid_sheet"`
}

type FormatConfig struct {
	CenterMerged bool   `toml:"center_merged"`
	MinColor     string `toml:"min_color"`
	MidColor     string `toml:"mid_color"`
	MidType      string `toml:"mid_type"`
	MidValue     string `toml:"mid_value"`
	MaxColor     string `toml:"max_color"`
}

type UIConfig struct {
	ColumnsPerRow int `toml:"columns_per_row"`
	RowsPerPage   int `toml:"rows_per_page"`
}

type LogConfig struct {
	Directory string `toml:"directory"`
	Level     string `toml:"level"`
}

// Default returns the configuration written when no file exists.
func Default() *Config {
	scale := host.DefaultColorScale()
	return &Config{
		Host: HostConfig{
			Backend: "excelize",
		},
		Format: FormatConfig{
			CenterMerged: true,
			MinColor:     scale.Min.Color,
			MidColor:     scale.Mid.Color,
			MidType:      scale.Mid.Type,
			MidValue:     scale.Mid.Value,
			MaxColor:     scale.Max.Color,
		},
		UI: UIConfig{
			ColumnsPerRow: 4,
			RowsPerPage:   3,
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
	}
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Keys missing from the file keep their default values.
	config := *Default()
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}

// Set defaults if missing
func (c *Config) applyDefaults() {
	def := Default()
	if c.Host.Backend == "" {
		c.Host.Backend = def.Host.Backend
	}
	if c.Format.MinColor == "" {
		c.Format.MinColor = def.Format.MinColor
	}
	if c.Format.MidColor == "" {
		c.Format.MidColor = def.Format.MidColor
	}
	if c.Format.MidType == "" {
		c.Format.MidType = def.Format.MidType
		c.Format.MidValue = def.Format.MidValue
	}
	if c.Format.MaxColor == "" {
		c.Format.MaxColor = def.Format.MaxColor
	}
	if c.UI.ColumnsPerRow == 0 {
		c.UI.ColumnsPerRow = def.UI.ColumnsPerRow
	}
	if c.UI.RowsPerPage == 0 {
		c.UI.RowsPerPage = def.UI.RowsPerPage
	}
	if c.Log.Directory == "" {
		c.Log.Directory = def.Log.Directory
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate reports settings no component can act on.
func (c *Config) Validate() error {
	switch c.Host.Backend {
	case "excelize", "com":
	default:
		return fmt.Errorf("unknown host backend %q", c.Host.Backend)
	}
	if c.UI.ColumnsPerRow < 1 || c.UI.RowsPerPage < 1 {
		return fmt.Errorf("ui grid must be at least 1x1")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.ColorScale().Validate()
}

// Flags returns the host flags from the [host] section.
func (c *Config) Flags() host.Flags {
	return host.Flags{
		Visible:        c.Host.Visible,
		DisplayAlerts:  c.Host.DisplayAlerts,
		ScreenUpdating: c.Host.ScreenUpdating,
		EnableEvents:   c.Host.EnableEvents,
	}
}

// ColorScale builds the color scale from the [format] section.
func (c *Config) ColorScale() host.ColorScale {
	return host.ColorScale{
		Min: host.ScalePoint{Type: "min", Color: c.Format.MinColor},
		Mid: host.ScalePoint{Type: c.Format.MidType, Value: c.Format.MidValue, Color: c.Format.MidColor},
		Max: host.ScalePoint{Type: "max", Color: c.Format.MaxColor},
	}
}
