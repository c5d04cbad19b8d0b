package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DataConfig locates the case export and the local data directory.
type DataConfig struct {
	// CSVPath is the path to the spreadsheet export of case records.
	CSVPath string `mapstructure:"csv_path" yaml:"csv_path"`

	// Dir holds the SQLite database and the log file.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// AuthConfig holds the login gate settings. The password is not stored
// here; it lives in the system keyring with a hardcoded fallback.
type AuthConfig struct {
	User string `mapstructure:"user" yaml:"user"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DatabasePath returns the SQLite database path inside the data directory.
func (c *AppConfig) DatabasePath() string {
	return filepath.Join(c.Data.Dir, "casedesk.db")
}

// LogPath returns the log file path inside the data directory.
func (c *AppConfig) LogPath() string {
	return filepath.Join(c.Data.Dir, "casedesk.log")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/casedesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "casedesk", "config.yaml")
}

// defaultDataDir returns the default directory for local state.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "casedesk")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			CSVPath: "processos_esaj.csv",
			Dir:     defaultDataDir(),
		},
		Auth: AuthConfig{
			User: "lmamprin",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("data.csv_path", "processos_esaj.csv")
	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("auth.user", "lmamprin")
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data", cfg.Data)
	v.Set("auth", cfg.Auth)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
