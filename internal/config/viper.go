// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/internal/exchange"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable fintrack reads.
const EnvPrefix = "FINTRACK"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory      string `mapstructure:"directory" yaml:"directory"`
		Backend        string `mapstructure:"backend" yaml:"backend"`
		BackupEnabled  bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
		SQLiteFile     string `mapstructure:"sqlite_file" yaml:"sqlite_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"data" yaml:"data"`

	Display struct {
		Currency string `mapstructure:"currency" yaml:"currency"`
		BarWidth int    `mapstructure:"bar_width" yaml:"bar_width"`
	} `mapstructure:"display" yaml:"display"`

	Bills struct {
		ReminderDays int `mapstructure:"reminder_days" yaml:"reminder_days"`
	} `mapstructure:"bills" yaml:"bills"`

	Export struct {
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then the config file, then FINTRACK_* environment variables.
// An explicit configFile replaces the search path.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fintrack")
		v.AddConfigPath(".fintrack")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Data.Directory == "" {
		config.Data.Directory = DefaultDataDirectory()
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// defaults always decode
	_ = v.Unmarshal(&config)
	config.Data.Directory = DefaultDataDirectory()
	return &config
}

// DefaultDataDirectory is $HOME/.fintrack/data, or ./data without a home.
func DefaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "data"
	}
	return filepath.Join(home, ".fintrack", "data")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "")
	v.SetDefault("data.backend", "json")
	v.SetDefault("data.backup_enabled", true)
	v.SetDefault("data.sqlite_file", "fintrack.db")
	v.SetDefault("data.categories_file", "categories.yaml")

	// Display defaults
	v.SetDefault("display.currency", "CHF")
	v.SetDefault("display.bar_width", 40)

	// Bill defaults
	v.SetDefault("bills.reminder_days", 7)

	// Export defaults
	v.SetDefault("export.date_format", "YYYY-MM-DD")
	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Data.Backend) {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid data backend: %s (must be 'json', 'sqlite' or 'memory')", config.Data.Backend)
	}

	if config.Display.BarWidth < 1 || config.Display.BarWidth > 200 {
		return fmt.Errorf("display.bar_width must be between 1 and 200, got: %d", config.Display.BarWidth)
	}

	if config.Bills.ReminderDays < 0 {
		return fmt.Errorf("bills.reminder_days cannot be negative, got: %d", config.Bills.ReminderDays)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	if strings.TrimSpace(config.Export.DateFormat) == "" {
		return fmt.Errorf("export.date_format cannot be empty")
	}

	return nil
}

// DateLayout converts the export date format (YYYY, MM, DD tokens) into a
// Go time layout.
func (c *Config) DateLayout() string {
	return dateTokens.Replace(c.Export.DateFormat)
}

// CategoriesPath resolves the category rules file against the data
// directory.
func (c *Config) CategoriesPath() string {
	if filepath.IsAbs(c.Data.CategoriesFile) {
		return c.Data.CategoriesFile
	}
	return filepath.Join(c.Data.Directory, c.Data.CategoriesFile)
}

// DelimiterRune returns the export CSV delimiter, or the codec default when
// none is set.
func (c *Config) DelimiterRune() rune {
	runes := []rune(c.Export.Delimiter)
	if len(runes) == 0 {
		return exchange.DefaultDelimiter
	}
	return runes[0]
}

var dateTokens = strings.NewReplacer("YYYY", "2006", "MM", "01", "DD", "02")
