package config

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent and returns the file it loaded. Variables already
// set win, so loading twice is harmless.
func LoadEnv(logger logging.Logger) string {
	return loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
}

func loadEnvFile(logger logging.Logger, candidates ...string) string {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	for _, envFile := range candidates {
		if !fileutils.FileExists(envFile) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// NewLogger builds the application logger from the log section.
func NewLogger(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}

// DefaultPath is the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".fintrack", "config.yaml"), nil
}

// WriteDefault writes cfg as a YAML template to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, cfg *Config, force bool) error {
	if cfg == nil {
		cfg = Default()
	}
	if fileutils.FileExists(path) && !force {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# fintrack configuration. Every key can be overridden with FINTRACK_<SECTION>_<KEY>.\n")
	return fileutils.WriteFile(path, append(header, data...), models.PermissionDataFile)
}
