package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tirescout/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Export ExportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// DataConfig holds tire data source settings
type DataConfig struct {
	// FilePath points at the CSV or XLSX tire master file.
	FilePath string
	// SheetName is the worksheet to read when FilePath is a workbook.
	SheetName string
}

// ExportConfig holds download/export settings
type ExportConfig struct {
	// MaxConcurrent bounds simultaneous XLSX export generation.
	MaxConcurrent int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Data:   loadDataConfig(),
		Export: loadExportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8090"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		FilePath:  getEnvOrDefault("TIRE_DATA_FILE", "Tire_master.csv"),
		SheetName: getEnvOrDefault("TIRE_DATA_SHEET", "Sheet1"),
	}
}

func loadExportConfig() ExportConfig {
	return ExportConfig{
		MaxConcurrent: int64(getEnvIntOrDefault("EXPORT_MAX_CONCURRENT", 4)),
	}
}

func validateConfig(config *Config) error {
	if config.Data.FilePath == "" {
		return errors.ConfigInvalid("TIRE_DATA_FILE is required")
	}
	switch ext := strings.ToLower(filepath.Ext(config.Data.FilePath)); ext {
	case ".csv", ".xlsx", ".xls":
	default:
		return errors.ConfigInvalid("TIRE_DATA_FILE must be a .csv, .xlsx or .xls file")
	}
	if config.Export.MaxConcurrent < 1 {
		return errors.ConfigInvalid("EXPORT_MAX_CONCURRENT must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
