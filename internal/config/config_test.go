package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "API_PORT", "GIN_MODE", "TIRE_DATA_FILE", "TIRE_DATA_SHEET", "EXPORT_MAX_CONCURRENT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.APIPort != "8090" {
		t.Errorf("APIPort = %q, want 8090", cfg.Server.APIPort)
	}
	if cfg.Data.FilePath != "Tire_master.csv" {
		t.Errorf("FilePath = %q, want Tire_master.csv", cfg.Data.FilePath)
	}
	if cfg.Data.SheetName != "Sheet1" {
		t.Errorf("SheetName = %q, want Sheet1", cfg.Data.SheetName)
	}
	if cfg.Export.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", cfg.Export.MaxConcurrent)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("TIRE_DATA_FILE", "data/tires.xlsx")
	t.Setenv("TIRE_DATA_SHEET", "Catalog")
	t.Setenv("EXPORT_MAX_CONCURRENT", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Data.FilePath != "data/tires.xlsx" {
		t.Errorf("FilePath = %q", cfg.Data.FilePath)
	}
	if cfg.Data.SheetName != "Catalog" {
		t.Errorf("SheetName = %q", cfg.Data.SheetName)
	}
	if cfg.Export.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Export.MaxConcurrent)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unsupported data file extension",
			env:     map[string]string{"TIRE_DATA_FILE": "tires.json"},
			wantErr: "must be a .csv",
		},
		{
			name:    "zero export concurrency",
			env:     map[string]string{"EXPORT_MAX_CONCURRENT": "0"},
			wantErr: "at least 1",
		},
		{
			name:    "negative export concurrency",
			env:     map[string]string{"EXPORT_MAX_CONCURRENT": "-3"},
			wantErr: "at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNonNumericEnvFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXPORT_MAX_CONCURRENT", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want default 4", cfg.Export.MaxConcurrent)
	}
}
