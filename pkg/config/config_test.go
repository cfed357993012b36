package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigHasSaneValues(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Engine.UseSpacing {
		t.Error("UseSpacing should default to true")
	}
	if cfg.Engine.MinimalSpacingPrecision != 3 {
		t.Errorf("MinimalSpacingPrecision = %d, want 3", cfg.Engine.MinimalSpacingPrecision)
	}
	if cfg.Engine.Parallelism < 1 {
		t.Errorf("Parallelism = %d, want >= 1", cfg.Engine.Parallelism)
	}
	if len(cfg.Test.SphereRadii) == 0 {
		t.Error("SphereRadii should have default entries")
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "gdt-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.MinimalSpacingPrecision != DefaultConfig().Engine.MinimalSpacingPrecision {
		t.Error("LoadConfig on a missing file should return defaults")
	}
}

func TestSaveAndLoadConfigRoundTrips(t *testing.T) {
	dir, err := os.MkdirTemp("", "gdt-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nested", "gdt.yaml")
	cfg := DefaultConfig()
	cfg.Engine.Parallelism = 7
	cfg.Test.SphereRadii = []float64{1, 2, 3}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Engine.Parallelism != 7 {
		t.Errorf("Parallelism = %d, want 7", loaded.Engine.Parallelism)
	}
	if len(loaded.Test.SphereRadii) != 3 {
		t.Errorf("SphereRadii = %v, want 3 entries", loaded.Test.SphereRadii)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "gdt-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
}
