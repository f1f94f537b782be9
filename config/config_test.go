package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Buddy.Orders != 11 {
		t.Errorf("Expected Buddy.Orders=11, got %d", cfg.Buddy.Orders)
	}
	if cfg.Buddy.FrameSize != 4096 {
		t.Errorf("Expected Buddy.FrameSize=4096, got %d", cfg.Buddy.FrameSize)
	}
	if cfg.Buddy.MaxRegions != 32 {
		t.Errorf("Expected Buddy.MaxRegions=32, got %d", cfg.Buddy.MaxRegions)
	}

	if cfg.AML.MaxScopeDepth != 64 {
		t.Errorf("Expected AML.MaxScopeDepth=64, got %d", cfg.AML.MaxScopeDepth)
	}
	if !cfg.AML.StrictFailures {
		t.Error("Expected AML.StrictFailures=true")
	}

	if cfg.Dump.BytesPerLine != 16 {
		t.Errorf("Expected Dump.BytesPerLine=16, got %d", cfg.Dump.BytesPerLine)
	}
	if cfg.Dump.Format != "text" {
		t.Errorf("Expected Dump.Format=text, got %s", cfg.Dump.Format)
	}
}

func TestGetConfigPathHonorsOverride(t *testing.T) {
	t.Setenv("ROS_BRINGUP_CONFIG_DIR", t.TempDir())

	path := GetConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("Expected override directory to exist: %v", err)
	}
}

func TestGetConfigPathDefaultsUnderAppDir(t *testing.T) {
	t.Setenv("ROS_BRINGUP_CONFIG_DIR", "")

	path := GetConfigPath()
	if path == "" {
		t.Fatal("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
	if dir := filepath.Base(filepath.Dir(path)); dir != appDirName && path != "config.toml" {
		t.Errorf("Expected path under %s or fallback, got %s", appDirName, path)
	}
}

func TestGetLogPathHonorsOverride(t *testing.T) {
	t.Setenv("ROS_BRINGUP_LOG_DIR", t.TempDir())

	path := GetLogPath()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected override log directory to exist: %v", err)
	}
}

func TestGetLogPathDefaultsUnderAppDir(t *testing.T) {
	t.Setenv("ROS_BRINGUP_LOG_DIR", "")

	path := GetLogPath()
	if path == "" {
		t.Fatal("GetLogPath returned empty string")
	}
	if path != "logs" && filepath.Base(path) != "logs" {
		t.Errorf("Expected path to end with logs or be the fallback, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Buddy.Orders = 9
	cfg.Buddy.FrameSize = 8192
	cfg.AML.StrictFailures = false
	cfg.Dump.ColorOutput = false
	cfg.Dump.Format = "json"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Buddy.Orders != 9 {
		t.Errorf("Expected Buddy.Orders=9, got %d", loaded.Buddy.Orders)
	}
	if loaded.Buddy.FrameSize != 8192 {
		t.Errorf("Expected Buddy.FrameSize=8192, got %d", loaded.Buddy.FrameSize)
	}
	if loaded.AML.StrictFailures {
		t.Error("Expected AML.StrictFailures=false")
	}
	if loaded.Dump.ColorOutput {
		t.Error("Expected Dump.ColorOutput=false")
	}
	if loaded.Dump.Format != "json" {
		t.Errorf("Expected Dump.Format=json, got %s", loaded.Dump.Format)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Buddy.Orders != 11 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[buddy]
orders = "not a number"  # Invalid: should be int
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
