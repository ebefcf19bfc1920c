package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate: %v", err)
	}
}

func TestDefaultClassifierWeights(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Classifier.MaintainabilityWeight != 0.30 {
		t.Errorf("Expected maintainability weight 0.30, got %v", cfg.Classifier.MaintainabilityWeight)
	}
	if cfg.Classifier.BuildTimeWeight != 0.20 {
		t.Errorf("Expected buildTime weight 0.20, got %v", cfg.Classifier.BuildTimeWeight)
	}
}

func TestLoadMissingConfigFallsBackToDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detector.MaxDepth != 1000 {
		t.Errorf("Expected default maxDepth 1000, got %d", cfg.Detector.MaxDepth)
	}
}

func TestLoadYamlOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".depscan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	yaml := "detector:\n  maxDepth: 50\ndiscovery:\n  extensions: [\".ts\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(root, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detector.MaxDepth != 50 {
		t.Errorf("Expected maxDepth 50 from file, got %d", cfg.Detector.MaxDepth)
	}
	if len(cfg.Discovery.Extensions) != 1 || cfg.Discovery.Extensions[0] != ".ts" {
		t.Errorf("Expected extensions override, got %v", cfg.Discovery.Extensions)
	}
	// Untouched sections keep defaults
	if !cfg.Detector.DedupeCycles {
		t.Error("Expected dedupeCycles default true to survive partial config")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "custom.yaml")
	if err := os.WriteFile(file, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(root, file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level debug, got %s", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classifier.RuntimeWeight = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for weight > 1")
	}
}

func TestValidateRejectsEmptyExtensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discovery.Extensions = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for empty extensions")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DEPSCAN_SCAN_PARALLELISM", "7")
	t.Setenv("DEPSCAN_DETECTOR_MAXDEPTH", "42")

	dir := t.TempDir()
	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scan.Parallelism != 7 {
		t.Errorf("expected env override parallelism 7, got %d", cfg.Scan.Parallelism)
	}
	if cfg.Detector.MaxDepth != 42 {
		t.Errorf("expected env override maxDepth 42, got %d", cfg.Detector.MaxDepth)
	}
}
