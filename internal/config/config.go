// Package config defines the depscan configuration schema and loading.
// Config files live at .depscan/config.{yaml,json,toml}; every tunable has
// a default matching the documented analysis behavior.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete depscan configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Discovery  DiscoveryConfig  `json:"discovery" mapstructure:"discovery"`
	Scan       ScanConfig       `json:"scan" mapstructure:"scan"`
	Detector   DetectorConfig   `json:"detector" mapstructure:"detector"`
	Classifier ClassifierConfig `json:"classifier" mapstructure:"classifier"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// DiscoveryConfig contains file discovery configuration
type DiscoveryConfig struct {
	// IgnoreDirs lists directory names skipped anywhere in the tree
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`
	// Extensions lists the source extensions kept during discovery
	Extensions []string `json:"extensions" mapstructure:"extensions"`
	// UseGitignore honors .gitignore files found at the analysis root
	UseGitignore bool `json:"useGitignore" mapstructure:"useGitignore"`
	// MaxFiles caps discovery to keep pathological trees bounded
	MaxFiles int `json:"maxFiles" mapstructure:"maxFiles"`
}

// ScanConfig contains node builder configuration
type ScanConfig struct {
	// MaxFileSizeBytes skips files larger than this during content reads
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	// Parallelism bounds the fan-out for file content reads (0 = NumCPU)
	Parallelism int `json:"parallelism" mapstructure:"parallelism"`
}

// DetectorConfig contains cycle detection configuration
type DetectorConfig struct {
	// MaxDepth bounds DFS path length; the current path is copied per
	// recursive call so unbounded depth can blow up on dense graphs
	MaxDepth int `json:"maxDepth" mapstructure:"maxDepth"`
	// DedupeCycles canonicalizes cycles by rotation so the same underlying
	// cycle reached from different DFS entry points is reported once
	DedupeCycles bool `json:"dedupeCycles" mapstructure:"dedupeCycles"`
}

// ClassifierConfig contains severity and impact scoring configuration.
// The impact coefficients are design constants, not empirically derived;
// maintainability is weighted highest.
type ClassifierConfig struct {
	BuildTimeWeight       float64 `json:"buildTimeWeight" mapstructure:"buildTimeWeight"`
	RuntimeWeight         float64 `json:"runtimeWeight" mapstructure:"runtimeWeight"`
	MaintainabilityWeight float64 `json:"maintainabilityWeight" mapstructure:"maintainabilityWeight"`
	TestabilityWeight     float64 `json:"testabilityWeight" mapstructure:"testabilityWeight"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Discovery: DiscoveryConfig{
			IgnoreDirs: []string{
				".git", ".svn", ".hg",
				"node_modules", "vendor",
				"dist", "build", "out", "coverage", ".next",
			},
			Extensions:   []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"},
			UseGitignore: true,
			MaxFiles:     10000,
		},
		Scan: ScanConfig{
			MaxFileSizeBytes: 1000000,
			Parallelism:      0,
		},
		Detector: DetectorConfig{
			MaxDepth:     1000,
			DedupeCycles: true,
		},
		Classifier: ClassifierConfig{
			BuildTimeWeight:       0.20,
			RuntimeWeight:         0.15,
			MaintainabilityWeight: 0.30,
			TestabilityWeight:     0.25,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load loads configuration from an explicit file, or from
// .depscan/config.{yaml,json,toml} under the given root. A missing config
// file falls back to defaults.
func Load(root string, explicitFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// DEPSCAN_SCAN_PARALLELISM=8 overrides scan.parallelism, etc.
	v.SetEnvPrefix("DEPSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(root, ".depscan"))
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env overrides still
		// apply through the viper instance below.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicitFile != "" {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults mirrors DefaultConfig so partial config files inherit
// the remaining defaults.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("discovery.ignoreDirs", d.Discovery.IgnoreDirs)
	v.SetDefault("discovery.extensions", d.Discovery.Extensions)
	v.SetDefault("discovery.useGitignore", d.Discovery.UseGitignore)
	v.SetDefault("discovery.maxFiles", d.Discovery.MaxFiles)
	v.SetDefault("scan.maxFileSizeBytes", d.Scan.MaxFileSizeBytes)
	v.SetDefault("scan.parallelism", d.Scan.Parallelism)
	v.SetDefault("detector.maxDepth", d.Detector.MaxDepth)
	v.SetDefault("detector.dedupeCycles", d.Detector.DedupeCycles)
	v.SetDefault("classifier.buildTimeWeight", d.Classifier.BuildTimeWeight)
	v.SetDefault("classifier.runtimeWeight", d.Classifier.RuntimeWeight)
	v.SetDefault("classifier.maintainabilityWeight", d.Classifier.MaintainabilityWeight)
	v.SetDefault("classifier.testabilityWeight", d.Classifier.TestabilityWeight)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Discovery.Extensions) == 0 {
		return fmt.Errorf("discovery.extensions must not be empty")
	}
	if c.Detector.MaxDepth <= 0 {
		return fmt.Errorf("detector.maxDepth must be positive")
	}
	for name, w := range map[string]float64{
		"buildTimeWeight":       c.Classifier.BuildTimeWeight,
		"runtimeWeight":         c.Classifier.RuntimeWeight,
		"maintainabilityWeight": c.Classifier.MaintainabilityWeight,
		"testabilityWeight":     c.Classifier.TestabilityWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("classifier.%s must be in [0,1], got %v", name, w)
		}
	}
	return nil
}
