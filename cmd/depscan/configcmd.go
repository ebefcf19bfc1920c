package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"depscan/internal/config"
	"depscan/internal/errors"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

var (
	configInitFormat string
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage depscan configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  "Creates .depscan/config.<format> with the default configuration in the current directory",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "yaml", "Config file format: yaml, toml, or json")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.New(errors.InternalError, "Failed to get current directory", err)
	}

	data, err := renderConfig(config.DefaultConfig(), configInitFormat)
	if err != nil {
		return err
	}

	dir := filepath.Join(cwd, ".depscan")
	if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
		return errors.New(errors.InternalError, "Failed to create .depscan directory", mkdirErr)
	}

	path := filepath.Join(dir, "config."+configInitFormat)
	if _, statErr := os.Stat(path); statErr == nil && !configInitForce {
		fmt.Printf("Config already exists at %s\n", path)
		fmt.Println("Run 'depscan config init --force' to overwrite.")
		return nil
	}

	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return errors.New(errors.InternalError, "Failed to write config file", writeErr)
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

// renderConfig marshals the config in the requested format. The config
// struct carries json tags only, so yaml and toml go through a JSON
// round-trip to keep the camelCase key names viper expects.
func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	case "yaml", "toml":
		jsonData, err := json.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		var tree map[string]interface{}
		if err := json.Unmarshal(jsonData, &tree); err != nil {
			return nil, err
		}
		if format == "yaml" {
			return yaml.Marshal(tree)
		}
		return toml.Marshal(tree)
	default:
		return nil, fmt.Errorf("unknown config format %q (expected yaml, toml, or json)", format)
	}
}
