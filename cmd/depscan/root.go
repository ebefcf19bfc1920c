package main

import (
	"depscan/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "depscan",
	Short: "depscan - circular dependency analyzer for JS/TS codebases",
	Long: `depscan statically analyzes a JavaScript/TypeScript source tree, builds the
file-level import graph, detects circular dependencies, and produces a
dependency health report with per-cycle resolution strategies.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("depscan version {{.Version}}\n")
}
