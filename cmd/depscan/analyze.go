package main

import (
	"fmt"
	"io"
	"os"

	"depscan/internal/analyzer"
	"depscan/internal/config"
	"depscan/internal/errors"
	"depscan/internal/logging"
	"depscan/internal/output"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat    string
	analyzeOutput    string
	analyzeGzip      bool
	analyzeIgnore    []string
	analyzeExt       []string
	analyzeConfig    string
	analyzeFailUnder float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a source tree for circular dependencies",
	Long: `Scans the given directory (default: current directory) for JS/TS source
files, builds the import graph, detects circular dependencies, and writes a
dependency health report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Report format: json or human")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeGzip, "gzip", false, "Gzip-compress the report output")
	analyzeCmd.Flags().StringSliceVar(&analyzeIgnore, "ignore", nil, "Additional directory names to skip during discovery")
	analyzeCmd.Flags().StringSliceVar(&analyzeExt, "ext", nil, "Override the source extension allowlist (e.g. .ts,.tsx)")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Explicit config file path")
	analyzeCmd.Flags().Float64Var(&analyzeFailUnder, "fail-under", -1, "Exit non-zero when overall health drops below this score")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.Load(root, analyzeConfig)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.Level(cfg.Logging.Level),
	})

	res, err := analyzer.New(cfg, logger).Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	var rendered []byte
	switch analyzeFormat {
	case "json":
		rendered, err = output.DeterministicEncodeIndented(res.Report, "  ")
		if err != nil {
			return errors.New(errors.InternalError, "Failed to encode report", err)
		}
		rendered = append(rendered, '\n')
	case "human":
		rendered = []byte(renderHumanReport(res))
	default:
		return fmt.Errorf("unknown format %q (expected json or human)", analyzeFormat)
	}

	if err := writeReport(rendered); err != nil {
		return err
	}

	if analyzeFailUnder >= 0 && res.Report.OverallHealth < analyzeFailUnder {
		return &exitError{
			code: 2,
			message: fmt.Sprintf("overall health %.0f is below threshold %.0f",
				res.Report.OverallHealth, analyzeFailUnder),
		}
	}
	return nil
}

// applyFlagOverrides layers CLI flags over the loaded config. Ignore dirs
// accumulate; the extension list replaces the configured one when set.
func applyFlagOverrides(cfg *config.Config) {
	cfg.Discovery.IgnoreDirs = append(cfg.Discovery.IgnoreDirs, analyzeIgnore...)
	if len(analyzeExt) > 0 {
		cfg.Discovery.Extensions = analyzeExt
	}
}

func writeReport(data []byte) error {
	var dst io.Writer = os.Stdout

	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput)
		if err != nil {
			return errors.New(errors.ReportWriteFailed, "Failed to create report file", err).
				WithDetails(map[string]string{"path": analyzeOutput})
		}
		defer func() { _ = f.Close() }()
		dst = f
	}

	if analyzeGzip {
		gw := gzip.NewWriter(dst)
		if _, err := gw.Write(data); err != nil {
			return errors.New(errors.ReportWriteFailed, "Failed to write report", err)
		}
		if err := gw.Close(); err != nil {
			return errors.New(errors.ReportWriteFailed, "Failed to flush report", err)
		}
		return nil
	}

	if _, err := dst.Write(data); err != nil {
		return errors.New(errors.ReportWriteFailed, "Failed to write report", err)
	}
	return nil
}
