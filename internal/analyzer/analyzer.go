// Package analyzer wires the full pipeline: discovery, node building,
// graph assembly, cycle detection, classification, and report generation.
// The only fatal error a caller sees is an invalid analysis root; every
// other failure mode degrades per-file and the run still yields a report.
package analyzer

import (
	"context"
	"os"
	"time"

	"depscan/internal/config"
	"depscan/internal/cycles"
	"depscan/internal/discovery"
	"depscan/internal/errors"
	"depscan/internal/graph"
	"depscan/internal/logging"
	"depscan/internal/report"
	"depscan/internal/scan"
)

// Analyzer runs the analysis pipeline. It holds no per-run state, so a
// single Analyzer may be reused across roots.
type Analyzer struct {
	cfg    *config.Config
	logger *logging.Logger
}

// New creates an analyzer bound to a configuration and logger.
func New(cfg *config.Config, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: logger,
	}
}

// Result carries everything a run produced. Report is the primary output;
// the graph and classified cycles are exposed for callers that want to
// inspect more than the summary.
type Result struct {
	Report   *report.Report
	Graph    *graph.DependencyGraph
	Cycles   []*graph.CircularDependency
	Files    int
	Duration time.Duration
}

// Analyze runs the full pipeline against the given root directory.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	started := time.Now()

	if err := validateRoot(root); err != nil {
		return nil, err
	}

	disc := discovery.NewDiscoverer(a.cfg.Discovery, a.logger)
	files, err := disc.Discover(root)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := scan.NewNodeBuilder(a.cfg.Scan, a.logger)
	nodes, err := builder.BuildNodes(ctx, files)
	if err != nil {
		return nil, err
	}

	assembler := graph.NewAssembler(a.logger)
	dg := assembler.Assemble(nodes)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detector := cycles.NewDetector(a.cfg.Detector, a.logger)
	rawCycles := detector.Detect(dg)

	classifier := cycles.NewClassifier(a.cfg.Classifier)
	synthesizer := cycles.NewSynthesizer()

	classified := make([]*graph.CircularDependency, 0, len(rawCycles))
	for _, cycle := range rawCycles {
		cd := classifier.Classify(dg, cycle)
		cd.Resolution = synthesizer.Synthesize(dg, cd)
		classified = append(classified, cd)
	}
	dg.Cycles = classified

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generator := report.NewGenerator(a.logger)
	rep := generator.Generate(dg, classified)

	duration := time.Since(started)
	a.logger.Info("analysis complete", logging.Fields{
		"files":       len(files),
		"nodes":       dg.NodeCount(),
		"edges":       dg.EdgeCount(),
		"cycles":      len(classified),
		"health":      rep.OverallHealth,
		"duration_ms": duration.Milliseconds(),
	})

	return &Result{
		Report:   rep,
		Graph:    dg,
		Cycles:   classified,
		Files:    len(files),
		Duration: duration,
	}, nil
}

// validateRoot rejects roots that do not exist or are not directories
// before any work happens. This is the single fatal failure mode.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.New(errors.InvalidRoot, "analysis root does not exist", err).
			WithDetails(map[string]string{"root": root})
	}
	if !info.IsDir() {
		return errors.New(errors.InvalidRoot, "analysis root is not a directory", nil).
			WithDetails(map[string]string{"root": root})
	}
	return nil
}
