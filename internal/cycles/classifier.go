package cycles

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"depscan/internal/config"
	"depscan/internal/graph"
)

// Classifier assigns severity and four-axis impact scores to detected
// cycles. Thresholds follow a first-matching-rule table; the impact
// coefficients come from configuration.
type Classifier struct {
	cfg config.ClassifierConfig
	// now is injectable so DetectedAt is testable
	now func() time.Time
}

// NewClassifier creates a classifier from configuration
func NewClassifier(cfg config.ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg, now: time.Now}
}

// Classify builds the full CircularDependency record for one detected
// cycle sequence
func (c *Classifier) Classify(g *graph.DependencyGraph, cycle []string) *graph.CircularDependency {
	length := len(cycle)
	importance := averageImportance(g, cycle)

	cd := &graph.CircularDependency{
		ID:         CycleID(cycle),
		Nodes:      append([]string{}, cycle...),
		Severity:   classifySeverity(length, importance),
		Impact:     c.scoreImpact(length, importance),
		DetectedAt: c.now(),
		Metadata: graph.CycleMetadata{
			CycleLength:   length,
			InvolvedTypes: involvedTypes(g, cycle),
			AffectedFiles: affectedFiles(g, cycle),
		},
	}
	cd.Description = describeCycle(cd.Metadata.AffectedFiles)
	return cd
}

// classifySeverity applies the threshold table, first matching rule wins
func classifySeverity(length int, importance float64) graph.Severity {
	switch {
	case length >= 5 || importance > 0.8:
		return graph.SeverityCritical
	case length >= 3 || importance > 0.6:
		return graph.SeverityHigh
	case length >= 2 || importance > 0.4:
		return graph.SeverityMedium
	default:
		return graph.SeverityLow
	}
}

// scoreImpact computes the four impact axes, each clamped to [0,1].
// Maintainability carries the highest default weight.
func (c *Classifier) scoreImpact(length int, importance float64) graph.Impact {
	axis := func(weight float64) float64 {
		return math.Min(1, float64(length)*weight*importance)
	}
	return graph.Impact{
		BuildTime:       axis(c.cfg.BuildTimeWeight),
		Runtime:         axis(c.cfg.RuntimeWeight),
		Maintainability: axis(c.cfg.MaintainabilityWeight),
		Testability:     axis(c.cfg.TestabilityWeight),
	}
}

// averageImportance is the mean node importance across the cycle
func averageImportance(g *graph.DependencyGraph, cycle []string) float64 {
	if len(cycle) == 0 {
		return 0
	}
	sum := 0.0
	for _, id := range cycle {
		if node, ok := g.Node(id); ok {
			sum += node.Metadata.Importance
		}
	}
	return sum / float64(len(cycle))
}

// involvedTypes returns the distinct node types in the cycle, sorted
func involvedTypes(g *graph.DependencyGraph, cycle []string) []string {
	set := make(map[string]bool)
	for _, id := range cycle {
		if node, ok := g.Node(id); ok {
			set[string(node.Type)] = true
		}
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// affectedFiles returns the cycle's file paths in cycle order
func affectedFiles(g *graph.DependencyGraph, cycle []string) []string {
	files := make([]string, 0, len(cycle))
	for _, id := range cycle {
		if node, ok := g.Node(id); ok {
			files = append(files, node.Path)
		}
	}
	return files
}

// describeCycle renders the human-readable chain, closing the loop
func describeCycle(files []string) string {
	if len(files) == 0 {
		return "Circular dependency"
	}
	chain := strings.Join(files, " -> ")
	return fmt.Sprintf("Circular dependency involving %d files: %s -> %s",
		len(files), chain, files[0])
}
