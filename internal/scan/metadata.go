package scan

import (
	"math"
	gopath "path"
	"regexp"
	"strings"
	"time"

	"depscan/internal/graph"
)

// complexityKeywords counts branching/looping/exception-handling keywords.
// A coarse proxy for cyclomatic complexity, good enough to weight nodes.
var complexityKeywords = regexp.MustCompile(
	`\b(if|else|for|while|do|switch|case|catch|try|throw|finally)\b`)

// computeComplexity is 1 + keyword occurrences across all lines
func computeComplexity(content []byte) int {
	return 1 + len(complexityKeywords.FindAll(content, -1))
}

// computeImportance derives a [0,1] centrality estimate from naming
// conventions and exported-symbol count
func computeImportance(relPath string, exportCount int) float64 {
	importance := 0.1

	lower := strings.ToLower(relPath)
	if strings.Contains(lower, "index") || strings.Contains(lower, "main") {
		importance += 0.3
	}
	if strings.Contains(lower, "service") || strings.Contains(lower, "api") {
		importance += 0.2
	}
	if strings.Contains(lower, "component") || strings.Contains(lower, "ui") {
		importance += 0.1
	}

	// Up to 0.3 proportional to export count, saturating at 10 exports
	importance += math.Min(0.3, float64(exportCount)*0.03)

	return clamp01(importance)
}

// computeStability buckets time since last modification: recently touched
// files are considered unsettled
func computeStability(lastModified time.Time, now time.Time) float64 {
	days := now.Sub(lastModified).Hours() / 24
	switch {
	case days < 7:
		return 0.2
	case days < 30:
		return 0.5
	case days < 90:
		return 0.8
	default:
		return 1.0
	}
}

// classifyNodeType infers what a file represents from its path. Files that
// only carry type declarations matter to resolution strategy selection.
func classifyNodeType(relPath string) graph.NodeType {
	lower := strings.ToLower(relPath)

	if strings.HasSuffix(lower, ".d.ts") {
		return graph.NodeTypeInterface
	}
	for _, segment := range strings.Split(lower, "/") {
		name := strings.TrimSuffix(segment, gopath.Ext(segment))
		if name == "types" || name == "interfaces" {
			return graph.NodeTypeInterface
		}
	}
	if strings.HasPrefix(gopath.Base(lower), "index.") {
		return graph.NodeTypeModule
	}

	return graph.NodeTypeFile
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
