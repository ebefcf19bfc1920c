package main

import (
	"fmt"
	"strings"

	"depscan/internal/analyzer"
	"depscan/internal/graph"
	"depscan/internal/output"
)

// renderHumanReport formats an analysis result for terminal reading.
// JSON output is the machine surface; this is the quick-glance view.
func renderHumanReport(res *analyzer.Result) string {
	var sb strings.Builder
	rep := res.Report

	sb.WriteString("Dependency Health Report\n")
	sb.WriteString("========================\n\n")
	fmt.Fprintf(&sb, "Overall health:  %.0f/100\n", rep.OverallHealth)
	fmt.Fprintf(&sb, "Files analyzed:  %d\n", res.Files)
	fmt.Fprintf(&sb, "Graph:           %d nodes, %d edges (density %s)\n",
		rep.GraphStats.TotalNodes, rep.GraphStats.TotalEdges, output.FormatFloat(rep.GraphStats.Density))
	fmt.Fprintf(&sb, "Cycles:          %d total", rep.TotalCycles)
	if rep.TotalCycles > 0 {
		fmt.Fprintf(&sb, " (critical: %d, high: %d, medium: %d, low: %d)",
			rep.CyclesBySeverity[string(graph.SeverityCritical)],
			rep.CyclesBySeverity[string(graph.SeverityHigh)],
			rep.CyclesBySeverity[string(graph.SeverityMedium)],
			rep.CyclesBySeverity[string(graph.SeverityLow)])
	}
	sb.WriteString("\n")

	if len(rep.TopCycles) > 0 {
		sb.WriteString("\nTop cycles\n----------\n")
		for i, c := range rep.TopCycles {
			fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, c.Severity, c.Description)
			if c.Resolution != nil {
				fmt.Fprintf(&sb, "   fix: %s (%s effort, %s risk)\n",
					c.Resolution.Type, c.Resolution.Effort, c.Resolution.Risk)
			}
		}
	}

	writePhase := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
		for _, line := range lines {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}
	writePhase("Immediate", rep.Recommendations.Immediate)
	writePhase("Short term", rep.Recommendations.ShortTerm)
	writePhase("Long term", rep.Recommendations.LongTerm)

	if len(rep.GraphStats.MostImported) > 0 {
		sb.WriteString("\nMost imported files\n-------------------\n")
		for _, e := range rep.GraphStats.MostImported {
			fmt.Fprintf(&sb, "%4d  %s\n", e.Count, e.Path)
		}
	}

	return sb.String()
}
