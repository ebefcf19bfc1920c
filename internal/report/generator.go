package report

import (
	"fmt"
	"math"
	"sort"

	"depscan/internal/graph"
	"depscan/internal/logging"
)

// severityPenalty is subtracted from 100 per cycle; the health score
// floors at 0 and never exceeds 100
var severityPenalty = map[graph.Severity]float64{
	graph.SeverityCritical: 25,
	graph.SeverityHigh:     15,
	graph.SeverityMedium:   8,
	graph.SeverityLow:      3,
}

// topCycleLimit bounds the headline cycle list
const topCycleLimit = 10

// Generator aggregates classified cycles into the health report
type Generator struct {
	logger *logging.Logger
}

// NewGenerator creates a report generator
func NewGenerator(logger *logging.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate builds the report. Cycles arrive in discovery order and that
// order is preserved within every severity tie.
func (g *Generator) Generate(dg *graph.DependencyGraph, cycles []*graph.CircularDependency) *Report {
	r := &Report{
		OverallHealth:    healthScore(cycles),
		TotalCycles:      len(cycles),
		CyclesBySeverity: severityCounts(cycles),
		TopCycles:        topCycles(cycles),
		ResolutionPlan:   buildPlan(cycles),
		Metrics:          aggregateMetrics(cycles),
		GraphStats:       graphStats(dg),
		byID:             make(map[string]*graph.CircularDependency, len(cycles)),
	}
	r.CriticalCycles = r.CyclesBySeverity[string(graph.SeverityCritical)]
	r.Recommendations = buildRecommendations(r.CyclesBySeverity)

	for _, c := range cycles {
		r.byID[c.ID] = c
	}

	g.logger.Info("Report generated", logging.Fields{
		"health": r.OverallHealth,
		"cycles": r.TotalCycles,
	})

	return r
}

// healthScore is 100 minus per-cycle severity penalties, floored at 0
func healthScore(cycles []*graph.CircularDependency) float64 {
	health := 100.0
	for _, c := range cycles {
		health -= severityPenalty[c.Severity]
	}
	return math.Max(0, health)
}

func severityCounts(cycles []*graph.CircularDependency) map[string]int {
	counts := map[string]int{
		string(graph.SeverityCritical): 0,
		string(graph.SeverityHigh):     0,
		string(graph.SeverityMedium):   0,
		string(graph.SeverityLow):      0,
	}
	for _, c := range cycles {
		counts[string(c.Severity)]++
	}
	return counts
}

// topCycles selects up to 10 cycles by severity rank; ties keep
// discovery order
func topCycles(cycles []*graph.CircularDependency) []*graph.CircularDependency {
	sorted := append([]*graph.CircularDependency{}, cycles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
	})
	if len(sorted) > topCycleLimit {
		sorted = sorted[:topCycleLimit]
	}
	return sorted
}

// buildPlan phases cycles: immediate=critical, shortTerm=high,
// longTerm=medium and low
func buildPlan(cycles []*graph.CircularDependency) Plan {
	plan := Plan{
		Immediate: []*graph.CircularDependency{},
		ShortTerm: []*graph.CircularDependency{},
		LongTerm:  []*graph.CircularDependency{},
	}
	for _, c := range cycles {
		switch c.Severity {
		case graph.SeverityCritical:
			plan.Immediate = append(plan.Immediate, c)
		case graph.SeverityHigh:
			plan.ShortTerm = append(plan.ShortTerm, c)
		default:
			plan.LongTerm = append(plan.LongTerm, c)
		}
	}
	return plan
}

// buildRecommendations emits fixed text keyed off bucket counts
func buildRecommendations(counts map[string]int) Recommendations {
	rec := Recommendations{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
	}

	critical := counts[string(graph.SeverityCritical)]
	high := counts[string(graph.SeverityHigh)]
	lower := counts[string(graph.SeverityMedium)] + counts[string(graph.SeverityLow)]

	if critical > 0 {
		rec.Immediate = append(rec.Immediate,
			fmt.Sprintf("Address %d critical circular dependencies immediately; they block safe refactoring", critical))
	}
	if high > 0 {
		rec.ShortTerm = append(rec.ShortTerm,
			fmt.Sprintf("Schedule remediation for %d high-severity cycles in the next development iteration", high))
	}
	if lower > 0 {
		rec.LongTerm = append(rec.LongTerm,
			fmt.Sprintf("Track %d lower-severity cycles and break them during routine maintenance", lower))
	}
	if critical+high+lower == 0 {
		rec.LongTerm = append(rec.LongTerm,
			"No circular dependencies detected; keep import boundaries clean as the tree grows")
	}

	return rec
}

// aggregateMetrics averages per-axis cycle impact and scales to 0-100
func aggregateMetrics(cycles []*graph.CircularDependency) Metrics {
	if len(cycles) == 0 {
		return Metrics{}
	}

	var m Metrics
	for _, c := range cycles {
		m.BuildTimeImpact += c.Impact.BuildTime
		m.RuntimeImpact += c.Impact.Runtime
		m.MaintainabilityImpact += c.Impact.Maintainability
		m.TestabilityImpact += c.Impact.Testability
	}
	n := float64(len(cycles))
	m.BuildTimeImpact = m.BuildTimeImpact / n * 100
	m.RuntimeImpact = m.RuntimeImpact / n * 100
	m.MaintainabilityImpact = m.MaintainabilityImpact / n * 100
	m.TestabilityImpact = m.TestabilityImpact / n * 100
	return m
}

// graphStats computes shape statistics: counts, density, and the ten
// most-imported and most-importing files by degree
func graphStats(dg *graph.DependencyGraph) GraphStats {
	stats := GraphStats{
		TotalNodes:    dg.NodeCount(),
		TotalEdges:    dg.EdgeCount(),
		Density:       dg.Density(),
		MostImported:  []DegreeEntry{},
		MostImporting: []DegreeEntry{},
	}

	for _, node := range dg.NodesInOrder() {
		if in := len(node.Dependents); in > 0 {
			stats.MostImported = append(stats.MostImported, DegreeEntry{Path: node.Path, Count: in})
		}
		out := len(dg.Successors(node.ID))
		if out > 0 {
			stats.MostImporting = append(stats.MostImporting, DegreeEntry{Path: node.Path, Count: out})
		}
	}

	sortDegree := func(entries []DegreeEntry) []DegreeEntry {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Count != entries[j].Count {
				return entries[i].Count > entries[j].Count
			}
			return entries[i].Path < entries[j].Path
		})
		if len(entries) > topCycleLimit {
			entries = entries[:topCycleLimit]
		}
		return entries
	}
	stats.MostImported = sortDegree(stats.MostImported)
	stats.MostImporting = sortDegree(stats.MostImporting)

	return stats
}
