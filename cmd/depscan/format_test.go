package main

import (
	"strings"
	"testing"

	"depscan/internal/analyzer"
	"depscan/internal/graph"
	"depscan/internal/report"
)

func sampleResult() *analyzer.Result {
	cycle := &graph.CircularDependency{
		ID:          "cycle-1",
		Nodes:       []string{"n1", "n2"},
		Severity:    graph.SeverityMedium,
		Description: "Circular dependency involving 2 files: a.ts -> b.ts -> a.ts",
		Resolution: &graph.ResolutionStrategy{
			Type:   "extract-interface",
			Effort: "low",
			Risk:   "low",
		},
	}

	return &analyzer.Result{
		Files: 2,
		Report: &report.Report{
			OverallHealth:  92,
			TotalCycles:    1,
			CriticalCycles: 0,
			CyclesBySeverity: map[string]int{
				"critical": 0, "high": 0, "medium": 1, "low": 0,
			},
			TopCycles: []*graph.CircularDependency{cycle},
			Recommendations: report.Recommendations{
				LongTerm: []string{"Add a dependency check to CI to catch new cycles early"},
			},
			GraphStats: report.GraphStats{
				TotalNodes: 2,
				TotalEdges: 2,
				Density:    1,
				MostImported: []report.DegreeEntry{
					{Path: "a.ts", Count: 1},
				},
			},
		},
	}
}

func TestRenderHumanReport(t *testing.T) {
	out := renderHumanReport(sampleResult())

	for _, want := range []string{
		"Overall health:  92/100",
		"Files analyzed:  2",
		"2 nodes, 2 edges (density 1)",
		"medium: 1",
		"a.ts -> b.ts -> a.ts",
		"extract-interface (low effort, low risk)",
		"Add a dependency check to CI",
		"Most imported files",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("human report missing %q\n---\n%s", want, out)
		}
	}
}

func TestRenderHumanReportNoCycles(t *testing.T) {
	res := sampleResult()
	res.Report.TotalCycles = 0
	res.Report.TopCycles = nil
	res.Report.OverallHealth = 100

	out := renderHumanReport(res)
	if !strings.Contains(out, "Overall health:  100/100") {
		t.Errorf("expected full health line, got:\n%s", out)
	}
	if strings.Contains(out, "Top cycles") {
		t.Errorf("expected no top cycles section, got:\n%s", out)
	}
}
