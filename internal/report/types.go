// Package report aggregates detection and classification results into a
// single JSON-serializable health report. This package owns no output
// surface; a caller renders or persists the report.
package report

import "depscan/internal/graph"

// Report is the complete dependency health report for one analysis run
type Report struct {
	OverallHealth    float64                     `json:"overallHealth"`
	TotalCycles      int                         `json:"totalCycles"`
	CriticalCycles   int                         `json:"criticalCycles"`
	CyclesBySeverity map[string]int              `json:"cyclesBySeverity"`
	TopCycles        []*graph.CircularDependency `json:"topCycles"`
	ResolutionPlan   Plan                        `json:"resolutionPlan"`
	Recommendations  Recommendations             `json:"recommendations"`
	Metrics          Metrics                     `json:"metrics"`
	GraphStats       GraphStats                  `json:"graphStats"`

	// byID caches cycles for lookup, rebuilt per run
	byID map[string]*graph.CircularDependency
}

// Plan splits cycles into remediation phases by severity
type Plan struct {
	Immediate []*graph.CircularDependency `json:"immediate"`
	ShortTerm []*graph.CircularDependency `json:"shortTerm"`
	LongTerm  []*graph.CircularDependency `json:"longTerm"`
}

// Recommendations carries deterministic rule-based guidance per phase
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// Metrics aggregates per-axis cycle impact across the whole graph,
// each scaled to 0-100
type Metrics struct {
	BuildTimeImpact       float64 `json:"buildTimeImpact"`
	RuntimeImpact         float64 `json:"runtimeImpact"`
	MaintainabilityImpact float64 `json:"maintainabilityImpact"`
	TestabilityImpact     float64 `json:"testabilityImpact"`
}

// GraphStats summarizes graph shape independent of cycles
type GraphStats struct {
	TotalNodes    int           `json:"totalNodes"`
	TotalEdges    int           `json:"totalEdges"`
	Density       float64       `json:"density"`
	MostImported  []DegreeEntry `json:"mostImported"`
	MostImporting []DegreeEntry `json:"mostImporting"`
}

// DegreeEntry is one file with its in- or out-degree
type DegreeEntry struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// CycleByID returns a detected cycle by its id
func (r *Report) CycleByID(id string) (*graph.CircularDependency, bool) {
	c, ok := r.byID[id]
	return c, ok
}
