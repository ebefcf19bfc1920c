// Package graph holds the dependency graph data model: nodes, edges,
// detected circular dependencies, and the per-run graph aggregate.
package graph

import "time"

// NodeType classifies what a dependency node represents
type NodeType string

const (
	// NodeTypeFile is a single source file
	NodeTypeFile NodeType = "file"
	// NodeTypeModule is a directory-level module (index re-export)
	NodeTypeModule NodeType = "module"
	// NodeTypeInterface is a file that only carries types/interfaces
	NodeTypeInterface NodeType = "interface"
)

// EdgeType classifies a dependency edge
type EdgeType string

// EdgeTypeImport is the only edge type produced by import scanning
const EdgeTypeImport EdgeType = "import"

// Severity is the qualitative remediation-urgency bucket for a cycle
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering priority for a severity.
// Lower numbers sort first (critical > high > medium > low).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// NodeMetadata carries heuristic metadata computed per file
type NodeMetadata struct {
	// Size is the file content size in bytes
	Size int `json:"size"`
	// Complexity is 1 + count of branching/looping/exception keywords.
	// A coarse proxy, not true cyclomatic complexity.
	Complexity int `json:"complexity"`
	// LastModified is the file mtime
	LastModified time.Time `json:"lastModified"`
	// Importance is a [0,1] centrality estimate from naming and exports
	Importance float64 `json:"importance"`
	// Stability is a [0,1] estimate from time since last modification
	Stability float64 `json:"stability"`
}

// DependencyNode represents one file in the dependency graph.
// Built once per file; immutable except Dependents, which accumulates
// during graph assembly.
type DependencyNode struct {
	ID   string   `json:"id"`
	Path string   `json:"path"`
	Name string   `json:"name"`
	Type NodeType `json:"type"`

	// Dependencies holds resolved dependency node ids (owned list)
	Dependencies []string `json:"dependencies"`
	// Dependents holds back-references (non-owning), filled by the assembler
	Dependents []string `json:"dependents"`

	Metadata NodeMetadata `json:"metadata"`
}

// DependencyEdge represents one resolved import relationship.
// Deduplicated by (source, target).
type DependencyEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

// Impact scores a cycle on four axes, each in [0,1]
type Impact struct {
	BuildTime       float64 `json:"buildTime"`
	Runtime         float64 `json:"runtime"`
	Maintainability float64 `json:"maintainability"`
	Testability     float64 `json:"testability"`
}

// CycleMetadata carries derived facts about a detected cycle
type CycleMetadata struct {
	CycleLength   int      `json:"cycleLength"`
	InvolvedTypes []string `json:"involvedTypes"`
	AffectedFiles []string `json:"affectedFiles"`
}

// ResolutionStrategy is a named remediation template for a cycle
type ResolutionStrategy struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Example     string   `json:"example,omitempty"`
	Effort      string   `json:"effort"`
	Risk        string   `json:"risk"`
}

// CircularDependency is one detected cycle with its classification
type CircularDependency struct {
	ID string `json:"id"`
	// Nodes is the ordered cyclic node-id sequence, length >= 2.
	// Consecutive pairs (including the wraparound) are all real edges.
	Nodes       []string            `json:"nodes"`
	Severity    Severity            `json:"severity"`
	Impact      Impact              `json:"impact"`
	Description string              `json:"description"`
	Resolution  *ResolutionStrategy `json:"resolution,omitempty"`
	DetectedAt  time.Time           `json:"detectedAt"`
	Metadata    CycleMetadata       `json:"metadata"`
}

// Length returns the number of nodes in the cycle
func (c *CircularDependency) Length() int {
	return len(c.Nodes)
}
