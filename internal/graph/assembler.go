package graph

import (
	"depscan/internal/logging"
)

// Assembler turns per-node resolved dependency lists into a bidirectional
// graph. Unresolved targets (external packages, dropped imports) are
// silently skipped.
type Assembler struct {
	logger *logging.Logger
}

// NewAssembler creates a new graph assembler
func NewAssembler(logger *logging.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble builds a DependencyGraph from built nodes. Node iteration order
// follows the input slice, which the node builder keeps in discovery order.
func (a *Assembler) Assemble(nodes []*DependencyNode) *DependencyGraph {
	g := NewDependencyGraph()

	for _, node := range nodes {
		g.AddNode(node)
	}

	edges := 0
	dropped := 0
	for _, node := range nodes {
		for _, depID := range node.Dependencies {
			if !g.HasNode(depID) {
				dropped++
				continue
			}
			if err := g.AddEdge(node.ID, depID, EdgeTypeImport, 1.0); err != nil {
				// Both endpoints were just added, so this cannot happen;
				// log rather than abort if it somehow does.
				a.logger.Warn("Failed to add edge", logging.Fields{
					"source": node.Path,
					"error":  err.Error(),
				})
				continue
			}
			edges++
		}
	}

	a.logger.Debug("Graph assembled", logging.Fields{
		"nodes":          g.NodeCount(),
		"edges":          g.EdgeCount(),
		"droppedTargets": dropped,
	})

	return g
}
