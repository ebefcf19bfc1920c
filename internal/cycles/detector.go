// Package cycles detects circular import chains in a dependency graph,
// classifies their severity and impact, and attaches remediation
// strategies.
package cycles

import (
	"strings"

	"github.com/google/uuid"

	"depscan/internal/config"
	"depscan/internal/graph"
	"depscan/internal/logging"
)

// cycleNamespace is the fixed UUID namespace for cycle identity
var cycleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("depscan/cycle"))

// Detector finds circular paths via depth-first traversal with an explicit
// recursion-stack set. Detection is inherently sequential; the recursion
// stack is shared state.
type Detector struct {
	cfg    config.DetectorConfig
	logger *logging.Logger
}

// NewDetector creates a detector from configuration
func NewDetector(cfg config.DetectorConfig, logger *logging.Logger) *Detector {
	return &Detector{cfg: cfg, logger: logger}
}

// Detect returns the cyclic node-id sequences found in the graph.
// Nodes are visited in insertion order, so results are deterministic for a
// fixed tree. By default the same underlying cycle reached from different
// entry points is canonicalized by rotation and reported once.
func (d *Detector) Detect(g *graph.DependencyGraph) [][]string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	seen := make(map[string]bool)
	var cycles [][]string
	truncated := false

	var dfs func(id string, path []string)
	dfs = func(id string, path []string) {
		// The current path is copied on each call, so pathological graphs
		// can blow up copy cost without the depth guard.
		if len(path) >= d.cfg.MaxDepth {
			truncated = true
			return
		}

		visited[id] = true
		onStack[id] = true
		path = append(append([]string{}, path...), id)

		for _, next := range g.Successors(id) {
			if onStack[next] {
				// Cycle: the suffix of the current path from next onward
				start := 0
				for i, p := range path {
					if p == next {
						start = i
						break
					}
				}
				cycle := append([]string{}, path[start:]...)
				if len(cycle) < 2 {
					continue
				}
				if d.cfg.DedupeCycles {
					key := canonicalKey(cycle)
					if seen[key] {
						continue
					}
					seen[key] = true
					cycle = canonicalize(cycle)
				}
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[next] {
				dfs(next, path)
			}
		}

		onStack[id] = false
	}

	for _, id := range g.NodeIDs() {
		if !visited[id] {
			dfs(id, nil)
		}
	}

	if truncated {
		d.logger.Warn("Cycle detection hit max depth, results may be partial", logging.Fields{
			"maxDepth": d.cfg.MaxDepth,
		})
	}
	d.logger.Debug("Cycle detection completed", logging.Fields{
		"cycles": len(cycles),
	})

	return cycles
}

// canonicalize rotates a cycle so it starts at its lexicographically
// smallest node id. The sequence stays a valid edge walk; rotation only
// changes the entry point.
func canonicalize(cycle []string) []string {
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}

// canonicalKey is the rotation-invariant dedup key for a cycle
func canonicalKey(cycle []string) string {
	return strings.Join(canonicalize(cycle), "->")
}

// CycleID derives the deterministic identifier for a cycle sequence
func CycleID(cycle []string) string {
	return uuid.NewSHA1(cycleNamespace, []byte(strings.Join(cycle, "->"))).String()
}
