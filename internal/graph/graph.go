package graph

import "fmt"

// DependencyGraph is the root aggregate owning the node map, edge map, and
// detected cycles for a single analysis run. It is rebuilt fully each run;
// no state carries between runs.
type DependencyGraph struct {
	nodes map[string]*DependencyNode
	edges map[string]*DependencyEdge
	// order preserves node insertion order so traversal is deterministic
	// for a fixed tree
	order []string

	Cycles []*CircularDependency
}

// NewDependencyGraph creates an empty graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*DependencyNode),
		edges: make(map[string]*DependencyEdge),
	}
}

// AddNode adds a node to the graph. Adding an existing id is a no-op.
func (g *DependencyGraph) AddNode(node *DependencyNode) {
	if _, exists := g.nodes[node.ID]; exists {
		return
	}
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
}

// Node returns a node by id
func (g *DependencyGraph) Node(id string) (*DependencyNode, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// HasNode reports whether an id is present
func (g *DependencyGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns node ids in insertion order
func (g *DependencyGraph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// NodesInOrder returns nodes in insertion order
func (g *DependencyGraph) NodesInOrder() []*DependencyNode {
	nodes := make([]*DependencyNode, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// edgeKey builds the dedup key for an edge
func edgeKey(source, target string) string {
	return source + ":" + target
}

// AddEdge records a directed edge between two existing nodes and appends
// the source to the target's dependents list. Duplicate (source, target)
// pairs are dropped. Both endpoints must already be in the graph.
func (g *DependencyGraph) AddEdge(source, target string, edgeType EdgeType, weight float64) error {
	if _, ok := g.nodes[source]; !ok {
		return fmt.Errorf("edge source %q not in graph", source)
	}
	if _, ok := g.nodes[target]; !ok {
		return fmt.Errorf("edge target %q not in graph", target)
	}

	key := edgeKey(source, target)
	if _, exists := g.edges[key]; exists {
		return nil
	}

	g.edges[key] = &DependencyEdge{
		Source: source,
		Target: target,
		Type:   edgeType,
		Weight: weight,
	}
	g.nodes[target].Dependents = append(g.nodes[target].Dependents, source)
	return nil
}

// HasEdge reports whether a (source, target) edge exists
func (g *DependencyGraph) HasEdge(source, target string) bool {
	_, ok := g.edges[edgeKey(source, target)]
	return ok
}

// Edge returns the edge for (source, target) if present
func (g *DependencyGraph) Edge(source, target string) (*DependencyEdge, bool) {
	e, ok := g.edges[edgeKey(source, target)]
	return e, ok
}

// NodeCount returns the number of nodes
func (g *DependencyGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *DependencyGraph) EdgeCount() int {
	return len(g.edges)
}

// Successors returns the resolved dependency ids of a node that exist in
// the graph, in the node's dependency order
func (g *DependencyGraph) Successors(id string) []string {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(node.Dependencies))
	for _, dep := range node.Dependencies {
		if g.HasEdge(id, dep) {
			out = append(out, dep)
		}
	}
	return out
}

// Density returns edge density: edges / (nodes * (nodes-1))
func (g *DependencyGraph) Density() float64 {
	n := len(g.nodes)
	if n <= 1 {
		return 0
	}
	return float64(len(g.edges)) / float64(n*(n-1))
}
