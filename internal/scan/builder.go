// Package scan builds dependency nodes from discovered source files.
// Each node carries resolved dependency ids and heuristic metadata
// (complexity, importance, stability). A file that cannot be read degrades
// to an empty-dependency node with default metadata; the run never aborts
// for one bad file.
package scan

import (
	"context"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"depscan/internal/config"
	"depscan/internal/discovery"
	"depscan/internal/errors"
	"depscan/internal/graph"
	"depscan/internal/logging"
	"depscan/internal/paths"
)

// NodeBuilder reads file contents and produces dependency nodes
type NodeBuilder struct {
	cfg    config.ScanConfig
	logger *logging.Logger
	// now is injectable so stability buckets are testable
	now func() time.Time
}

// NewNodeBuilder creates a node builder from configuration
func NewNodeBuilder(cfg config.ScanConfig, logger *logging.Logger) *NodeBuilder {
	return &NodeBuilder{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// BuildNodes produces one node per discovered file, in discovery order.
// File content reads fan out across a bounded worker group; assembly of
// the result preserves input order so the graph stays deterministic.
func (b *NodeBuilder) BuildNodes(ctx context.Context, files []discovery.File) ([]*graph.DependencyNode, error) {
	relPaths := make([]string, len(files))
	for i, f := range files {
		relPaths[i] = f.RelPath
	}
	res := newResolver(relPaths)

	parallelism := b.cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	nodes := make([]*graph.DependencyNode, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			nodes[i] = b.buildNode(file, res)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Info("Node build completed", logging.Fields{
		"nodes": len(nodes),
	})

	return nodes, nil
}

// buildNode constructs a single node. Read failures degrade rather than fail.
func (b *NodeBuilder) buildNode(file discovery.File, res *resolver) *graph.DependencyNode {
	node := &graph.DependencyNode{
		ID:           paths.NodeID(file.RelPath),
		Path:         file.RelPath,
		Name:         paths.BaseName(file.RelPath),
		Type:         classifyNodeType(file.RelPath),
		Dependencies: []string{},
		Dependents:   []string{},
	}

	info, statErr := os.Stat(file.AbsPath)
	if statErr == nil {
		node.Metadata.Size = int(info.Size())
		node.Metadata.LastModified = info.ModTime()
		node.Metadata.Stability = computeStability(info.ModTime(), b.now())
	} else {
		node.Metadata.Stability = 1.0
	}

	if statErr == nil && b.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(b.cfg.MaxFileSizeBytes) {
		b.logger.Debug("Skipping file content: too large", logging.Fields{
			"file": file.RelPath,
			"size": info.Size(),
		})
		return b.degrade(node)
	}

	content, readErr := os.ReadFile(file.AbsPath)
	if readErr != nil {
		degraded := errors.New(errors.ParseDegraded, "failed to read file content", readErr).
			WithDetails(map[string]string{"file": file.RelPath})
		b.logger.Warn("Degrading node", logging.Fields{
			"file":  file.RelPath,
			"error": degraded.Error(),
		})
		return b.degrade(node)
	}

	exportCount := countExports(content)
	node.Metadata.Complexity = computeComplexity(content)
	node.Metadata.Importance = computeImportance(file.RelPath, exportCount)

	seen := make(map[string]bool)
	for _, target := range extractImports(content) {
		resolved := res.resolve(file.RelPath, target)
		if resolved == "" || resolved == file.RelPath {
			// Package import or unresolvable target: best-effort drop
			continue
		}
		depID := paths.NodeID(resolved)
		if seen[depID] {
			continue
		}
		seen[depID] = true
		node.Dependencies = append(node.Dependencies, depID)
	}

	return node
}

// degrade returns the node with empty dependencies and default metadata
func (b *NodeBuilder) degrade(node *graph.DependencyNode) *graph.DependencyNode {
	node.Dependencies = []string{}
	node.Metadata.Complexity = 1
	node.Metadata.Importance = 0.1
	return node
}
