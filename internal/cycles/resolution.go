package cycles

import (
	"fmt"

	"depscan/internal/graph"
)

// Strategy type names
const (
	StrategyExtractInterface    = "extract-interface"
	StrategyDependencyInjection = "dependency-injection"
	StrategyRestructure         = "restructure"
)

// Synthesizer selects and fills a remediation template per cycle. The
// templates are fixed; only file names are substituted into descriptions.
type Synthesizer struct{}

// NewSynthesizer creates a resolution strategy synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize picks one strategy for a cycle by ordered rules:
//  1. length 2: extract a shared interface both sides depend on
//  2. any interface/type node involved: generalized interface extraction
//  3. length > 3: restructure via facade or event bus
//  4. otherwise: invert one edge with dependency injection
func (s *Synthesizer) Synthesize(g *graph.DependencyGraph, cycle *graph.CircularDependency) *graph.ResolutionStrategy {
	files := cycle.Metadata.AffectedFiles

	if cycle.Length() == 2 {
		return &graph.ResolutionStrategy{
			Type: StrategyExtractInterface,
			Description: fmt.Sprintf(
				"Extract a shared interface so %s and %s depend on a common type module instead of each other",
				fileAt(files, 0), fileAt(files, 1)),
			Steps: []string{
				"Identify the types both files need from each other",
				"Move those types into a new shared module",
				"Point both files at the shared module",
				"Remove the direct imports between the two files",
			},
			Example: "// shared/types.ts\nexport interface Shared { ... }\n\n// a.ts and b.ts both:\nimport { Shared } from \"./shared/types\";",
			Effort:  "low",
			Risk:    "low",
		}
	}

	if hasInterfaceNode(g, cycle) {
		return &graph.ResolutionStrategy{
			Type: StrategyExtractInterface,
			Description: fmt.Sprintf(
				"Consolidate the type declarations involved in the %d-file cycle starting at %s into a dedicated types module",
				cycle.Length(), fileAt(files, 0)),
			Steps: []string{
				"Collect the interface/type declarations referenced around the cycle",
				"Move them into a leaf types module with no imports of its own",
				"Update every cycle member to import types from the new module",
				"Verify no implementation module imports another through the types module",
			},
			Example: "// types/index.ts\nexport interface Contract { ... }\nexport type Payload = { ... };",
			Effort:  "medium",
			Risk:    "medium",
		}
	}

	if cycle.Length() > 3 {
		return &graph.ResolutionStrategy{
			Type: StrategyRestructure,
			Description: fmt.Sprintf(
				"Restructure the %d-file dependency chain starting at %s behind a facade or event bus",
				cycle.Length(), fileAt(files, 0)),
			Steps: []string{
				"Map which members of the cycle actually need each other at runtime",
				"Introduce a facade module that owns the cross-calls",
				"Replace direct imports with calls through the facade, or publish events instead of calling back",
				"Delete the now-unused direct imports one edge at a time",
			},
			Example: "// facade.ts\nimport { a } from \"./a\";\nimport { b } from \"./b\";\nexport const orchestrate = () => { a(); b(); };",
			Effort:  "high",
			Risk:    "high",
		}
	}

	return &graph.ResolutionStrategy{
		Type: StrategyDependencyInjection,
		Description: fmt.Sprintf(
			"Invert one edge of the cycle at %s by injecting the dependency through a constructor or factory",
			fileAt(files, 0)),
		Steps: []string{
			"Pick the weakest edge in the cycle",
			"Define the callee's surface as a parameter type on the caller",
			"Pass the implementation in from composition root instead of importing it",
			"Remove the import that closed the cycle",
		},
		Example: "// before: import { svc } from \"./svc\";\n// after:\nexport function makeHandler(svc: Service) { ... }",
		Effort:  "medium",
		Risk:    "medium",
	}
}

// hasInterfaceNode reports whether any cycle member is a types-only node
func hasInterfaceNode(g *graph.DependencyGraph, cycle *graph.CircularDependency) bool {
	for _, id := range cycle.Nodes {
		if node, ok := g.Node(id); ok && node.Type == graph.NodeTypeInterface {
			return true
		}
	}
	return false
}

func fileAt(files []string, i int) string {
	if i < len(files) {
		return files[i]
	}
	return "unknown"
}
