package scan

import (
	gopath "path"

	"depscan/internal/paths"
)

// probeSuffixes is the fixed ordered list of extension/index suffixes used
// to resolve a relative import target against the discovered file set.
// The first hit wins; ambiguity is resolved by this order, never reported.
var probeSuffixes = []string{
	"",
	".ts", ".tsx",
	".js", ".jsx",
	".mjs", ".cjs",
	"/index.ts", "/index.tsx",
	"/index.js",
}

// resolver resolves relative import targets to discovered file paths
type resolver struct {
	// known maps normalized root-relative paths to themselves; resolution
	// only ever targets files that discovery actually returned
	known map[string]bool
}

func newResolver(relPaths []string) *resolver {
	known := make(map[string]bool, len(relPaths))
	for _, p := range relPaths {
		known[p] = true
	}
	return &resolver{known: known}
}

// resolve maps an import target found in fromRel to a discovered file's
// normalized relative path. Non-relative (package) imports and targets
// escaping the root return "", cross-package cycles are out of scope.
func (r *resolver) resolve(fromRel string, target string) string {
	if !paths.IsRelativeImport(target) {
		return ""
	}

	base := gopath.Join(gopath.Dir(fromRel), target)
	if base == ".." || len(base) >= 3 && base[:3] == "../" {
		return ""
	}

	for _, suffix := range probeSuffixes {
		candidate := base + suffix
		if r.known[candidate] {
			return candidate
		}
	}

	return ""
}
