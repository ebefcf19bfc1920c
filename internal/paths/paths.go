// Package paths handles path normalization and node identity.
// Node ids are a deterministic, run-stable function of the normalized
// repo-relative path, so re-running analysis on an unchanged tree yields
// identical ids.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// nodeNamespace is the fixed UUID namespace for node identity.
// Derived once from a stable name so ids never vary between runs or hosts.
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("depscan/node"))

// NormalizePath normalizes a path by cleaning it and converting
// backslashes to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// CanonicalizePath converts an absolute path to a root-relative canonical path
// - Resolves symlinks to real paths
// - Makes the path relative to the analysis root
// - Converts backslashes to forward slashes
func CanonicalizePath(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// NodeID derives the deterministic node identifier for a normalized path.
// A version-5 UUID over the path avoids the lossy character-substitution
// scheme that could silently merge two distinct paths onto one id.
func NodeID(normalizedPath string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(normalizedPath)).String()
}

// IsWithinRoot checks if a path is within the analysis root
func IsWithinRoot(path string, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// IsRelativeImport reports whether an import target is a relative path
// (./foo or ../bar). Anything else is a package import and out of scope.
func IsRelativeImport(target string) bool {
	return strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || target == "." || target == ".."
}

// BaseName returns the final path element without its extension
func BaseName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
