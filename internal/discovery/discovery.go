// Package discovery lists source files for analysis. It walks the tree
// under a root, skipping configured ignore-directories and anything the
// root .gitignore excludes, and keeps only configured source extensions.
// An unreadable subdirectory is logged and skipped; discovery never aborts
// for one bad directory.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"depscan/internal/config"
	"depscan/internal/errors"
	"depscan/internal/logging"
	"depscan/internal/paths"
)

// File is one discovered source file
type File struct {
	// AbsPath is the absolute filesystem path
	AbsPath string
	// RelPath is the normalized root-relative path (forward slashes)
	RelPath string
}

// Discoverer recursively lists regular source files under a root
type Discoverer struct {
	cfg     config.DiscoveryConfig
	logger  *logging.Logger
	ignored map[string]bool
	exts    map[string]bool
}

// NewDiscoverer creates a discoverer from configuration
func NewDiscoverer(cfg config.DiscoveryConfig, logger *logging.Logger) *Discoverer {
	ignored := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, dir := range cfg.IgnoreDirs {
		ignored[dir] = true
	}
	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Discoverer{
		cfg:     cfg,
		logger:  logger,
		ignored: ignored,
		exts:    exts,
	}
}

// Discover walks the tree under root and returns matching files sorted by
// relative path. An invalid root is the only fatal condition.
func (d *Discoverer) Discover(root string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.New(errors.InvalidRoot, "root path does not exist", err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.InvalidRoot, "root path is not a directory", nil)
	}
	// Walk from an absolute root so AbsPath holds even when the caller
	// passes "." or another relative path.
	if abs, absErr := filepath.Abs(root); absErr == nil {
		root = abs
	}

	var gi *ignore.GitIgnore
	if d.cfg.UseGitignore {
		if compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			gi = compiled
		}
	}

	var files []File
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: log and keep going
			d.logger.Warn("Skipping unreadable path", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if rel == "." {
				return nil
			}
			if d.ignored[entry.Name()] {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			// Follow file symlinks, but never outside the analysis root
			if !paths.IsWithinRoot(path, root) {
				d.logger.Warn("Skipping symlink escaping the analysis root", logging.Fields{
					"path": rel,
				})
				return nil
			}
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}
		if !d.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if d.cfg.MaxFiles > 0 && len(files) >= d.cfg.MaxFiles {
			d.logger.Warn("Reached max files limit during discovery", logging.Fields{
				"maxFiles": d.cfg.MaxFiles,
			})
			return filepath.SkipAll
		}

		files = append(files, File{
			AbsPath: path,
			RelPath: paths.NormalizePath(rel),
		})
		return nil
	})
	if walkErr != nil {
		return nil, errors.New(errors.DiscoveryFailed, "tree walk failed", walkErr)
	}

	// WalkDir is already lexical, but sort explicitly so discovery order is
	// a documented guarantee rather than an accident.
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	d.logger.Info("Discovery completed", logging.Fields{
		"root":  root,
		"files": len(files),
	})

	return files, nil
}
