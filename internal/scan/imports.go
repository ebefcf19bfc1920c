package scan

import (
	"bufio"
	"regexp"
	"strings"
)

// Import extraction is line-oriented pattern matching, deliberately not an
// AST parse. Three forms from the analyzed ecosystem plus re-exports:
// static `import ... from "x"`, dynamic `import("x")`, `require("x")`,
// and `export ... from "x"`.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

// exportPattern counts exported symbols for the importance heuristic
var exportPattern = regexp.MustCompile(`(?m)^\s*export\s`)

// extractImports returns the raw import targets found in file content, in
// order of appearance. Duplicate targets are kept; resolution dedupes.
func extractImports(content []byte) []string {
	var targets []string
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		for _, re := range importPatterns {
			for _, match := range re.FindAllStringSubmatch(line, -1) {
				if len(match) > 1 {
					target := strings.TrimSpace(match[1])
					if target != "" {
						targets = append(targets, target)
					}
				}
			}
		}
	}

	return targets
}

// countExports counts exported symbols in file content
func countExports(content []byte) int {
	return len(exportPattern.FindAll(content, -1))
}
