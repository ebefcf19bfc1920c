package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"depscan/internal/config"
	"depscan/internal/discovery"
	"depscan/internal/errors"
	"depscan/internal/logging"
)

func writeFile(t *testing.T, root, rel, content string) discovery.File {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return discovery.File{AbsPath: path, RelPath: rel}
}

func newBuilder() *NodeBuilder {
	return NewNodeBuilder(config.DefaultConfig().Scan, logging.Nop())
}

func TestBuildNodesResolvesRelativeImports(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "a.ts", `import { b } from "./b";`),
		writeFile(t, root, "b.ts", `export const b = 1;`),
	}

	nodes, err := newBuilder().BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}
	if len(nodes[0].Dependencies) != 1 || nodes[0].Dependencies[0] != nodes[1].ID {
		t.Errorf("Expected a.ts to depend on b.ts, got %v", nodes[0].Dependencies)
	}
}

func TestBuildNodesDropsPackageImports(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "a.ts", `import React from "react";`),
	}

	nodes, err := newBuilder().BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	if len(nodes[0].Dependencies) != 0 {
		t.Errorf("Expected package import dropped, got %v", nodes[0].Dependencies)
	}
}

func TestBuildNodesDeduplicatesDependencies(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "a.ts", "import { x } from \"./b\";\nimport { y } from \"./b\";\n"),
		writeFile(t, root, "b.ts", `export const x = 1; export const y = 2;`),
	}

	nodes, err := newBuilder().BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	if len(nodes[0].Dependencies) != 1 {
		t.Errorf("Expected deduplicated dependency list, got %v", nodes[0].Dependencies)
	}
}

func TestBuildNodesDegradedOnUnreadableFile(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		{AbsPath: filepath.Join(root, "missing.ts"), RelPath: "missing.ts"},
	}

	var logBuf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.WarnLevel,
		Output: &logBuf,
	})
	nodes, err := NewNodeBuilder(config.DefaultConfig().Scan, logger).BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes must not fail on unreadable file: %v", err)
	}
	if !strings.Contains(logBuf.String(), string(errors.ParseDegraded)) {
		t.Errorf("Degraded path must log the stable error code, got: %s", logBuf.String())
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected exactly one degraded node, got %d", len(nodes))
	}
	node := nodes[0]
	if len(node.Dependencies) != 0 {
		t.Errorf("Degraded node must have empty dependencies, got %v", node.Dependencies)
	}
	if node.Metadata.Complexity != 1 || node.Metadata.Importance != 0.1 {
		t.Errorf("Degraded node must carry default metadata, got %+v", node.Metadata)
	}
	if node.ID == "" {
		t.Error("Degraded node still needs a stable id")
	}
}

func TestBuildNodesSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "big.ts", `import { b } from "./b"; export const x = 1;`),
		writeFile(t, root, "b.ts", `export const b = 1;`),
	}

	cfg := config.DefaultConfig().Scan
	cfg.MaxFileSizeBytes = 10
	nodes, err := NewNodeBuilder(cfg, logging.Nop()).BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	if len(nodes[0].Dependencies) != 0 {
		t.Errorf("Oversized file must degrade to no dependencies, got %v", nodes[0].Dependencies)
	}
}

func TestBuildNodesDeterministicAcrossRuns(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "a.ts", `import { b } from "./b";`),
		writeFile(t, root, "b.ts", `import { a } from "./a";`),
		writeFile(t, root, "c.ts", `import { a } from "./a";`),
	}

	first, err := newBuilder().BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	second, err := newBuilder().BuildNodes(context.Background(), files)
	if err != nil {
		t.Fatalf("BuildNodes failed: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Node ids differ between runs at %d", i)
		}
		if first[i].Path != second[i].Path {
			t.Errorf("Node order differs between runs at %d", i)
		}
	}
}

func TestBuildNodesHonorsContextCancellation(t *testing.T) {
	root := t.TempDir()
	files := []discovery.File{
		writeFile(t, root, "a.ts", ""),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newBuilder().BuildNodes(ctx, files); err == nil {
		t.Error("Expected context cancellation error")
	}
}
