package cycles

import (
	"math"
	"testing"

	"depscan/internal/config"
	"depscan/internal/graph"
	"depscan/internal/logging"
)

func graphWithImportance(ids []string, importance float64) *graph.DependencyGraph {
	built := make([]*graph.DependencyNode, 0, len(ids))
	for i, id := range ids {
		deps := []string{ids[(i+1)%len(ids)]}
		built = append(built, &graph.DependencyNode{
			ID:           id,
			Path:         id + ".ts",
			Name:         id,
			Type:         graph.NodeTypeFile,
			Dependencies: deps,
			Metadata:     graph.NodeMetadata{Importance: importance},
		})
	}
	return graph.NewAssembler(logging.Nop()).Assemble(built)
}

func newClassifier() *Classifier {
	return NewClassifier(config.DefaultConfig().Classifier)
}

func TestSeverityLengthThresholds(t *testing.T) {
	tests := []struct {
		ids  []string
		want graph.Severity
	}{
		{[]string{"a", "b"}, graph.SeverityMedium},
		{[]string{"a", "b", "c"}, graph.SeverityHigh},
		{[]string{"a", "b", "c", "d", "e"}, graph.SeverityCritical},
	}
	for _, tt := range tests {
		g := graphWithImportance(tt.ids, 0.1)
		cd := newClassifier().Classify(g, tt.ids)
		if cd.Severity != tt.want {
			t.Errorf("Length %d: expected %s, got %s", len(tt.ids), tt.want, cd.Severity)
		}
	}
}

func TestFiveNodeCycleCriticalRegardlessOfImportance(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	g := graphWithImportance(ids, 0.0)
	cd := newClassifier().Classify(g, ids)
	if cd.Severity != graph.SeverityCritical {
		t.Errorf("Length threshold must dominate, got %s", cd.Severity)
	}
}

func TestSeverityImportanceThresholds(t *testing.T) {
	ids := []string{"a", "b"}
	tests := []struct {
		importance float64
		want       graph.Severity
	}{
		{0.9, graph.SeverityCritical},
		{0.7, graph.SeverityHigh},
	}
	for _, tt := range tests {
		g := graphWithImportance(ids, tt.importance)
		cd := newClassifier().Classify(g, ids)
		if cd.Severity != tt.want {
			t.Errorf("Importance %v: expected %s, got %s", tt.importance, tt.want, cd.Severity)
		}
	}
}

func TestImpactFormula(t *testing.T) {
	ids := []string{"a", "b"}
	g := graphWithImportance(ids, 0.5)
	cd := newClassifier().Classify(g, ids)

	// len=2, imp=0.5: buildTime = 2*0.20*0.5 = 0.2, etc.
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"buildTime", cd.Impact.BuildTime, 0.2},
		{"runtime", cd.Impact.Runtime, 0.15},
		{"maintainability", cd.Impact.Maintainability, 0.3},
		{"testability", cd.Impact.Testability, 0.25},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestImpactClamped(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	g := graphWithImportance(ids, 1.0)
	cd := newClassifier().Classify(g, ids)

	for name, v := range map[string]float64{
		"buildTime":       cd.Impact.BuildTime,
		"runtime":         cd.Impact.Runtime,
		"maintainability": cd.Impact.Maintainability,
		"testability":     cd.Impact.Testability,
	} {
		if v > 1 {
			t.Errorf("%s must be clamped to 1, got %v", name, v)
		}
	}
}

func TestClassifyMetadata(t *testing.T) {
	ids := []string{"a", "b"}
	g := graphWithImportance(ids, 0.5)
	cd := newClassifier().Classify(g, ids)

	if cd.Metadata.CycleLength != 2 {
		t.Errorf("Expected cycleLength 2, got %d", cd.Metadata.CycleLength)
	}
	if len(cd.Metadata.AffectedFiles) != 2 || cd.Metadata.AffectedFiles[0] != "a.ts" {
		t.Errorf("Expected affected files in cycle order, got %v", cd.Metadata.AffectedFiles)
	}
	if len(cd.Metadata.InvolvedTypes) != 1 || cd.Metadata.InvolvedTypes[0] != "file" {
		t.Errorf("Expected involved types [file], got %v", cd.Metadata.InvolvedTypes)
	}
	if cd.ID == "" || cd.Description == "" {
		t.Error("Expected id and description to be filled")
	}
	if cd.DetectedAt.IsZero() {
		t.Error("Expected detectedAt to be set")
	}
}

func TestConfigurableWeights(t *testing.T) {
	cfg := config.DefaultConfig().Classifier
	cfg.BuildTimeWeight = 0.5
	ids := []string{"a", "b"}
	g := graphWithImportance(ids, 0.5)

	cd := NewClassifier(cfg).Classify(g, ids)
	if math.Abs(cd.Impact.BuildTime-0.5) > 1e-9 {
		t.Errorf("Expected configured weight applied, got %v", cd.Impact.BuildTime)
	}
}
