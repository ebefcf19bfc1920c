package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type sample struct {
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Tags    []string `json:"tags"`
	Skipped string   `json:"skipped,omitempty"`
	Hidden  string   `json:"-"`
}

func TestDeterministicEncodeStable(t *testing.T) {
	v := map[string]interface{}{
		"b": 2,
		"a": 1,
		"c": map[string]float64{"y": 0.1, "x": 0.2},
	}

	first, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := DeterministicEncode(v)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("Encoding not deterministic:\n%s\n%s", first, again)
		}
	}
}

func TestEncodeRoundsFloats(t *testing.T) {
	v := sample{Name: "a", Score: 0.123456789, Tags: []string{}}
	data, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), "0.123457") {
		t.Errorf("Expected rounded float in %s", data)
	}
}

func TestEncodeStructTags(t *testing.T) {
	v := sample{Name: "a", Hidden: "secret"}
	data, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "secret") {
		t.Errorf("json:\"-\" field leaked: %s", s)
	}
	if strings.Contains(s, "skipped") {
		t.Errorf("omitempty field should be dropped when empty: %s", s)
	}
}

func TestEncodeKeepsEmptySlices(t *testing.T) {
	v := sample{Name: "a", Tags: []string{}}
	data, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), `"tags":[]`) {
		t.Errorf("Expected empty array preserved: %s", data)
	}
}

func TestEncodeIndented(t *testing.T) {
	v := sample{Name: "a"}
	data, err := DeterministicEncodeIndented(v, "  ")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("Expected indented output: %s", data)
	}
}

func TestEncodeNoHTMLEscaping(t *testing.T) {
	v := map[string]string{"path": "src/a&b.ts"}
	data, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if strings.Contains(string(data), "\\u0026") {
		t.Errorf("HTML escaping should be disabled: %s", data)
	}
}

func TestEncodeTimeValues(t *testing.T) {
	type record struct {
		When time.Time `json:"when"`
	}
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	data, err := DeterministicEncode(record{When: ts})
	if err != nil {
		t.Fatalf("DeterministicEncode: %v", err)
	}
	want := `{"when":"2026-03-14T09:26:53Z"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}
