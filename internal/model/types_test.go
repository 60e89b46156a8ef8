package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMetadata(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model_metadata.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadMetadataDefaults(t *testing.T) {
	md, err := readMetadata(writeMetadata(t, `{"classes": ["Alluvial Soil", "Desert Soil", "Loamy Soil", "Red Soil"]}`))
	if err != nil {
		t.Fatalf("readMetadata: %v", err)
	}
	if md.InputName != "float_input" || md.OutputName != "output_label" || md.OutputKind != OutputLabel {
		t.Fatalf("unexpected defaults: %+v", md)
	}
	if elements(md.InputShape) != 7 || elements(md.OutputShape) != 1 {
		t.Fatalf("unexpected shapes: %v %v", md.InputShape, md.OutputShape)
	}
}

func TestReadMetadataScores(t *testing.T) {
	md, err := readMetadata(writeMetadata(t, `{
		"output_kind": "scores",
		"input_shape": [1, 7],
		"classes": ["a", "b", "c", "d"]
	}`))
	if err != nil {
		t.Fatalf("readMetadata: %v", err)
	}
	if md.OutputName != "probabilities" {
		t.Fatalf("output name = %q", md.OutputName)
	}
	if elements(md.OutputShape) != 4 {
		t.Fatalf("output shape = %v", md.OutputShape)
	}
}

func TestReadMetadataRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{"classes": [`, "failed to parse metadata"},
		{"wrong feature count", `{"input_shape": [1, 5]}`, "expected 7 features"},
		{"unknown kind", `{"output_kind": "logits"}`, "unsupported output kind"},
		{"multi label", `{"output_shape": [2]}`, "single value"},
		{"scores without classes", `{"output_kind": "scores"}`, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readMetadata(writeMetadata(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewServerMissingMetadata(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	_, err := NewServer(filepath.Join(t.TempDir(), "model.onnx"), missing)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if loadErr.Path != missing || loadErr.Artifact != "model metadata" {
		t.Fatalf("unexpected load error %+v", loadErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		scores []float32
		want   int
	}{
		{nil, -1},
		{[]float32{0.1}, 0},
		{[]float32{0.1, 0.7, 0.2}, 1},
		{[]float32{0.4, 0.1, 0.4}, 0},
		{[]float32{-3, -1, -2}, 1},
	}
	for _, tt := range tests {
		if got := argmax(tt.scores); got != tt.want {
			t.Errorf("argmax(%v) = %d, want %d", tt.scores, got, tt.want)
		}
	}
}
