package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/soilpredictor/soil-api/internal/soil"
)

const (
	OutputLabel  = "label"
	OutputScores = "scores"
)

type Metadata struct {
	InputName   string   `json:"input_name"`
	OutputName  string   `json:"output_name"`
	OutputKind  string   `json:"output_kind"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
}

func readMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	md.applyDefaults()
	if err := md.validate(); err != nil {
		return Metadata{}, err
	}
	return md, nil
}

// Defaults match what skl2onnx emits for a classifier with a single
// float_input of shape [1, 7].
func (m *Metadata) applyDefaults() {
	if m.InputName == "" {
		m.InputName = "float_input"
	}
	if m.OutputKind == "" {
		m.OutputKind = OutputLabel
	}
	if m.OutputName == "" {
		if m.OutputKind == OutputScores {
			m.OutputName = "probabilities"
		} else {
			m.OutputName = "output_label"
		}
	}
	if len(m.InputShape) == 0 {
		m.InputShape = []int64{1, soil.NumFeatures}
	}
	if len(m.OutputShape) == 0 {
		if m.OutputKind == OutputScores {
			m.OutputShape = []int64{1, int64(len(m.Classes))}
		} else {
			m.OutputShape = []int64{1}
		}
	}
}

func (m Metadata) validate() error {
	if m.OutputKind != OutputLabel && m.OutputKind != OutputScores {
		return fmt.Errorf("unsupported output kind %q", m.OutputKind)
	}
	if n := elements(m.InputShape); n != soil.NumFeatures {
		return fmt.Errorf("input shape %v holds %d values, expected %d features", m.InputShape, n, soil.NumFeatures)
	}
	switch m.OutputKind {
	case OutputLabel:
		if n := elements(m.OutputShape); n != 1 {
			return fmt.Errorf("label output shape %v must hold a single value", m.OutputShape)
		}
	case OutputScores:
		if n := elements(m.OutputShape); n < 1 {
			return fmt.Errorf("score output shape %v is empty", m.OutputShape)
		}
	}
	return nil
}

func elements(shape []int64) int64 {
	if len(shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// argmax returns the index of the highest score, the first one on ties.
func argmax(scores []float32) int {
	if len(scores) == 0 {
		return -1
	}
	maxIdx := 0
	maxVal := scores[0]
	for i, v := range scores {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}
	return maxIdx
}

// LoadError reports an artifact that could not be loaded at startup.
type LoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading the %s from %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
