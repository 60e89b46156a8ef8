package soil

import "fmt"

// NumFeatures is the length of the vector the classifier was trained on.
const NumFeatures = 7

// Field order of the feature vector.
var FieldNames = [NumFeatures]string{
	"Nitrogen",
	"Phosphorus",
	"Potassium",
	"Temperature",
	"Conductivity",
	"pH",
	"Moisture",
}

const moistureIndex = 6

// FeatureVector holds one sample in FieldNames order.
type FeatureVector [NumFeatures]float64

func (v FeatureVector) Moisture() float64 {
	return v[moistureIndex]
}

// Float32 converts the vector to the element type of the ONNX input tensor.
func (v FeatureVector) Float32() []float32 {
	out := make([]float32, NumFeatures)
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

// RawInputs are the unparsed form values, in FieldNames order.
type RawInputs [NumFeatures]string

type SoilLabel int

const (
	AlluvialSoil SoilLabel = iota
	DesertSoil
	LoamySoil
	RedSoil
	UnknownSoil
)

var labelNames = [...]string{
	AlluvialSoil: "Alluvial Soil",
	DesertSoil:   "Desert Soil",
	LoamySoil:    "Loamy Soil",
	RedSoil:      "Red Soil",
	UnknownSoil:  "Unknown Soil Type",
}

// KnownLabels lists the labels in class index order.
var KnownLabels = []SoilLabel{AlluvialSoil, DesertSoil, LoamySoil, RedSoil}

// LabelFromIndex maps a classifier output to a label. Indexes outside the
// trained classes map to UnknownSoil.
func LabelFromIndex(idx int) SoilLabel {
	if idx < 0 || idx >= len(KnownLabels) {
		return UnknownSoil
	}
	return KnownLabels[idx]
}

func (l SoilLabel) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return labelNames[UnknownSoil]
	}
	return labelNames[l]
}

func (l SoilLabel) Known() bool {
	return l >= AlluvialSoil && l < UnknownSoil
}

func (l SoilLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *SoilLabel) UnmarshalText(text []byte) error {
	for i, name := range labelNames {
		if name == string(text) {
			*l = SoilLabel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown soil label %q", text)
}

// PredictionResult is what a single submission renders.
type PredictionResult struct {
	ID          string        `json:"id"`
	Label       SoilLabel     `json:"label"`
	Features    FeatureVector `json:"features"`
	Crops       string        `json:"crops"`
	Image       string        `json:"image,omitempty"`
	LowMoisture bool          `json:"low_moisture"`
	Advisory    string        `json:"advisory,omitempty"`
}
