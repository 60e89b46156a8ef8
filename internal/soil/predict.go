package soil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// LowMoistureThreshold is inclusive.
const LowMoistureThreshold = 20.0

const LowMoistureAdvisory = "Warning: Soil moisture is too low. Please consider irrigation."

var (
	ErrModelUnavailable = errors.New("soil classifier is not loaded")
	ErrInference        = errors.New("soil classification failed")

	errNotFinite = errors.New("value is not finite")
)

// Classifier is the loaded model artifact.
type Classifier interface {
	Predict(FeatureVector) (int, error)
}

// InputError reports the first field that could not be parsed.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if strings.TrimSpace(e.Value) == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s must be a number, got %q", e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseInputs converts raw form values into a feature vector.
func ParseInputs(raw RawInputs) (FeatureVector, error) {
	var v FeatureVector
	for i, s := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = errNotFinite
		}
		if err != nil {
			return FeatureVector{}, &InputError{Field: FieldNames[i], Value: s, Err: err}
		}
		v[i] = f
	}
	return v, nil
}

// Predictor wraps a classifier. A Predictor without a classifier rejects
// every prediction with ErrModelUnavailable.
type Predictor struct {
	classifier Classifier
}

func NewPredictor(c Classifier) *Predictor {
	return &Predictor{classifier: c}
}

func (p *Predictor) Available() bool {
	return p != nil && p.classifier != nil
}

// PredictSoil parses the inputs and classifies them.
func (p *Predictor) PredictSoil(raw RawInputs) (SoilLabel, error) {
	v, err := ParseInputs(raw)
	if err != nil {
		return UnknownSoil, err
	}
	return p.classify(v)
}

func (p *Predictor) classify(v FeatureVector) (SoilLabel, error) {
	if !p.Available() {
		return UnknownSoil, ErrModelUnavailable
	}
	idx, err := p.classifier.Predict(v)
	if err != nil {
		return UnknownSoil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	label := LabelFromIndex(idx)
	if !label.Known() {
		log.WithField("class_index", idx).Warn("[Predict] Classifier returned an unknown class index")
	}
	return label, nil
}

// Evaluate runs a full submission: classification, crop lookup and the
// low-moisture advisory.
func (p *Predictor) Evaluate(raw RawInputs) (*PredictionResult, error) {
	v, err := ParseInputs(raw)
	if err != nil {
		return nil, err
	}
	label, err := p.classify(v)
	if err != nil {
		return nil, err
	}

	crops, image := Recommend(label)
	res := &PredictionResult{
		ID:       uuid.NewString(),
		Label:    label,
		Features: v,
		Crops:    crops,
		Image:    image,
	}
	if v.Moisture() <= LowMoistureThreshold {
		res.LowMoisture = true
		res.Advisory = LowMoistureAdvisory
	}

	log.WithFields(log.Fields{
		"id":           res.ID,
		"label":        label.String(),
		"low_moisture": res.LowMoisture,
	}).Debug("[Predict] Soil classified")
	return res, nil
}
