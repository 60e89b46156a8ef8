package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/soilpredictor/soil-api/internal/soil"
)

// fieldValue accepts a JSON string, number or null so API clients can send
// either "6.5" or 6.5. Parsing happens in the soil package.
type fieldValue string

func (f *fieldValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = fieldValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", b)
	}
	*f = fieldValue(n.String())
	return nil
}

type PredictionRequest struct {
	Nitrogen     fieldValue `json:"nitrogen"`
	Phosphorus   fieldValue `json:"phosphorus"`
	Potassium    fieldValue `json:"potassium"`
	Temperature  fieldValue `json:"temperature"`
	Conductivity fieldValue `json:"conductivity"`
	PH           fieldValue `json:"ph"`
	Moisture     fieldValue `json:"moisture"`
}

func (r PredictionRequest) raw() soil.RawInputs {
	return soil.RawInputs{
		string(r.Nitrogen),
		string(r.Phosphorus),
		string(r.Potassium),
		string(r.Temperature),
		string(r.Conductivity),
		string(r.PH),
		string(r.Moisture),
	}
}

type PredictionResponse struct {
	*soil.PredictionResult
	ImageURL string `json:"image_url,omitempty"`
	Message  string `json:"message"`
}

type HealthResponse struct {
	Status      string   `json:"status"`
	ModelLoaded bool     `json:"model_loaded"`
	ModelError  string   `json:"model_error,omitempty"`
	Classes     []string `json:"classes,omitempty"`
	DatasetRows int      `json:"dataset_rows"`
	DatasetErr  string   `json:"dataset_error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// formKeys are the form and JSON names of the feature fields, in
// soil.FieldNames order.
var formKeys = [soil.NumFeatures]string{
	"nitrogen",
	"phosphorus",
	"potassium",
	"temperature",
	"conductivity",
	"ph",
	"moisture",
}
