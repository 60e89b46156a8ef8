package soil

import (
	"encoding/json"
	"testing"
)

func TestRecommendIsTotal(t *testing.T) {
	tests := []struct {
		label SoilLabel
		crops string
		image string
	}{
		{AlluvialSoil, "Rice, Wheat, Bajra, Chickpea, Soybean, Cotton, Mustard, Groundnut, Sesame, Barley, Maize", "alluvial-soil.jpg"},
		{DesertSoil, "Corns, Beans, Onions, Garlics, Tomatoes.", "desert-soil.jpg"},
		{LoamySoil, "Tomatoes, Carrot, Peppers, Green Beans, Cucumbers, Strawberries, Sweet Corn, Spinach, Potatoes.", "loamy-soil.jpg"},
		{RedSoil, "Cotton, Wheat, Rice, Pulses, Millets, Tobacco, Oil seeds, Potatoes, Fruits.", "red-soil.jpg"},
		{UnknownSoil, NoRecommendation, ""},
		{SoilLabel(42), NoRecommendation, ""},
	}
	for _, tt := range tests {
		crops, image := Recommend(tt.label)
		if crops != tt.crops || image != tt.image {
			t.Errorf("Recommend(%v) = %q, %q", tt.label, crops, image)
		}
	}
}

func TestImagesCoversKnownLabels(t *testing.T) {
	if got := len(Images()); got != len(KnownLabels) {
		t.Fatalf("Images() has %d entries, want %d", got, len(KnownLabels))
	}
}

func TestLabelText(t *testing.T) {
	if SoilLabel(-7).String() != "Unknown Soil Type" {
		t.Fatalf("negative label = %q", SoilLabel(-7))
	}

	b, err := json.Marshal(struct {
		Label SoilLabel `json:"label"`
	}{LoamySoil})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"label":"Loamy Soil"}` {
		t.Fatalf("marshal = %s", b)
	}

	var l SoilLabel
	if err := l.UnmarshalText([]byte("Desert Soil")); err != nil || l != DesertSoil {
		t.Fatalf("unmarshal = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("Clay")); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestFeatureVectorFloat32(t *testing.T) {
	v := FeatureVector{1, 2, 3, 4, 5, 6, 7.5}
	f := v.Float32()
	if len(f) != NumFeatures || f[6] != 7.5 {
		t.Fatalf("Float32() = %v", f)
	}
}
