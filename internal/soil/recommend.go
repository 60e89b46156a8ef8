package soil

// NoRecommendation is returned for labels without an entry.
const NoRecommendation = "No recommendations available"

type recommendation struct {
	crops string
	image string
}

var recommendations = map[SoilLabel]recommendation{
	AlluvialSoil: {
		crops: "Rice, Wheat, Bajra, Chickpea, Soybean, Cotton, Mustard, Groundnut, Sesame, Barley, Maize",
		image: "alluvial-soil.jpg",
	},
	DesertSoil: {
		crops: "Corns, Beans, Onions, Garlics, Tomatoes.",
		image: "desert-soil.jpg",
	},
	RedSoil: {
		crops: "Cotton, Wheat, Rice, Pulses, Millets, Tobacco, Oil seeds, Potatoes, Fruits.",
		image: "red-soil.jpg",
	},
	LoamySoil: {
		crops: "Tomatoes, Carrot, Peppers, Green Beans, Cucumbers, Strawberries, Sweet Corn, Spinach, Potatoes.",
		image: "loamy-soil.jpg",
	},
}

// Recommend returns the suggested crops and the illustration file name for
// a label. The image is empty when the label has no entry.
func Recommend(label SoilLabel) (crops string, image string) {
	rec, ok := recommendations[label]
	if !ok {
		return NoRecommendation, ""
	}
	return rec.crops, rec.image
}

// Images lists every illustration referenced by the lookup table.
func Images() []string {
	out := make([]string, 0, len(KnownLabels))
	for _, l := range KnownLabels {
		if rec, ok := recommendations[l]; ok {
			out = append(out, rec.image)
		}
	}
	return out
}
