package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Nitrogen,Phosphorus,Potassium,Temperature,Conductivity,pH,Moisture,Label
10,20,30,25,1.0,6.0,10,Red Soil
20,40,30,26,1.5,6.5,20,Red Soil
30,60,30,27,2.0,7.0,30,Alluvial Soil
40,80,30,28,2.5,7.5,40,Desert Soil
oops,80,30,28,2.5,7.5,40,Desert Soil
50,100,30,29,3.0,8.0,50
`

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return ds
}

func TestParse(t *testing.T) {
	ds := loadSample(t)
	if len(ds.Features) != 7 || ds.Features[6] != "Moisture" {
		t.Fatalf("features = %v", ds.Features)
	}
	if len(ds.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(ds.Rows))
	}
	if ds.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", ds.Skipped)
	}
	if ds.Rows[2].Label != "Alluvial Soil" || ds.Rows[2].Features[1] != 60 {
		t.Fatalf("row 2 = %+v", ds.Rows[2])
	}
}

func TestParseLabelColumnNotLast(t *testing.T) {
	ds, err := Parse(strings.NewReader("label,a,b\nRed Soil,1,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Features) != 2 || ds.Features[0] != "a" {
		t.Fatalf("features = %v", ds.Features)
	}
	if ds.Rows[0].Label != "Red Soil" || ds.Rows[0].Features[1] != 2 {
		t.Fatalf("row = %+v", ds.Rows[0])
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Parse(strings.NewReader("Label\n")); err == nil {
		t.Fatal("expected error for missing feature columns")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soils.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Rows) != 4 {
		t.Fatalf("rows = %d", len(ds.Rows))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestHead(t *testing.T) {
	ds := loadSample(t)
	if got := len(ds.Head(2)); got != 2 {
		t.Fatalf("Head(2) = %d rows", got)
	}
	if got := len(ds.Head(0)); got != 4 {
		t.Fatalf("Head(0) = %d rows", got)
	}
	if got := len(ds.Head(100)); got != 4 {
		t.Fatalf("Head(100) = %d rows", got)
	}
}

func TestLabelCounts(t *testing.T) {
	got := loadSample(t).LabelCounts()
	want := []LabelCount{
		{"Red Soil", 2},
		{"Alluvial Soil", 1},
		{"Desert Soil", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCorrelation(t *testing.T) {
	m := loadSample(t).Correlation()
	if len(m.Values) != 7 {
		t.Fatalf("matrix has %d rows", len(m.Values))
	}
	// Nitrogen and Phosphorus move together exactly.
	if math.Abs(m.Values[0][1]-1) > 1e-9 {
		t.Fatalf("corr(N, P) = %v", m.Values[0][1])
	}
	// Potassium is constant.
	if m.Values[0][2] != 0 {
		t.Fatalf("corr(N, K) = %v", m.Values[0][2])
	}
	if m.Values[2][2] != 1 {
		t.Fatalf("diagonal = %v", m.Values[2][2])
	}
}

func TestHistogram(t *testing.T) {
	ds := loadSample(t)
	bins, err := ds.Histogram("Moisture", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 3 {
		t.Fatalf("bins = %v", bins)
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 4 {
		t.Fatalf("histogram counts %d values, want 4", total)
	}
	if bins[0].Low != 10 || bins[2].High != 40 {
		t.Fatalf("range = [%v, %v]", bins[0].Low, bins[2].High)
	}
	if bins[0].Count != 1 || bins[2].Count != 2 {
		t.Fatalf("max value not counted in last bin: %v", bins)
	}

	constant, err := ds.Histogram("potassium", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(constant) != DefaultBins || constant[0].Count != 4 {
		t.Fatalf("constant column histogram = %v", constant[:1])
	}

	if _, err := ds.Histogram("Clay", 5); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestScatter(t *testing.T) {
	series, err := loadSample(t).Scatter("Nitrogen", "pH")
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 3 || series[0].Label != "Alluvial Soil" {
		t.Fatalf("series = %+v", series)
	}
	red := series[2]
	if red.Label != "Red Soil" || len(red.Points) != 2 || red.Points[1] != (Point{X: 20, Y: 6.5}) {
		t.Fatalf("red series = %+v", red)
	}

	if _, err := loadSample(t).Scatter("Nitrogen", "Clay"); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	sums := loadSample(t).Describe()
	if len(sums) != 7 {
		t.Fatalf("summaries = %d", len(sums))
	}
	n := sums[0]
	if n.Mean != 25 || n.Min != 10 || n.Max != 40 {
		t.Fatalf("nitrogen summary = %+v", n)
	}
	if sums[2].StdDev != 0 {
		t.Fatalf("constant column std = %v", sums[2].StdDev)
	}
	if !strings.HasPrefix(n.String(), "Nitrogen: mean=25.00") {
		t.Fatalf("String() = %q", n.String())
	}
}
