package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultBins = 20

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelCounts returns the class distribution, largest first.
func (d *Dataset) LabelCounts() []LabelCount {
	counts := make(map[string]int)
	for _, r := range d.Rows {
		counts[r.Label]++
	}

	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

type Matrix struct {
	Features []string    `json:"features"`
	Values   [][]float64 `json:"values"`
}

// Correlation returns the Pearson correlation between every pair of
// features. Pairs involving a constant column are reported as 0.
func (d *Dataset) Correlation() Matrix {
	n := len(d.Features)
	cols := make([][]float64, n)
	for i := range cols {
		cols[i] = d.column(i)
	}

	m := Matrix{Features: d.Features, Values: make([][]float64, n)}
	for i := 0; i < n; i++ {
		m.Values[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				m.Values[i][j] = 1
				continue
			}
			c := stat.Correlation(cols[i], cols[j], nil)
			if math.IsNaN(c) {
				c = 0
			}
			m.Values[i][j] = c
		}
	}
	return m
}

type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram splits a feature into equal-width bins over its range.
func (d *Dataset) Histogram(feature string, bins int) ([]Bin, error) {
	if bins <= 0 {
		bins = DefaultBins
	}
	values, err := d.Column(feature)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	sort.Float64s(values)

	lo, hi := values[0], values[len(values)-1]
	if lo == hi {
		hi = lo + 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram needs every value strictly below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, values, nil)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: dividers[i], High: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].High = hi
	return out, nil
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// Scatter pairs two features, one series per label.
func (d *Dataset) Scatter(x, y string) ([]Series, error) {
	xi, err := d.featureIndex(x)
	if err != nil {
		return nil, err
	}
	yi, err := d.featureIndex(y)
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]*Series)
	var order []string
	for _, r := range d.Rows {
		s, ok := byLabel[r.Label]
		if !ok {
			s = &Series{Label: r.Label}
			byLabel[r.Label] = s
			order = append(order, r.Label)
		}
		s.Points = append(s.Points, Point{X: r.Features[xi], Y: r.Features[yi]})
	}

	sort.Strings(order)
	out := make([]Series, 0, len(order))
	for _, label := range order {
		out = append(out, *byLabel[label])
	}
	return out, nil
}

type Summary struct {
	Feature string  `json:"feature"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Describe summarizes every feature column.
func (d *Dataset) Describe() []Summary {
	out := make([]Summary, 0, len(d.Features))
	for i, name := range d.Features {
		col := d.column(i)
		if len(col) == 0 {
			out = append(out, Summary{Feature: name})
			continue
		}
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) {
			std = 0
		}
		out = append(out, Summary{
			Feature: name,
			Mean:    mean,
			StdDev:  std,
			Min:     floats.Min(col),
			Max:     floats.Max(col),
		})
	}
	return out
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: mean=%.2f std=%.2f min=%.2f max=%.2f", s.Feature, s.Mean, s.StdDev, s.Min, s.Max)
}
