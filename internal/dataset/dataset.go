// Package dataset reads the soil measurement CSV shown on the visualization
// page. It is loaded once and never modified.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrUnknownFeature = errors.New("unknown feature")

const labelColumn = "Label"

type Row struct {
	Features []float64 `json:"features"`
	Label    string    `json:"label"`
}

type Dataset struct {
	Features []string
	Rows     []Row

	// Skipped counts malformed rows dropped while parsing.
	Skipped int
}

// Load reads a dataset from a CSV file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a CSV whose header names the feature columns and a label
// column. The label column is the one named "Label", or the last column.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) < 2 {
		return nil, fmt.Errorf("dataset needs at least one feature and a label column, got %d columns", len(headers))
	}

	labelIdx := len(headers) - 1
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), labelColumn) {
			labelIdx = i
			break
		}
	}

	ds := &Dataset{}
	for i, h := range headers {
		if i != labelIdx {
			ds.Features = append(ds.Features, strings.TrimSpace(h))
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				ds.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row, ok := parseRow(record, labelIdx, len(headers))
		if !ok {
			ds.Skipped++
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func parseRow(record []string, labelIdx, width int) (Row, bool) {
	if len(record) != width {
		return Row{}, false
	}
	row := Row{Features: make([]float64, 0, width-1)}
	for i, val := range record {
		val = strings.TrimSpace(val)
		if i == labelIdx {
			row.Label = val
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return Row{}, false
		}
		row.Features = append(row.Features, f)
	}
	if row.Label == "" {
		return Row{}, false
	}
	return row, true
}

// Head returns the first n rows; n <= 0 returns every row.
func (d *Dataset) Head(n int) []Row {
	if n <= 0 || n > len(d.Rows) {
		return d.Rows
	}
	return d.Rows[:n]
}

func (d *Dataset) featureIndex(name string) (int, error) {
	for i, f := range d.Features {
		if f == name {
			return i, nil
		}
	}
	for i, f := range d.Features {
		if strings.EqualFold(f, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

// Column returns every value of one feature.
func (d *Dataset) Column(name string) ([]float64, error) {
	idx, err := d.featureIndex(name)
	if err != nil {
		return nil, err
	}
	return d.column(idx), nil
}

func (d *Dataset) column(idx int) []float64 {
	out := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Features[idx]
	}
	return out
}
