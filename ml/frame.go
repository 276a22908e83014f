package ml

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Frame is a single-row table built from submitted form values.
type Frame struct {
	values map[string]string
}

func NewFrame(features map[string]string) *Frame {
	values := make(map[string]string, len(features))
	for name, value := range features {
		values[name] = value
	}
	return &Frame{values: values}
}

// Columns returns the column names in lexical order.
func (f *Frame) Columns() []string {
	columns := make([]string, 0, len(f.values))
	for name := range f.values {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

func (f *Frame) Len() int {
	return len(f.values)
}

func (f *Frame) String() string {
	var b strings.Builder
	for i, name := range f.Columns() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%q", name, f.values[name])
	}
	return b.String()
}

// Row aligns the frame with the schema's feature order and converts every
// cell to a float. Columns unknown to the schema are rejected.
func (f *Frame) Row(schema Schema) ([]float64, error) {
	known := make(map[string]struct{}, len(schema.Features))
	for _, name := range schema.Features {
		known[name] = struct{}{}
	}
	for _, name := range f.Columns() {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedFeature, name)
		}
	}

	row := make([]float64, len(schema.Features))
	for i, name := range schema.Features {
		raw, ok := f.values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		value, err := cellValue(raw, schema.Encodings[name])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		row[i] = value
	}
	return row, nil
}

func cellValue(raw string, encoding map[string]float64) (float64, error) {
	if len(encoding) > 0 {
		if code, ok := encoding[foldCategory(raw)]; ok {
			return code, nil
		}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, raw)
	}
	return value, nil
}

// foldCategory strips accents and case so "Feminino", "feminino" and
// "FEMÍNINO" select the same encoding.
func foldCategory(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(value))
	if err != nil {
		stripped = strings.TrimSpace(value)
	}
	return cases.Fold().String(stripped)
}

func foldEncodings(encodings map[string]map[string]float64) map[string]map[string]float64 {
	if len(encodings) == 0 {
		return nil
	}
	folded := make(map[string]map[string]float64, len(encodings))
	for column, categories := range encodings {
		codes := make(map[string]float64, len(categories))
		for category, code := range categories {
			codes[foldCategory(category)] = code
		}
		folded[column] = codes
	}
	return folded
}
