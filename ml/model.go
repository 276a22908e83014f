package ml

import "context"

// Classifier is a fitted binary classifier decoded from a model artifact.
// Implementations are immutable once built and safe for concurrent use.
type Classifier interface {
	Schema() Schema
	Predict(row []float64) (int, error)
	PredictProba(row []float64) ([]float64, error)
}

// Schema describes the columns a classifier was trained on.
type Schema struct {
	ModelType string                        `json:"model_type"`
	Features  []string                      `json:"features"`
	Classes   []int                         `json:"classes"`
	Encodings map[string]map[string]float64 `json:"encodings,omitempty"`
}

type ModelProvider interface {
	Predict(ctx context.Context, features map[string]string) (string, error)
}

func checkRow(schema Schema, row []float64) error {
	if len(row) != len(schema.Features) {
		return &rowLengthError{want: len(schema.Features), got: len(row)}
	}
	return nil
}
