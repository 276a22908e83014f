package ml

import (
	"errors"
	"fmt"
	"math"
)

// LogisticRegression scores p(class 1) = sigmoid(intercept + w·x).
type LogisticRegression struct {
	schema       Schema
	intercept    float64
	coefficients []float64
}

func NewLogisticRegression(schema Schema, intercept float64, coefficients []float64) (*LogisticRegression, error) {
	if len(schema.Classes) != 2 {
		return nil, errors.New("logistic regression needs exactly two classes")
	}
	if len(coefficients) != len(schema.Features) {
		return nil, fmt.Errorf("%d coefficients for %d features", len(coefficients), len(schema.Features))
	}
	return &LogisticRegression{
		schema:       schema,
		intercept:    intercept,
		coefficients: append([]float64(nil), coefficients...),
	}, nil
}

func (lr *LogisticRegression) Schema() Schema {
	return lr.schema
}

func (lr *LogisticRegression) Predict(row []float64) (int, error) {
	z, err := lr.decision(row)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return lr.schema.Classes[1], nil
	}
	return lr.schema.Classes[0], nil
}

func (lr *LogisticRegression) PredictProba(row []float64) ([]float64, error) {
	z, err := lr.decision(row)
	if err != nil {
		return nil, err
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}, nil
}

func (lr *LogisticRegression) decision(row []float64) (float64, error) {
	if err := checkRow(lr.schema, row); err != nil {
		return 0, err
	}
	z := lr.intercept
	for i, w := range lr.coefficients {
		z += w * row[i]
	}
	return z, nil
}
