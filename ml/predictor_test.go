package ml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPredictorReturnsFixedMessages(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	ctx := context.Background()

	got, err := predictor.Predict(ctx, map[string]string{"Pclass": "1", "Sex": "female", "Age": "29"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SurviveMessage {
		t.Fatalf("expected %q, got %q", SurviveMessage, got)
	}

	got, err = predictor.Predict(ctx, map[string]string{"Pclass": "1", "Sex": "Masculino", "Age": "29"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DieMessage {
		t.Fatalf("expected %q, got %q", DieMessage, got)
	}
}

func TestPredictorFailsOnBadInput(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	ctx := context.Background()

	if _, err := predictor.Predict(ctx, map[string]string{"Pclass": "1", "Sex": "female"}); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected ErrMissingFeature, got %v", err)
	}
	if _, err := predictor.Predict(ctx, map[string]string{"Pclass": "1", "Sex": "female", "Age": "old"}); !errors.Is(err, ErrNonNumeric) {
		t.Fatalf("expected ErrNonNumeric, got %v", err)
	}
	if _, err := predictor.Predict(ctx, nil); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected ErrMissingFeature for empty form, got %v", err)
	}
}

func TestPredictorHonoursCancelledContext(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := predictor.Predict(ctx, map[string]string{"Pclass": "1", "Sex": "female", "Age": "29"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewPredictorMissingModel(t *testing.T) {
	loader, err := NewLoader(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = NewPredictor(filepath.Join(t.TempDir(), "model.json"), loader, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPredictorReadsModelOnlyOnLoad(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	if err := os.Remove(predictor.Path()); err != nil {
		t.Fatal(err)
	}
	got, err := predictor.Predict(context.Background(), map[string]string{"Pclass": "2", "Sex": "female", "Age": "40"})
	if err != nil {
		t.Fatalf("expected in-memory model to keep serving, got %v", err)
	}
	if got != SurviveMessage {
		t.Fatalf("expected %q, got %q", SurviveMessage, got)
	}
}

func TestPredictorReloadKeepsModelOnFailure(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	if err := os.WriteFile(predictor.Path(), []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := predictor.Reload(); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
	if predictor.Describe().ModelType != "decision_tree" {
		t.Fatalf("expected previous model to survive, got %+v", predictor.Describe())
	}
}

func TestPredictorReloadSwapsModel(t *testing.T) {
	predictor := newTestPredictor(t, titanicTree)
	writeArtifact(t, filepath.Dir(predictor.Path()), fareLogistic)
	if err := predictor.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := predictor.Predict(context.Background(), map[string]string{"Age": "10", "Fare": "100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SurviveMessage {
		t.Fatalf("expected %q, got %q", SurviveMessage, got)
	}
}
