package ml

import (
	"os"
	"path/filepath"
	"testing"
)

// titanicTree routes men to death, women in first or second class to
// survival, and women in third class to a 50/50 leaf.
const titanicTree = `{
  "model_type": "decision_tree",
  "features": ["Pclass", "Sex", "Age"],
  "classes": [0, 1],
  "encodings": {"Sex": {"male": 0, "female": 1, "Masculino": 0, "Feminino": 1}},
  "nodes": [
    {"feature_idx": 1, "threshold": 0.5, "left_child": 1, "right_child": 2},
    {"is_leaf": true, "value": [80, 20]},
    {"feature_idx": 0, "threshold": 2.5, "left_child": 3, "right_child": 4},
    {"is_leaf": true, "value": [5, 95]},
    {"is_leaf": true, "value": [50, 50]}
  ]
}`

const fareLogistic = `{
  "model_type": "logistic_regression",
  "features": ["Age", "Fare"],
  "intercept": 0,
  "coefficients": [-0.1, 0.05]
}`

func writeArtifact(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func newTestPredictor(t *testing.T, content string) *Predictor {
	t.Helper()
	loader, err := NewLoader(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	predictor, err := NewPredictor(writeArtifact(t, t.TempDir(), content), loader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return predictor
}
