package ml

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Artifact is the on-disk JSON form of a fitted classifier.
type Artifact struct {
	Schema
	Nodes        []TreeNode `json:"nodes,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
	Coefficients []float64  `json:"coefficients,omitempty"`
}

func DecodeModel(payload []byte) (Classifier, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrInvalidArtifact)
	}
	if len(artifact.Classes) == 0 {
		artifact.Classes = []int{0, 1}
	}
	schema := artifact.Schema
	schema.Encodings = foldEncodings(schema.Encodings)

	var (
		model Classifier
		err   error
	)
	switch artifact.ModelType {
	case "decision_tree":
		model, err = NewDecisionTree(schema, artifact.Nodes)
	case "logistic_regression":
		model, err = NewLogisticRegression(schema, artifact.Intercept, artifact.Coefficients)
	default:
		return nil, fmt.Errorf("%w: unsupported model type %q", ErrInvalidArtifact, artifact.ModelType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return model, nil
}

func LoadModel(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeModel(payload)
}

// Loader reads model artifacts and remembers decoded models by content
// hash, so rereading an unchanged file does not decode it again.
type Loader struct {
	cache *lru.Cache[string, Classifier]
}

func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = 4
	}
	cache, err := lru.New[string, Classifier](size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

func (l *Loader) Load(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(payload)
	key := hex.EncodeToString(digest[:])
	if model, ok := l.cache.Get(key); ok {
		return model, nil
	}
	model, err := DecodeModel(payload)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	l.cache.Add(key, model)
	return model, nil
}

func (l *Loader) Cached() int {
	return l.cache.Len()
}
