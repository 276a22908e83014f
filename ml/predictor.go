package ml

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	SurviveMessage = "Você sobreviveria!"
	DieMessage     = "Você morreria =()"
)

var _ ModelProvider = (*Predictor)(nil)

type loadedModel struct {
	Classifier
}

// Predictor scores feature mappings against a model loaded once from path.
// The model is read-only after loading; Reload swaps it as a whole.
type Predictor struct {
	path   string
	loader *Loader
	logger *zap.Logger
	model  atomic.Pointer[loadedModel]
}

func NewPredictor(path string, loader *Loader, logger *zap.Logger) (*Predictor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Predictor{
		path:   path,
		loader: loader,
		logger: logger.Named("predictor"),
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload reads the artifact again. On failure the current model stays.
func (p *Predictor) Reload() error {
	model, err := p.loader.Load(p.path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	p.model.Store(&loadedModel{Classifier: model})
	schema := model.Schema()
	p.logger.Info("model loaded",
		zap.String("path", p.path),
		zap.String("model_type", schema.ModelType),
		zap.Strings("features", schema.Features))
	return nil
}

func (p *Predictor) Describe() Schema {
	current := p.model.Load()
	if current == nil {
		return Schema{}
	}
	return current.Schema()
}

func (p *Predictor) Path() string {
	return p.path
}

func (p *Predictor) Predict(ctx context.Context, features map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	current := p.model.Load()
	if current == nil {
		return "", ErrModelNotLoaded
	}

	frame := NewFrame(features)
	p.logger.Debug("frame", zap.Stringer("row", frame))

	row, err := frame.Row(current.Schema())
	if err != nil {
		return "", err
	}
	label, err := current.Predict(row)
	if err != nil {
		return "", err
	}
	probas, err := current.PredictProba(row)
	if err != nil {
		return "", err
	}
	p.logger.Debug("prediction", zap.Int("label", label), zap.Float64s("probabilities", probas))

	if label != 0 {
		return SurviveMessage, nil
	}
	return DieMessage, nil
}
