package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"survivalweb/ml"
)

//go:embed templates/home.html
var homePage []byte

const maxMultipartMemory = 32 << 10

// Predictor is what the handlers need from the model layer.
type Predictor interface {
	ml.ModelProvider
	Describe() ml.Schema
}

type Handlers struct {
	predictor Predictor
	logger    *zap.Logger
	debug     bool
}

func NewHandlers(predictor Predictor, logger *zap.Logger, debug bool) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{predictor: predictor, logger: logger, debug: debug}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST /api", h.handleAPI)
	mux.HandleFunc("GET /api/health", h.handleHealth)
}

func (h *Handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(homePage)
}

func (h *Handlers) handleAPI(w http.ResponseWriter, r *http.Request) {
	features, err := formValues(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		h.fail(w, r, err)
		return
	}

	result, err := h.predictor.Predict(r.Context(), features)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, result)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"model":  h.predictor.Describe().ModelType,
	})
}

// fail answers 500 for every prediction failure. Debug mode exposes the
// error text in the body.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("prediction failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Error(err))
	body := http.StatusText(http.StatusInternalServerError)
	if h.debug {
		body = err.Error()
	}
	http.Error(w, body, http.StatusInternalServerError)
}

// formValues flattens the posted form, keeping the first value of
// repeated keys.
func formValues(r *http.Request) (map[string]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	features := make(map[string]string, len(r.PostForm))
	for name, values := range r.PostForm {
		if len(values) > 0 {
			features[name] = values[0]
		}
	}
	return features, nil
}
