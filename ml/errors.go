package ml

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFeature    = errors.New("missing feature")
	ErrUnexpectedFeature = errors.New("unexpected feature")
	ErrNonNumeric        = errors.New("non-numeric value")
	ErrModelNotLoaded    = errors.New("model not loaded")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
)

type rowLengthError struct {
	want, got int
}

func (e *rowLengthError) Error() string {
	return fmt.Sprintf("row has %d values, model expects %d", e.got, e.want)
}
