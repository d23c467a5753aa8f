package net

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotEvaluated is returned by Backward when no feedforward pass has run
// since the network was built or its parameters were replaced.
var ErrNotEvaluated = errors.New("net: backward called before feedforward")

// InvalidInputSizeError reports a vector whose length does not match the
// layer it is applied to.
type InvalidInputSizeError struct {
	Op   string
	Got  int
	Want int
}

func (e *InvalidInputSizeError) Error() string {
	return fmt.Sprintf("net: %s: invalid number of values: got %d, want %d", e.Op, e.Got, e.Want)
}

// ModelLoadError reports a model that could not be read, parsed or applied.
// Path is empty when the model was decoded from a stream.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("net: load model: %v", e.Err)
	}
	return fmt.Sprintf("net: load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// Cause supports errors.Cause from github.com/pkg/errors.
func (e *ModelLoadError) Cause() error { return e.Err }

// ModelSaveError reports a model that could not be encoded or written.
type ModelSaveError struct {
	Path string
	Err  error
}

func (e *ModelSaveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("net: save model: %v", e.Err)
	}
	return fmt.Sprintf("net: save model %s: %v", e.Path, e.Err)
}

func (e *ModelSaveError) Unwrap() error { return e.Err }

// Cause supports errors.Cause from github.com/pkg/errors.
func (e *ModelSaveError) Cause() error { return e.Err }
