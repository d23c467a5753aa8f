// Package activations provides the activation functions available to a network.
//
// A Kind is a closed set of variants. Derivatives are expressed in terms of the
// node's activated output y, not its pre-activation input.
package activations

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Kind selects an activation function and its derivative.
type Kind int

// Supported kinds. The numeric values match the persisted enumeration order.
const (
	Sigmoid Kind = iota + 1
	Tanh
	ReLU
	// None is the identity activation.
	None
)

// Func maps one scalar to another.
type Func func(float64) float64

var names = map[Kind]string{
	Sigmoid: "SIGMOID",
	Tanh:    "TANH",
	ReLU:    "RELU",
	None:    "NONE",
}

// UnrecognizedKindError reports a kind outside the supported set.
type UnrecognizedKindError struct {
	Name string
}

func (e *UnrecognizedKindError) Error() string {
	return fmt.Sprintf("unrecognized activation function type %q", e.Name)
}

// String returns the persisted name of k.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := names[k]
	return ok
}

// Parse maps a persisted name (case-insensitive) to its Kind.
func Parse(name string) (Kind, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for k, n := range names {
		if n == upper {
			return k, nil
		}
	}
	return 0, errors.WithStack(&UnrecognizedKindError{Name: name})
}

// Activate computes f(x).
func (k Kind) Activate(x float64) float64 {
	switch k {
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case None:
		return x
	}
	panic(&UnrecognizedKindError{Name: k.String()})
}

// Derivative computes f' from the activated output y.
//
// None returns y unchanged rather than 1. Models trained with this engine
// depend on it.
func (k Kind) Derivative(y float64) float64 {
	switch k {
	case Sigmoid:
		return y * (1 - y)
	case Tanh:
		return 1 - y*y
	case ReLU:
		if y > 0 {
			return 1
		}
		return 0
	case None:
		return y
	}
	panic(&UnrecognizedKindError{Name: k.String()})
}

// Functions returns the activation and derivative bound to k.
// It panics with *UnrecognizedKindError if k is not supported.
func Functions(k Kind) (activate, derivative Func) {
	if !k.Valid() {
		panic(&UnrecognizedKindError{Name: k.String()})
	}
	return k.Activate, k.Derivative
}
