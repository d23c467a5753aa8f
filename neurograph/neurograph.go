// Package neurograph exposes the three layer node graph network for use
// outside this module.
package neurograph

import (
	"github.com/FlavioCFOliveira/neurograph/internal/activations"
	"github.com/FlavioCFOliveira/neurograph/internal/classify"
	"github.com/FlavioCFOliveira/neurograph/internal/loss"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
)

// Re-export common types and functions for easier access
type (
	Network      = net.Network
	Params       = net.Params
	Option       = net.Option
	ClassifyFunc = net.ClassifyFunc
	Kind         = activations.Kind
	Loss         = loss.Loss
)

// Activation kinds
const (
	Sigmoid = activations.Sigmoid
	Tanh    = activations.Tanh
	ReLU    = activations.ReLU
	None    = activations.None
)

// ParseKind parses a persisted activation name such as "SIGMOID".
func ParseKind(name string) (Kind, error) {
	return activations.Parse(name)
}

// Network creation
func New(inputSize, hiddenSize, outputSize int, kind Kind, opts ...Option) *Network {
	return net.New(inputSize, hiddenSize, outputSize, kind, opts...)
}

func WithSeed(seed uint64) Option {
	return net.WithSeed(seed)
}

func WithLoss(l Loss) Option {
	return net.WithLoss(l)
}

// Losses
var (
	MSE          = loss.MSE{}
	SumSquared   = loss.SumSquared{}
	CrossEntropy = loss.CrossEntropy{}
)

// Callbacks
type Callback = net.Callback

func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func ModelCheckpoint(filename string) *net.ModelCheckpoint {
	return net.NewModelCheckpoint(filename)
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

// Classification
func Letters(threshold float64) ClassifyFunc {
	return classify.Letters(threshold)
}

var ErrNoLetter = classify.ErrNoLetter

// Errors
type (
	InvalidInputSizeError = net.InvalidInputSizeError
	ModelLoadError        = net.ModelLoadError
	ModelSaveError        = net.ModelSaveError
	UnrecognizedKindError = activations.UnrecognizedKindError
)

var ErrNotEvaluated = net.ErrNotEvaluated

// Model Persistence
func Load(filename string) (*Network, error) {
	return net.Load(filename)
}

func SaveModel(n *Network, dir, name string) error {
	return net.SaveModel(n, dir, name)
}

func LoadModel(dir, name string) (*Network, error) {
	return net.LoadModel(dir, name)
}
