// Package net implements a three layer (input, hidden, output) densely
// connected network trained by per-sample backpropagation.
package net

import (
	"fmt"
	"io"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
	"github.com/FlavioCFOliveira/neurograph/internal/loss"
	"github.com/FlavioCFOliveira/neurograph/internal/node"
)

// Network is a fixed input-hidden-output graph. Its topology and activation
// kind never change after New; only weights, biases and node values do.
//
// A Network is not safe for concurrent use.
type Network struct {
	graph  node.Graph
	input  []int
	hidden []int
	output []int

	kind       activations.Kind
	derivative activations.Func
	loss       loss.Loss

	evaluated bool
}

// ClassifyFunc turns a raw output vector into a label, or returns an error
// when the outputs do not identify one.
type ClassifyFunc func(outputs []float64) (string, error)

type options struct {
	src  rand.Source
	loss loss.Loss
}

// Option configures New.
type Option func(*options)

// WithSource draws the initial weights from src.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithSeed draws the initial weights from a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed))
}

// WithLoss sets the metric reported to training callbacks. Defaults to MSE.
func WithLoss(l loss.Loss) Option {
	return func(o *options) { o.loss = l }
}

// New builds a network with the given layer sizes, fully connects input to
// hidden and hidden to output with standard normal weights, and zero biases.
//
// It panics with *activations.UnrecognizedKindError for an unsupported kind
// and on a non-positive layer size.
func New(inputSize, hiddenSize, outputSize int, kind activations.Kind, opts ...Option) *Network {
	_, derivative := activations.Functions(kind)
	if inputSize <= 0 || hiddenSize <= 0 || outputSize <= 0 {
		panic(fmt.Sprintf("net: invalid topology %d-%d-%d", inputSize, hiddenSize, outputSize))
	}

	o := options{loss: loss.MSE{}}
	for _, opt := range opts {
		opt(&o)
	}

	n := &Network{
		kind:       kind,
		derivative: derivative,
		loss:       o.loss,
	}
	n.graph.Nodes = make([]node.Node, 0, inputSize+hiddenSize+outputSize)
	n.graph.Conns = make([]node.Connection, 0, inputSize*hiddenSize+hiddenSize*outputSize)

	n.input = n.graph.AddLayer(node.Input, kind, inputSize)
	n.hidden = n.graph.AddLayer(node.Hidden, kind, hiddenSize)
	n.output = n.graph.AddLayer(node.Output, kind, outputSize)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: o.src}
	n.graph.Connect(n.input, n.hidden, normal.Rand)
	n.graph.Connect(n.hidden, n.output, normal.Rand)

	return n
}

// SetLoss replaces the metric reported to training callbacks.
func (n *Network) SetLoss(l loss.Loss) { n.loss = l }

// InputSize returns the number of input nodes.
func (n *Network) InputSize() int { return len(n.input) }

// HiddenSize returns the number of hidden nodes.
func (n *Network) HiddenSize() int { return len(n.hidden) }

// OutputSize returns the number of output nodes.
func (n *Network) OutputSize() int { return len(n.output) }

// Kind returns the activation kind shared by every node.
func (n *Network) Kind() activations.Kind { return n.kind }

// Feedforward evaluates the network on inputs and returns the activated
// outputs in output-node order.
func (n *Network) Feedforward(inputs []float64) ([]float64, error) {
	if len(inputs) != len(n.input) {
		return nil, &InvalidInputSizeError{Op: "feedforward", Got: len(inputs), Want: len(n.input)}
	}

	for i, idx := range n.input {
		n.graph.SetValue(idx, inputs[i])
	}
	// The output layer reads hidden outputs, so hidden must complete first.
	for _, idx := range n.hidden {
		n.graph.CalculateValue(idx)
	}
	for _, idx := range n.output {
		n.graph.CalculateValue(idx)
	}
	n.evaluated = true

	return n.outputs(), nil
}

func (n *Network) outputs() []float64 {
	out := make([]float64, len(n.output))
	for i, idx := range n.output {
		out[i] = n.graph.Output(idx)
	}
	return out
}

// Backward applies one backpropagation step for expected against the outputs
// of the most recent Feedforward.
//
// The output layer is updated first and the hidden error is then computed
// from the already updated hidden-to-output weights. Existing models were
// trained with this ordering, so it must not be changed to the textbook one.
func (n *Network) Backward(expected []float64, learningRate float64) error {
	if len(expected) != len(n.output) {
		return &InvalidInputSizeError{Op: "backward", Got: len(expected), Want: len(n.output)}
	}
	if !n.evaluated {
		return ErrNotEvaluated
	}

	g := &n.graph
	delta := make([]float64, len(n.output))
	for i, idx := range n.output {
		out := g.Output(idx)
		delta[i] = (expected[i] - out) * n.derivative(out)
	}
	n.update(n.output, delta, learningRate)

	hiddenDelta := make([]float64, len(n.hidden))
	for h, idx := range n.hidden {
		var hiddenErr float64
		// Out[j] targets output node j.
		for j, c := range g.Nodes[idx].Out {
			hiddenErr += delta[j] * g.Conns[c].Weight
		}
		hiddenDelta[h] = hiddenErr * n.derivative(g.Output(idx))
	}
	n.update(n.hidden, hiddenDelta, learningRate)

	return nil
}

// update moves the bias and incoming weights of each node in layer along its delta.
func (n *Network) update(layer []int, delta []float64, learningRate float64) {
	g := &n.graph
	for i, idx := range layer {
		nd := &g.Nodes[idx]
		nd.Bias += learningRate * delta[i]
		for _, c := range nd.In {
			conn := &g.Conns[c]
			conn.Weight += learningRate * delta[i] * g.Output(conn.Src)
		}
	}
}

// Predict runs a feedforward pass and hands the outputs to classify.
func (n *Network) Predict(inputs []float64, classify ClassifyFunc) (string, error) {
	out, err := n.Feedforward(inputs)
	if err != nil {
		return "", err
	}
	return classify(out)
}

// Summary prints the topology and parameter count of the network.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Network")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	layers := []struct {
		name   string
		size   int
		params int
	}{
		{"input", len(n.input), 0},
		{"hidden_" + n.kind.String(), len(n.hidden), len(n.input)*len(n.hidden) + len(n.hidden)},
		{"output_" + n.kind.String(), len(n.output), len(n.hidden)*len(n.output) + len(n.output)},
	}

	total := 0
	for _, l := range layers {
		total += l.params
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", l.name, fmt.Sprintf("(%d)", l.size), l.params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", total)
	fmt.Fprintln(w, "_________________________________________________________________")
}
