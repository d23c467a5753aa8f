package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
)

// Params is a full copy of a network's topology, activation kind, weights and
// biases. Its JSON form is the persisted model format.
type Params struct {
	InputSize  int    `json:"input_size"`
	HiddenSize int    `json:"hidden_size"`
	OutputSize int    `json:"output_size"`
	Activation string `json:"activation_function_type"`

	// InputWeights[i][h] is the weight from input i to hidden h.
	InputWeights [][]float64 `json:"input_nodes_weights"`
	// HiddenWeights[h][o] is the weight from hidden h to output o.
	HiddenWeights [][]float64 `json:"hidden_nodes_weights"`
	HiddenBiases  []float64   `json:"hidden_nodes_biases"`
	// OutputWeights[o][h] repeats HiddenWeights transposed. Older readers
	// require it; it is optional on load.
	OutputWeights [][]float64 `json:"output_nodes_weights,omitempty"`
	OutputBiases  []float64   `json:"output_nodes_biases"`
}

// Params returns a copy of every weight and bias.
func (n *Network) Params() Params {
	g := &n.graph
	p := Params{
		InputSize:     len(n.input),
		HiddenSize:    len(n.hidden),
		OutputSize:    len(n.output),
		Activation:    n.kind.String(),
		InputWeights:  make([][]float64, len(n.input)),
		HiddenWeights: make([][]float64, len(n.hidden)),
		HiddenBiases:  make([]float64, len(n.hidden)),
		OutputWeights: make([][]float64, len(n.output)),
		OutputBiases:  make([]float64, len(n.output)),
	}

	for i, idx := range n.input {
		p.InputWeights[i] = n.weights(g.Nodes[idx].Out)
	}
	for h, idx := range n.hidden {
		p.HiddenWeights[h] = n.weights(g.Nodes[idx].Out)
		p.HiddenBiases[h] = g.Nodes[idx].Bias
	}
	for o, idx := range n.output {
		p.OutputWeights[o] = n.weights(g.Nodes[idx].In)
		p.OutputBiases[o] = g.Nodes[idx].Bias
	}
	return p
}

func (n *Network) weights(conns []int) []float64 {
	w := make([]float64, len(conns))
	for j, c := range conns {
		w[j] = n.graph.Conns[c].Weight
	}
	return w
}

// SetParams overwrites every weight and bias from p. p must describe the
// same topology and activation kind as n. Nothing is written unless p is
// fully valid.
func (n *Network) SetParams(p Params) error {
	kind, err := p.validate()
	if err != nil {
		return err
	}
	if p.InputSize != len(n.input) || p.HiddenSize != len(n.hidden) || p.OutputSize != len(n.output) {
		return errors.Errorf("topology %d-%d-%d does not match network %d-%d-%d",
			p.InputSize, p.HiddenSize, p.OutputSize, len(n.input), len(n.hidden), len(n.output))
	}
	if kind != n.kind {
		return errors.Errorf("activation %s does not match network activation %s", kind, n.kind)
	}

	g := &n.graph
	for i, idx := range n.input {
		n.setWeights(g.Nodes[idx].Out, p.InputWeights[i])
	}
	for h, idx := range n.hidden {
		n.setWeights(g.Nodes[idx].Out, p.HiddenWeights[h])
		g.Nodes[idx].Bias = p.HiddenBiases[h]
	}
	for o, idx := range n.output {
		if p.OutputWeights != nil {
			n.setWeights(g.Nodes[idx].In, p.OutputWeights[o])
		}
		g.Nodes[idx].Bias = p.OutputBiases[o]
	}
	n.evaluated = false
	return nil
}

func (n *Network) setWeights(conns []int, w []float64) {
	for j, c := range conns {
		n.graph.Conns[c].Weight = w[j]
	}
}

// validate checks the declared sizes and activation against every array.
func (p *Params) validate() (activations.Kind, error) {
	if p.InputSize <= 0 || p.HiddenSize <= 0 || p.OutputSize <= 0 {
		return 0, errors.Errorf("invalid topology %d-%d-%d", p.InputSize, p.HiddenSize, p.OutputSize)
	}
	kind, err := activations.Parse(p.Activation)
	if err != nil {
		return 0, err
	}
	if err := checkMatrix("input_nodes_weights", p.InputWeights, p.InputSize, p.HiddenSize); err != nil {
		return 0, err
	}
	if err := checkMatrix("hidden_nodes_weights", p.HiddenWeights, p.HiddenSize, p.OutputSize); err != nil {
		return 0, err
	}
	if err := checkVector("hidden_nodes_biases", p.HiddenBiases, p.HiddenSize); err != nil {
		return 0, err
	}
	if err := checkVector("output_nodes_biases", p.OutputBiases, p.OutputSize); err != nil {
		return 0, err
	}
	if p.OutputWeights != nil {
		if err := checkMatrix("output_nodes_weights", p.OutputWeights, p.OutputSize, p.HiddenSize); err != nil {
			return 0, err
		}
	}
	return kind, nil
}

func checkVector(name string, v []float64, size int) error {
	if len(v) != size {
		return errors.Errorf("%s: got %d values, want %d", name, len(v), size)
	}
	return nil
}

func checkMatrix(name string, m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return errors.Errorf("%s: got %d rows, want %d", name, len(m), rows)
	}
	for i, row := range m {
		if len(row) != cols {
			return errors.Errorf("%s[%d]: got %d values, want %d", name, i, len(row), cols)
		}
	}
	return nil
}
