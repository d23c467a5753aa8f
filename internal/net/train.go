package net

import (
	"github.com/pkg/errors"
)

// Train runs epochs passes of online gradient descent over the samples in the
// order given: each sample is fed forward and immediately backpropagated, so
// the next sample sees the updated weights.
//
// Every sample is validated before any weight changes. Callbacks observe the
// run and receive the mean loss metric of each epoch; they cannot stop it.
func (n *Network) Train(inputs, targets [][]float64, epochs int, learningRate float64, callbacks ...Callback) error {
	if len(inputs) != len(targets) {
		return errors.Errorf("net: train: %d inputs but %d targets", len(inputs), len(targets))
	}
	for i := range inputs {
		if len(inputs[i]) != len(n.input) {
			return errors.Wrapf(&InvalidInputSizeError{Op: "train", Got: len(inputs[i]), Want: len(n.input)}, "sample %d input", i)
		}
		if len(targets[i]) != len(n.output) {
			return errors.Wrapf(&InvalidInputSizeError{Op: "train", Got: len(targets[i]), Want: len(n.output)}, "sample %d target", i)
		}
	}

	for _, c := range callbacks {
		c.OnTrainBegin(n)
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for _, c := range callbacks {
			c.OnEpochBegin(epoch, n)
		}

		var total float64
		for i := range inputs {
			out, err := n.Feedforward(inputs[i])
			if err != nil {
				return err
			}
			total += n.loss.Forward(out, targets[i])
			if err := n.Backward(targets[i], learningRate); err != nil {
				return err
			}
		}

		var epochLoss float64
		if len(inputs) > 0 {
			epochLoss = total / float64(len(inputs))
		}
		for _, c := range callbacks {
			c.OnEpochEnd(epoch, epochLoss, n)
		}
	}

	for _, c := range callbacks {
		c.OnTrainEnd(n)
	}
	return nil
}

// Evaluate returns the mean loss metric over the samples without changing
// any weight.
func (n *Network) Evaluate(inputs, targets [][]float64) (float64, error) {
	if len(inputs) != len(targets) {
		return 0, errors.Errorf("net: evaluate: %d inputs but %d targets", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	var total float64
	for i := range inputs {
		out, err := n.Feedforward(inputs[i])
		if err != nil {
			return 0, err
		}
		if len(targets[i]) != len(n.output) {
			return 0, &InvalidInputSizeError{Op: "evaluate", Got: len(targets[i]), Want: len(n.output)}
		}
		total += n.loss.Forward(out, targets[i])
	}
	return total / float64(len(inputs)), nil
}
