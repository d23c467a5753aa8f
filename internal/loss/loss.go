// Package loss provides the error metrics reported while training.
//
// The engine's update rule is fixed, so these are measurements only: they are
// computed from the forward pass output and never feed back into the weights.
package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Loss measures the distance between a prediction and its target.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}
	if len(yPred) == 0 {
		return 0
	}
	return SumSquared{}.Forward(yPred, yTrue) / float64(len(yPred))
}

// SumSquared is the unscaled squared error: sum((y_pred - y_true)^2)
type SumSquared struct{}

// Forward computes the squared euclidean distance between yPred and yTrue.
func (s SumSquared) Forward(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("SumSquared: prediction and target must have same length")
	}
	d := floats.Distance(yPred, yTrue, 2)
	return d * d
}

// CrossEntropy loss for one-hot classification targets.
type CrossEntropy struct{}

// Forward computes cross entropy: -sum(y_true * log(y_pred + eps)) / n
func (c CrossEntropy) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("CrossEntropy: prediction and target must have same length")
	}
	if n == 0 {
		return 0
	}

	const eps = 1e-10
	var sum float64
	for i := 0; i < n; i++ {
		// Clip prediction to avoid log(0)
		pred := yPred[i]
		if pred < eps {
			pred = eps
		}
		sum -= yTrue[i] * math.Log(pred)
	}
	return sum / float64(n)
}

// ByName returns the metric registered under name ("mse", "sse" or
// "crossentropy") and whether it exists.
func ByName(name string) (Loss, bool) {
	switch name {
	case "", "mse":
		return MSE{}, true
	case "sse":
		return SumSquared{}, true
	case "crossentropy":
		return CrossEntropy{}, true
	}
	return nil, false
}
