package net

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
)

var xorInputs = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
var xorTargets = [][]float64{{0}, {1}, {1}, {0}}

// TestNetworkForward tests forward pass through network.
func TestNetworkForward(t *testing.T) {
	network := New(2, 3, 1, activations.Sigmoid, WithSeed(1))

	output, err := network.Feedforward([]float64{1.0, 2.0})
	require.NoError(t, err)
	require.Len(t, output, 1)
	assert.True(t, output[0] > 0 && output[0] < 1, "sigmoid output %v out of range", output[0])
}

// TestFeedforwardInvalidInputSize tests every mismatching length fails and
// the matching length does not.
func TestFeedforwardInvalidInputSize(t *testing.T) {
	network := New(4, 3, 2, activations.Tanh, WithSeed(2))

	for size := 0; size <= 8; size++ {
		_, err := network.Feedforward(make([]float64, size))
		if size == 4 {
			assert.NoError(t, err)
			continue
		}
		var sizeErr *InvalidInputSizeError
		require.True(t, errors.As(err, &sizeErr), "size %d: %v", size, err)
		assert.Equal(t, "feedforward", sizeErr.Op)
		assert.Equal(t, size, sizeErr.Got)
		assert.Equal(t, 4, sizeErr.Want)
	}
}

func TestBackwardInvalidExpectedSize(t *testing.T) {
	network := New(2, 2, 3, activations.Sigmoid, WithSeed(3))
	_, err := network.Feedforward([]float64{1, 0})
	require.NoError(t, err)

	for _, size := range []int{0, 1, 2, 4} {
		err := network.Backward(make([]float64, size), 0.1)
		var sizeErr *InvalidInputSizeError
		require.True(t, errors.As(err, &sizeErr), "size %d", size)
		assert.Equal(t, "backward", sizeErr.Op)
	}
	assert.NoError(t, network.Backward(make([]float64, 3), 0.1))
}

func TestBackwardBeforeFeedforward(t *testing.T) {
	network := New(2, 2, 1, activations.Sigmoid, WithSeed(4))
	assert.ErrorIs(t, network.Backward([]float64{1}, 0.1), ErrNotEvaluated)

	_, err := network.Feedforward([]float64{0, 1})
	require.NoError(t, err)
	require.NoError(t, network.Backward([]float64{1}, 0.1))

	// Replacing the parameters invalidates the last forward pass.
	require.NoError(t, network.SetParams(network.Params()))
	assert.ErrorIs(t, network.Backward([]float64{1}, 0.1), ErrNotEvaluated)
}

// TestIdentityOutputIsWeightedSum tests that with None every node output is
// exactly bias + sum(weight * source output).
func TestIdentityOutputIsWeightedSum(t *testing.T) {
	network := New(3, 4, 2, activations.None, WithSeed(5))
	p := network.Params()
	for h := range p.HiddenBiases {
		p.HiddenBiases[h] = 0.1 * float64(h+1)
	}
	for o := range p.OutputBiases {
		p.OutputBiases[o] = -0.5 * float64(o+1)
	}
	p.OutputWeights = nil
	require.NoError(t, network.SetParams(p))

	inputs := []float64{0.5, -1.25, 2}
	hidden := make([]float64, p.HiddenSize)
	for h := range hidden {
		var sum float64
		for i := range inputs {
			sum += inputs[i] * p.InputWeights[i][h]
		}
		hidden[h] = sum + p.HiddenBiases[h]
	}
	want := make([]float64, p.OutputSize)
	for o := range want {
		var sum float64
		for h := range hidden {
			sum += hidden[h] * p.HiddenWeights[h][o]
		}
		want[o] = sum + p.OutputBiases[o]
	}

	got, err := network.Feedforward(inputs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for h, idx := range network.hidden {
		assert.Equal(t, hidden[h], network.graph.Output(idx))
	}
}

// TestDeterminism tests that equal seeds give bit-identical networks and outputs.
func TestDeterminism(t *testing.T) {
	a := New(5, 6, 3, activations.Sigmoid, WithSeed(42))
	b := New(5, 6, 3, activations.Sigmoid, WithSeed(42))
	c := New(5, 6, 3, activations.Sigmoid, WithSeed(43))

	assert.Equal(t, a.Params(), b.Params())
	assert.NotEqual(t, a.Params(), c.Params())

	input := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	outA, err := a.Feedforward(input)
	require.NoError(t, err)
	outB, err := b.Feedforward(input)
	require.NoError(t, err)
	assert.Equal(t, outA, outB)

	// Explicitly copied parameters behave the same as a shared seed.
	require.NoError(t, c.SetParams(a.Params()))
	outC, err := c.Feedforward(input)
	require.NoError(t, err)
	assert.Equal(t, outA, outC)
}

// TestInitialWeightsAreStandardNormal tests the distribution of the initial draw.
func TestInitialWeightsAreStandardNormal(t *testing.T) {
	network := New(100, 100, 1, activations.Sigmoid, WithSeed(7))
	p := network.Params()

	var weights []float64
	for _, row := range p.InputWeights {
		weights = append(weights, row...)
	}
	mean, variance := stat.MeanVariance(weights, nil)
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, variance, 0.1)

	for _, b := range p.HiddenBiases {
		assert.Zero(t, b)
	}
	for _, b := range p.OutputBiases {
		assert.Zero(t, b)
	}
}

func TestNewPanics(t *testing.T) {
	assert.PanicsWithError(t, `unrecognized activation function type "Kind(9)"`, func() {
		New(2, 2, 1, activations.Kind(9))
	})
	assert.Panics(t, func() { New(0, 2, 1, activations.Sigmoid) })
	assert.Panics(t, func() { New(2, -1, 1, activations.Sigmoid) })
}

func TestTopologyAccessors(t *testing.T) {
	network := New(180, 30, 26, activations.ReLU, WithSeed(1))
	assert.Equal(t, 180, network.InputSize())
	assert.Equal(t, 30, network.HiddenSize())
	assert.Equal(t, 26, network.OutputSize())
	assert.Equal(t, activations.ReLU, network.Kind())
	assert.Len(t, network.graph.Conns, 180*30+30*26)
}

// TestIdentityBackwardStep pins one update by hand. It fixes both the
// pass-through derivative of None and the hidden error being read from the
// already updated hidden-to-output weight.
func TestIdentityBackwardStep(t *testing.T) {
	network := New(1, 1, 1, activations.None)
	require.NoError(t, network.SetParams(Params{
		InputSize: 1, HiddenSize: 1, OutputSize: 1,
		Activation:    "NONE",
		InputWeights:  [][]float64{{0.5}},
		HiddenWeights: [][]float64{{3}},
		HiddenBiases:  []float64{0},
		OutputBiases:  []float64{0},
	}))

	out, err := network.Feedforward([]float64{1})
	require.NoError(t, err)
	require.Equal(t, []float64{1.5}, out)
	require.NoError(t, network.Backward([]float64{3}, 0.1))

	// delta_o = (3 - 1.5) * 1.5 = 2.25; a constant derivative would give 1.5.
	// w_ho = 3 + 0.1*2.25*0.5 = 3.1125
	// hidden error = 2.25 * 3.1125 (updated weight, not 3)
	// delta_h = 7.003125 * 0.5 = 3.5015625
	p := network.Params()
	assert.InDelta(t, 0.225, p.OutputBiases[0], 1e-12)
	assert.InDelta(t, 3.1125, p.HiddenWeights[0][0], 1e-12)
	assert.InDelta(t, 0.35015625, p.HiddenBiases[0], 1e-12)
	assert.InDelta(t, 0.85015625, p.InputWeights[0][0], 1e-12)
}

// referenceBackward applies one update on plain slices using the same
// ordering as Backward. When textbook is set the hidden error uses the
// weights from before the output update instead.
func referenceBackward(p Params, kind activations.Kind, x, y []float64, lr float64, textbook bool) Params {
	h := make([]float64, p.HiddenSize)
	for j := range h {
		s := 0.0
		for i := range x {
			s += x[i] * p.InputWeights[i][j]
		}
		h[j] = kind.Activate(s + p.HiddenBiases[j])
	}
	o := make([]float64, p.OutputSize)
	for k := range o {
		s := 0.0
		for j := range h {
			s += h[j] * p.HiddenWeights[j][k]
		}
		o[k] = kind.Activate(s + p.OutputBiases[k])
	}

	old := make([][]float64, len(p.HiddenWeights))
	for j := range old {
		old[j] = append([]float64(nil), p.HiddenWeights[j]...)
	}

	delta := make([]float64, len(o))
	for k := range o {
		delta[k] = (y[k] - o[k]) * kind.Derivative(o[k])
		p.OutputBiases[k] += lr * delta[k]
		for j := range h {
			p.HiddenWeights[j][k] += lr * delta[k] * h[j]
		}
	}
	read := p.HiddenWeights
	if textbook {
		read = old
	}
	for j := range h {
		e := 0.0
		for k := range delta {
			e += delta[k] * read[j][k]
		}
		d := e * kind.Derivative(h[j])
		for i := range x {
			p.InputWeights[i][j] += lr * d * x[i]
		}
		p.HiddenBiases[j] += lr * d
	}
	p.OutputWeights = nil
	return p
}

// TestBackwardUsesUpdatedOutputWeights tests the post-update ordering against
// a reference on plain slices.
func TestBackwardUsesUpdatedOutputWeights(t *testing.T) {
	for _, kind := range []activations.Kind{activations.Sigmoid, activations.Tanh, activations.None} {
		t.Run(kind.String(), func(t *testing.T) {
			network := New(3, 4, 2, kind, WithSeed(11))
			x := []float64{0.2, -0.7, 1}
			y := []float64{0.9, 0.1}
			const lr = 0.3

			start := network.Params()
			want := referenceBackward(network.Params(), kind, x, y, lr, false)
			textbook := referenceBackward(start, kind, x, y, lr, true)

			_, err := network.Feedforward(x)
			require.NoError(t, err)
			require.NoError(t, network.Backward(y, lr))
			got := network.Params()
			got.OutputWeights = nil

			assertParamsInDelta(t, want, got, 1e-12)
			assert.NotEqual(t, textbook.InputWeights, got.InputWeights)
		})
	}
}

func assertParamsInDelta(t *testing.T, want, got Params, delta float64) {
	t.Helper()
	for i := range want.InputWeights {
		assert.InDeltaSlice(t, want.InputWeights[i], got.InputWeights[i], delta)
	}
	for j := range want.HiddenWeights {
		assert.InDeltaSlice(t, want.HiddenWeights[j], got.HiddenWeights[j], delta)
	}
	assert.InDeltaSlice(t, want.HiddenBiases, got.HiddenBiases, delta)
	assert.InDeltaSlice(t, want.OutputBiases, got.OutputBiases, delta)
}

// TestInputLayerHasNoTrainableState tests that backward never gives input
// nodes a bias and leaves their injected values alone.
func TestInputLayerHasNoTrainableState(t *testing.T) {
	network := New(3, 5, 2, activations.Sigmoid, WithSeed(13))
	x := []float64{1, 0.5, -1}

	for step := 0; step < 50; step++ {
		_, err := network.Feedforward(x)
		require.NoError(t, err)
		require.NoError(t, network.Backward([]float64{1, 0}, 0.5))
	}

	for i, idx := range network.input {
		nd := network.graph.Nodes[idx]
		assert.Zero(t, nd.Bias)
		assert.Empty(t, nd.In)
		assert.Len(t, nd.Out, 5)
		assert.Equal(t, x[i], network.graph.Output(idx))
	}
}

// TestBackwardReducesError tests that one small step moves the output toward
// the target. With a single output unit the first order change always has
// the sign of the error.
func TestBackwardReducesError(t *testing.T) {
	for _, kind := range []activations.Kind{activations.Sigmoid, activations.Tanh} {
		for seed := uint64(1); seed <= 10; seed++ {
			network := New(3, 4, 1, kind, WithSeed(seed))
			x := []float64{0.3, -0.6, 0.9}

			for _, target := range []float64{-0.8, 0.05, 0.95} {
				before, err := network.Feedforward(x)
				require.NoError(t, err)
				require.NoError(t, network.Backward([]float64{target}, 0.01))
				after, err := network.Feedforward(x)
				require.NoError(t, err)

				assert.Less(t, math.Abs(target-after[0]), math.Abs(target-before[0]),
					"%s seed %d target %v", kind, seed, target)
			}
		}
	}
}

func TestPredictUsesCallerFunction(t *testing.T) {
	network := New(2, 2, 3, activations.Sigmoid, WithSeed(17))

	var seen []float64
	label, err := network.Predict([]float64{1, 0}, func(out []float64) (string, error) {
		seen = out
		return "B", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "B", label)
	assert.Len(t, seen, 3)

	reject := errors.New("no label")
	_, err = network.Predict([]float64{1, 0}, func([]float64) (string, error) { return "", reject })
	assert.ErrorIs(t, err, reject)

	_, err = network.Predict([]float64{1}, func([]float64) (string, error) { return "A", nil })
	var sizeErr *InvalidInputSizeError
	assert.True(t, errors.As(err, &sizeErr))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	New(2, 3, 1, activations.Tanh, WithSeed(1)).Summary(&buf)

	out := buf.String()
	assert.Contains(t, out, "hidden_TANH")
	assert.Contains(t, out, "Total params: 13")
}
