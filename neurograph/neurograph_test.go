package neurograph_test

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/neurograph/neurograph"
)

func TestFacadeRoundTrip(t *testing.T) {
	network := neurograph.New(2, 4, 1, neurograph.Sigmoid, neurograph.WithSeed(2), neurograph.WithLoss(neurograph.SumSquared))
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{0}, {1}, {1}, {0}}
	require.NoError(t, network.Train(inputs, targets, 20, 0.1))

	dir := t.TempDir()
	require.NoError(t, neurograph.SaveModel(network, dir, "xor.json"))
	loaded, err := neurograph.LoadModel(dir, "xor")
	require.NoError(t, err)
	assert.Equal(t, network.Params(), loaded.Params())

	_, err = neurograph.Load(filepath.Join(dir, "missing.json"))
	var loadErr *neurograph.ModelLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestFacadeErrors(t *testing.T) {
	network := neurograph.New(2, 2, 1, neurograph.Tanh)
	assert.True(t, errors.Is(network.Backward([]float64{1}, 0.1), neurograph.ErrNotEvaluated))

	_, err := network.Feedforward([]float64{1})
	var sizeErr *neurograph.InvalidInputSizeError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, 1, sizeErr.Got)
	assert.Equal(t, 2, sizeErr.Want)

	kind, err := neurograph.ParseKind("relu")
	require.NoError(t, err)
	assert.Equal(t, neurograph.ReLU, kind)
}

func TestFacadePredict(t *testing.T) {
	network := neurograph.New(3, 2, 26, neurograph.Sigmoid, neurograph.WithSeed(1))
	letter, err := network.Predict([]float64{1, 0, 1}, func(outputs []float64) (string, error) {
		return "A", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "A", letter)

	_, err = network.Predict([]float64{1, 0, 1}, neurograph.Letters(1.1))
	assert.True(t, errors.Is(err, neurograph.ErrNoLetter))
}
