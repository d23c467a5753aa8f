// Package classify turns letter network outputs into letters.
package classify

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/neurograph/internal/glyph"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
)

// DefaultThreshold is the lowest winning output accepted as a letter.
const DefaultThreshold = 0.5

// ErrNoLetter is returned when no output reaches the threshold.
var ErrNoLetter = errors.New("classify: no letter identified")

// Letters returns a classifier that picks the letter of the highest output,
// or fails with ErrNoLetter when that output is below threshold.
func Letters(threshold float64) net.ClassifyFunc {
	return func(outputs []float64) (string, error) {
		i, err := argmax(outputs)
		if err != nil {
			return "", err
		}
		if outputs[i] < threshold {
			return "", errors.Wrapf(ErrNoLetter, "best output %.4f below %.4f", outputs[i], threshold)
		}
		return string(glyph.Alphabet[i]), nil
	}
}

// Label returns the letter of the highest value with no threshold, as used
// for one-hot training targets.
func Label(outputs []float64) (string, error) {
	i, err := argmax(outputs)
	if err != nil {
		return "", err
	}
	return string(glyph.Alphabet[i]), nil
}

// argmax returns the first index of the maximum value.
func argmax(outputs []float64) (int, error) {
	if len(outputs) == 0 {
		return 0, errors.New("classify: empty output vector")
	}
	if len(outputs) > len(glyph.Alphabet) {
		return 0, errors.Errorf("classify: %d outputs but only %d letters", len(outputs), len(glyph.Alphabet))
	}
	return floats.MaxIdx(outputs), nil
}
