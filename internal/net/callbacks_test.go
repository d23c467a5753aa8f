package net

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
)

// recorder records the callback sequence.
type recorder struct {
	events []string
}

func (r *recorder) OnTrainBegin(n *Network)            { r.events = append(r.events, "begin") }
func (r *recorder) OnTrainEnd(n *Network)              { r.events = append(r.events, "end") }
func (r *recorder) OnEpochBegin(epoch int, n *Network) { r.events = append(r.events, "epoch") }
func (r *recorder) OnEpochEnd(epoch int, loss float64, n *Network) {
	r.events = append(r.events, "done")
}

func TestCallbackOrder(t *testing.T) {
	network := New(2, 3, 1, activations.Sigmoid, WithSeed(1))
	rec := &recorder{}
	require.NoError(t, network.Train(xorInputs, xorTargets, 2, 0.1, rec))
	assert.Equal(t, []string{"begin", "epoch", "done", "epoch", "done", "end"}, rec.events)
}

func TestLossHistoryDecreases(t *testing.T) {
	network := New(2, 8, 1, activations.Sigmoid, WithSeed(1))
	history := &LossHistory{}
	require.NoError(t, network.Train(xorInputs, xorTargets, 3000, 0.1, history))

	require.Len(t, history.Losses, 3000)
	assert.Less(t, history.Losses[2999], history.Losses[0])
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	network := New(2, 3, 1, activations.Sigmoid, WithSeed(1))
	require.NoError(t, network.Train(xorInputs, xorTargets, 5, 0.1, Logger{Interval: 2, Out: &buf}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Epoch 0: loss = "))
	assert.True(t, strings.HasPrefix(lines[2], "Epoch 4: loss = "))

	buf.Reset()
	Logger{Out: &buf}.OnEpochEnd(0, 1, network)
	assert.Empty(t, buf.String())
}

func TestModelCheckpoint(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "best.json")
	var out bytes.Buffer
	checkpoint := NewModelCheckpoint(filename)
	checkpoint.Out = &out
	network := New(2, 3, 1, activations.Sigmoid, WithSeed(1))

	checkpoint.OnEpochEnd(0, 0.5, network)
	require.FileExists(t, filename)
	saved := network.Params()

	// A worse epoch must not overwrite the best model.
	require.NoError(t, network.Train(xorInputs, xorTargets, 1, 0.1))
	checkpoint.OnEpochEnd(1, 0.6, network)
	loaded, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded.Params())
	assert.Equal(t, 1, strings.Count(out.String(), "Checkpoint saved"))

	bad := NewModelCheckpoint(filepath.Join(t.TempDir(), "missing", "best.json"))
	bad.OnEpochEnd(0, 0.1, network)
	assert.Error(t, bad.Err)
}

func TestCSVLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.csv")

	logger := NewCSVLogger(filename, false)
	n := &Network{}

	logger.OnTrainBegin(n)
	logger.OnEpochEnd(0, 0.5, n)
	logger.OnEpochEnd(1, 0.4, n)
	logger.OnTrainEnd(n)
	require.NoError(t, logger.Err)

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // Header + 2 epochs
	assert.Equal(t, []string{"epoch", "loss", "time_seconds"}, records[0])
	assert.Equal(t, []string{"0", "0.500000"}, records[1][:2])

	// Appending keeps the existing header and rows.
	appender := NewCSVLogger(filename, true)
	appender.OnTrainBegin(n)
	appender.OnEpochEnd(0, 0.3, n)
	appender.OnTrainEnd(n)
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}

func TestCSVLoggerOpenError(t *testing.T) {
	logger := NewCSVLogger(filepath.Join(t.TempDir(), "missing", "log.csv"), false)
	logger.OnTrainBegin(nil)
	logger.OnEpochEnd(0, 0.5, nil)
	logger.OnTrainEnd(nil)
	assert.Error(t, logger.Err)
}
