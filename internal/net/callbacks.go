package net

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Callback observes a training run.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// Logger prints training progress every Interval epochs.
type Logger struct {
	BaseCallback
	Interval int
	// Out defaults to os.Stdout.
	Out io.Writer
}

func (c Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.Interval <= 0 || epoch%c.Interval != 0 {
		return
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Epoch %d: loss = %.6f\n", epoch, loss)
}

// ModelCheckpoint saves the model after every epoch that improves on the best
// loss seen so far.
type ModelCheckpoint struct {
	BaseCallback
	Filename string
	// Out receives one line per save or failure; nil discards them.
	Out io.Writer
	// Err holds the last save failure.
	Err error

	bestLoss float64
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		bestLoss: math.MaxFloat64,
	}
}

func (c *ModelCheckpoint) OnEpochEnd(epoch int, loss float64, n *Network) {
	if loss >= c.bestLoss {
		return
	}
	c.bestLoss = loss
	if err := n.Save(c.Filename); err != nil {
		c.Err = err
		c.printf("Error saving checkpoint: %v\n", err)
		return
	}
	c.printf("Checkpoint saved: loss %.6f is new best\n", loss)
}

func (c *ModelCheckpoint) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

// LossHistory records the loss of every epoch.
type LossHistory struct {
	BaseCallback
	Losses []float64
}

func (c *LossHistory) OnTrainBegin(n *Network) {
	c.Losses = c.Losses[:0]
}

func (c *LossHistory) OnEpochEnd(epoch int, loss float64, n *Network) {
	c.Losses = append(c.Losses, loss)
}
