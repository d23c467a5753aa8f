// Package config loads the settings shared by the letter model commands.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
	"github.com/FlavioCFOliveira/neurograph/internal/glyph"
	"github.com/FlavioCFOliveira/neurograph/internal/loss"
	"github.com/FlavioCFOliveira/neurograph/internal/net"
)

// Config holds the letter model setup.
type Config struct {
	Network  Network  `yaml:"network"`
	Training Training `yaml:"training"`
	Model    Model    `yaml:"model"`
	Dataset  string   `yaml:"dataset"`
	// Threshold is the lowest output accepted as a letter.
	Threshold float64 `yaml:"threshold"`
}

// Network describes the topology of a new model.
type Network struct {
	Input      int    `yaml:"input"`
	Hidden     int    `yaml:"hidden"`
	Output     int    `yaml:"output"`
	Activation string `yaml:"activation"`
}

// Training holds the training run parameters.
type Training struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	// Seed fixes the initial weights of a new model; 0 draws them at random.
	Seed        uint64 `yaml:"seed"`
	LogInterval int    `yaml:"log_interval"`
	// Loss names the metric reported per epoch: mse, sse or crossentropy.
	Loss string `yaml:"loss"`
}

// Model locates the model file as Dir/Name.json.
type Model struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// Default returns the letter identifier setup.
func Default() Config {
	return Config{
		Network: Network{
			Input:      glyph.Size,
			Hidden:     300,
			Output:     len(glyph.Alphabet),
			Activation: activations.Sigmoid.String(),
		},
		Training: Training{
			Epochs:       30,
			LearningRate: 0.1,
			LogInterval:  1,
			Loss:         "mse",
		},
		Model: Model{
			Dir:  net.DefaultModelsDir,
			Name: "letter_identifier_model",
		},
		Dataset:   "letter_identifier/training_data.json",
		Threshold: 0.5,
	}
}

// Load reads a YAML file over the defaults. An empty filename returns the
// defaults.
func Load(filename string) (Config, error) {
	if filename == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: failed to read file")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", filename)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "failed to decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a usable model and run.
func (c Config) Validate() error {
	if c.Network.Input <= 0 || c.Network.Hidden <= 0 || c.Network.Output <= 0 {
		return errors.Errorf("invalid topology %d-%d-%d", c.Network.Input, c.Network.Hidden, c.Network.Output)
	}
	if _, err := activations.Parse(c.Network.Activation); err != nil {
		return err
	}
	if c.Training.Epochs < 0 {
		return errors.Errorf("epochs must not be negative, got %d", c.Training.Epochs)
	}
	if c.Training.LearningRate <= 0 {
		return errors.Errorf("learning rate must be positive, got %g", c.Training.LearningRate)
	}
	if _, ok := loss.ByName(c.Training.Loss); !ok {
		return errors.Errorf("unknown loss %q", c.Training.Loss)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.Errorf("threshold must be within [0, 1], got %g", c.Threshold)
	}
	if c.Model.Name == "" {
		return errors.New("model name must not be empty")
	}
	return nil
}

// Kind returns the parsed activation kind.
func (c Config) Kind() (activations.Kind, error) {
	return activations.Parse(c.Network.Activation)
}

// LossMetric returns the configured epoch loss metric.
func (c Config) LossMetric() loss.Loss {
	l, ok := loss.ByName(c.Training.Loss)
	if !ok {
		return loss.MSE{}
	}
	return l
}

// ModelFile returns the path of the model file.
func (c Config) ModelFile() string {
	return net.ModelPath(c.Model.Dir, c.Model.Name+net.ModelExt)
}
