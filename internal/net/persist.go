package net

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultModelsDir is the conventional directory for saved models, relative
// to the working directory.
const DefaultModelsDir = "models"

// ModelExt is appended to the model name by LoadModel.
const ModelExt = ".json"

// Save writes the network to filename as JSON, replacing any existing file.
func (n *Network) Save(filename string) error {
	data, err := n.marshal()
	if err != nil {
		return &ModelSaveError{Path: filename, Err: err}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return &ModelSaveError{Path: filename, Err: errors.Wrap(err, "failed to write file")}
	}
	return nil
}

// Encode writes the network to w as JSON.
func (n *Network) Encode(w io.Writer) error {
	data, err := n.marshal()
	if err != nil {
		return &ModelSaveError{Err: err}
	}
	if _, err := w.Write(data); err != nil {
		return &ModelSaveError{Err: errors.Wrap(err, "failed to write model")}
	}
	return nil
}

func (n *Network) marshal() ([]byte, error) {
	data, err := json.Marshal(n.Params())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode model")
	}
	return data, nil
}

// Load reads a model file written by Save and builds a network of the stored
// shape and activation kind. On error no network is returned.
func Load(filename string) (*Network, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ModelLoadError{Path: filename, Err: errors.Wrap(err, "failed to read file")}
	}
	n, err := build(data)
	if err != nil {
		return nil, &ModelLoadError{Path: filename, Err: err}
	}
	return n, nil
}

// Decode reads a model from r and builds a network from it.
func Decode(r io.Reader) (*Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ModelLoadError{Err: errors.Wrap(err, "failed to read model")}
	}
	n, err := build(data)
	if err != nil {
		return nil, &ModelLoadError{Err: err}
	}
	return n, nil
}

// Restore overwrites the weights and biases of n with those stored in
// filename. The stored topology and activation kind must match n; on error n
// is left untouched.
func (n *Network) Restore(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return &ModelLoadError{Path: filename, Err: errors.Wrap(err, "failed to read file")}
	}
	p, err := parse(data)
	if err != nil {
		return &ModelLoadError{Path: filename, Err: err}
	}
	if err := n.SetParams(p); err != nil {
		return &ModelLoadError{Path: filename, Err: err}
	}
	return nil
}

func parse(data []byte) (Params, error) {
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, errors.Wrap(err, "failed to decode model")
	}
	return p, nil
}

func build(data []byte) (*Network, error) {
	p, err := parse(data)
	if err != nil {
		return nil, err
	}
	kind, err := p.validate()
	if err != nil {
		return nil, err
	}
	n := New(p.InputSize, p.HiddenSize, p.OutputSize, kind)
	if err := n.SetParams(p); err != nil {
		return nil, err
	}
	return n, nil
}

// ModelPath returns the file SaveModel writes for name.
func ModelPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// SaveModel saves n as dir/name, creating dir if needed.
func SaveModel(n *Network, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ModelSaveError{Path: dir, Err: errors.Wrap(err, "failed to create models directory")}
	}
	return n.Save(ModelPath(dir, name))
}

// LoadModel loads dir/name with ModelExt appended.
func LoadModel(dir, name string) (*Network, error) {
	return Load(ModelPath(dir, name+ModelExt))
}
