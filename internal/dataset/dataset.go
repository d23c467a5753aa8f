// Package dataset loads and stores training samples.
//
// A sample pairs an input vector with its expected output vector. Samples are
// kept in file order; nothing in this package reorders them.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Dataset represents a collection of samples and labels.
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// Record is one entry of a JSON training document.
type Record struct {
	Input  []float64 `json:"input"`
	Output []float64 `json:"output"`
}

// documentKey holds the records inside a JSON training document.
const documentKey = "training_data"

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Append adds one sample at the end of the dataset.
func (d *Dataset) Append(sample, label []float64) {
	d.Samples = append(d.Samples, sample)
	d.Labels = append(d.Labels, label)
}

// Validate checks that every sample has inputSize features and every label
// outputSize values.
func (d *Dataset) Validate(inputSize, outputSize int) error {
	if len(d.Samples) != len(d.Labels) {
		return errors.Errorf("dataset has %d samples but %d labels", len(d.Samples), len(d.Labels))
	}
	for i := range d.Samples {
		if len(d.Samples[i]) != inputSize {
			return errors.Errorf("sample %d has %d inputs, want %d", i, len(d.Samples[i]), inputSize)
		}
		if len(d.Labels[i]) != outputSize {
			return errors.Errorf("sample %d has %d outputs, want %d", i, len(d.Labels[i]), outputSize)
		}
	}
	return nil
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test).
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train := &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}

	test := &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}

	return train, test
}

// Records returns the dataset as JSON records.
func (d *Dataset) Records() []Record {
	records := make([]Record, len(d.Samples))
	for i := range d.Samples {
		records[i] = Record{Input: d.Samples[i], Output: d.Labels[i]}
	}
	return records
}

// LoadJSON reads a document of the form {"training_data": [{"input": [...],
// "output": [...]}, ...]}. A document without the key yields an empty dataset.
func LoadJSON(filename string) (*Dataset, error) {
	doc, err := readDocument(filename)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc map[string]json.RawMessage) (*Dataset, error) {
	d := &Dataset{}
	raw, ok := doc[documentKey]
	if !ok {
		return d, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", documentKey)
	}
	for _, r := range records {
		d.Append(r.Input, r.Output)
	}
	return d, nil
}

func readDocument(filename string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode json")
	}
	return doc, nil
}

// SaveJSON writes the dataset as a training document, replacing filename.
func (d *Dataset) SaveJSON(filename string) error {
	return writeDocument(filename, map[string]json.RawMessage{}, d)
}

func writeDocument(filename string, doc map[string]json.RawMessage, d *Dataset) error {
	raw, err := json.Marshal(d.Records())
	if err != nil {
		return errors.Wrap(err, "failed to encode samples")
	}
	doc[documentKey] = raw
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode document")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write file")
	}
	return nil
}

// AppendJSON adds one sample to the training document in filename, creating
// the file if it does not exist. Other keys of the document are preserved.
func AppendJSON(filename string, sample, label []float64) error {
	doc, err := readDocument(filename)
	if errors.Is(err, os.ErrNotExist) {
		doc, err = map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return err
	}
	d, err := fromDocument(doc)
	if err != nil {
		return err
	}
	d.Append(sample, label)
	return writeDocument(filename, doc, d)
}
