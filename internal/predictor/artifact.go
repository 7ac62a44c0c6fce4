package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrArtifactMissing is returned when a model or schema artifact cannot be
// loaded. It gates all forecasting: there is no untrained fallback.
var ErrArtifactMissing = errors.New("model artifact missing")

// SavedModel is the JSON-serializable model artifact produced by the
// training pipeline. Weights are indexed [category][feature] in schema
// column order.
type SavedModel struct {
	Categories []string    `json:"categories"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

// Save serializes the model to its JSON artifact form.
func (m *LinearModel) Save() ([]byte, error) {
	weights := make([][]float64, len(m.categories))
	for i := range weights {
		weights[i] = make([]float64, m.features)
		copy(weights[i], m.weights.RawRowView(i))
	}
	return json.MarshalIndent(SavedModel{
		Categories: m.Categories(),
		Weights:    weights,
		Bias:       append([]float64(nil), m.bias...),
	}, "", "  ")
}

// LoadModel deserializes a model artifact, validating it against the
// expected feature count.
func LoadModel(data []byte, featureCount int) (*LinearModel, error) {
	var saved SavedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decoding model artifact: %w", err)
	}
	return NewLinearModel(saved.Weights, saved.Bias, saved.Categories, featureCount)
}

// LoadSchemaFile reads the ordered feature-column list artifact, a JSON
// array of strings.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrArtifactMissing, path, err)
	}
	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return NewSchema(columns)
}

// LoadModelFile reads a model artifact from disk.
func LoadModelFile(path string, featureCount int) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrArtifactMissing, path, err)
	}
	return LoadModel(data, featureCount)
}

// LoadArtifacts loads both artifacts the pipeline depends on: the feature
// schema and the trained model, cross-validated against each other.
func LoadArtifacts(modelPath, columnsPath string) (*Schema, *LinearModel, error) {
	schema, err := LoadSchemaFile(columnsPath)
	if err != nil {
		return nil, nil, err
	}
	model, err := LoadModelFile(modelPath, schema.Len())
	if err != nil {
		return nil, nil, err
	}
	return schema, model, nil
}
