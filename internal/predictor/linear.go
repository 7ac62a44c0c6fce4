package predictor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when weights, bias, or an input row do not
// agree with the expected feature or category count.
var ErrShapeMismatch = errors.New("shape mismatch")

// LinearModel predicts per-category call counts as Y = X·Wᵀ + b.
// It is the bundled Predictor implementation backed by a JSON artifact.
type LinearModel struct {
	weights    *mat.Dense // categories × features
	bias       []float64
	categories []string
	features   int
}

// NewLinearModel validates shapes and wraps the coefficient matrix.
// weights is indexed [category][feature]; featureCount must equal the
// schema length the model was trained against.
func NewLinearModel(weights [][]float64, bias []float64, categories []string, featureCount int) (*LinearModel, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: model has no categories", ErrShapeMismatch)
	}
	if len(weights) != len(categories) {
		return nil, fmt.Errorf("%w: %d weight rows for %d categories", ErrShapeMismatch, len(weights), len(categories))
	}
	if len(bias) != len(categories) {
		return nil, fmt.Errorf("%w: %d bias terms for %d categories", ErrShapeMismatch, len(bias), len(categories))
	}

	flat := make([]float64, 0, len(categories)*featureCount)
	for i, row := range weights {
		if len(row) != featureCount {
			return nil, fmt.Errorf("%w: weight row %d has %d columns, schema has %d", ErrShapeMismatch, i, len(row), featureCount)
		}
		flat = append(flat, row...)
	}

	cats := make([]string, len(categories))
	copy(cats, categories)
	b := make([]float64, len(bias))
	copy(b, bias)

	return &LinearModel{
		weights:    mat.NewDense(len(categories), featureCount, flat),
		bias:       b,
		categories: cats,
		features:   featureCount,
	}, nil
}

// Categories returns the model's call categories in output order.
func (m *LinearModel) Categories() []string {
	cats := make([]string, len(m.categories))
	copy(cats, m.categories)
	return cats
}

// FeatureCount returns the number of input features the model expects.
func (m *LinearModel) FeatureCount() int {
	return m.features
}

// Predict returns one prediction row per input row. Raw model output may be
// negative for near-zero categories; clamping is the caller's concern.
func (m *LinearModel) Predict(batch [][]float64) ([][]float64, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	flat := make([]float64, 0, len(batch)*m.features)
	for i, row := range batch {
		if len(row) != m.features {
			return nil, fmt.Errorf("%w: input row %d has %d values, model expects %d", ErrShapeMismatch, i, len(row), m.features)
		}
		flat = append(flat, row...)
	}
	x := mat.NewDense(len(batch), m.features, flat)

	var y mat.Dense
	y.Mul(x, m.weights.T())

	out := make([][]float64, len(batch))
	for i := range out {
		row := make([]float64, len(m.categories))
		for j := range row {
			row[j] = y.At(i, j) + m.bias[j]
		}
		out[i] = row
	}
	return out, nil
}
