// Package predictor holds the trained-model boundary: the feature schema,
// the feature vector builder, and the artifact-backed linear predictor.
package predictor

// Predictor is the black-box trained model. Each input row must match the
// feature schema the model was trained against; each output row is one
// value per call category, in the model's fixed category order.
type Predictor interface {
	Predict(batch [][]float64) ([][]float64, error)
	Categories() []string
}
