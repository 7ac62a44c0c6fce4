package predictor

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySchema is returned when a feature schema has no columns.
	ErrEmptySchema = errors.New("feature schema is empty")
	// ErrDuplicateColumn is returned when a schema lists a column twice.
	ErrDuplicateColumn = errors.New("duplicate schema column")
)

// Schema is the ordered feature-column contract a trained model expects.
// Every vector handed to a Predictor must contain exactly these columns,
// in this order. Immutable once constructed.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from an ordered column list.
func NewSchema(columns []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySchema
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		index[name] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Schema{columns: cols, index: index}, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the ordered column list.
func (s *Schema) Columns() []string {
	cols := make([]string, len(s.columns))
	copy(cols, s.columns)
	return cols
}

// Has reports whether the schema contains the named column.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}
