package forecast

import (
	"errors"
	"fmt"
	"time"
)

// Input validation errors. All of these are detected before any predictor
// invocation.
var (
	ErrInvalidDuration = errors.New("forecast duration must be at least one hour")
	ErrNegativeCensus  = errors.New("census counts must be non-negative")
	ErrUnknownUnit     = errors.New("unit not present in hospital directory")
)

// ErrCategoryMismatch is returned when the predictor emits a row whose
// width disagrees with its declared category list.
var ErrCategoryMismatch = errors.New("predictor output width does not match category count")

// PredictionError reports a predictor failure for one (hour, unit) pair.
// The whole request aborts on the first one: a silently partial shift
// forecast is worse than a visible failure.
type PredictionError struct {
	Hour time.Time
	Unit string
	Err  error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed for unit %q at %s: %v", e.Unit, e.Hour.Format("2006-01-02 15:04"), e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
