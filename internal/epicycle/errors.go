package epicycle

import (
	"errors"
	"fmt"
)

// ErrEmptyCurve is returned by StartTracing for a curve with no samples.
var ErrEmptyCurve = errors.New("curve has no samples")

// InvalidTimeStepError is returned by Step for a negative or non-finite
// delta. The frame is skipped and the engine state is left as it was.
type InvalidTimeStepError struct {
	DeltaTime float64
}

func (e *InvalidTimeStepError) Error() string {
	return fmt.Sprintf("invalid time step %g", e.DeltaTime)
}
