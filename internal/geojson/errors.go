package geojson

import (
	"errors"
	"fmt"
)

// Validation failure classes. Stages wrap these with detail using
// fmt.Errorf("…: %w", Err…) so callers can branch on the class with
// errors.Is while still seeing the specifics.
var (
	// ErrShapeMismatch reports a geometry where a different shape was
	// required, e.g. a point in a day run of line segments.
	ErrShapeMismatch = errors.New("geometry shape mismatch")

	// ErrLengthMismatch reports per-point timestamps that do not align 1:1
	// with their coordinates.
	ErrLengthMismatch = errors.New("coordinate/timestamp length mismatch")

	// ErrTypeMismatch reports an input document that is not the expected
	// kind of value.
	ErrTypeMismatch = errors.New("unexpected value type")

	// ErrDimensionMismatch reports coordinates of differing dimensionality
	// inside one geometry.
	ErrDimensionMismatch = errors.New("coordinate dimension mismatch")

	// ErrTimeMismatch reports a declared start time that contradicts the
	// first per-point timestamp.
	ErrTimeMismatch = errors.New("declared time mismatch")
)

// SourceError ties a validation failure back to the recording it came from.
type SourceError struct {
	GPXFile string
	Time    string
	Err     error
}

func (e *SourceError) Error() string {
	switch {
	case e.GPXFile != "" && e.Time != "":
		return fmt.Sprintf("%s (near %s): %v", e.GPXFile, e.Time, e.Err)
	case e.GPXFile != "":
		return fmt.Sprintf("%s: %v", e.GPXFile, e.Err)
	}
	return e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// WrapSource annotates err with the feature's provenance. Errors that
// already carry a source pass through unchanged.
func WrapSource(err error, props Properties) error {
	if err == nil {
		return nil
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{GPXFile: props.GPXFile, Time: props.Time, Err: err}
}
