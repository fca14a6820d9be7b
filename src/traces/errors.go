package traces

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates a trace whose sample count differs from the x-domain length.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrInvalidParameter indicates an argument outside its valid domain
// (non-positive sampling interval, trace too short for a spectrum, bad cell in an import).
var ErrInvalidParameter = errors.New("invalid parameter")

// ShapeError describes which entry of a Set broke the shared-length rule.
type ShapeError struct {
	Index int
	Label string
	Got   int
	Want  int
}

func (e *ShapeError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%v: trace %d (%q) has %d samples, x-domain has %d", ErrShapeMismatch, e.Index, e.Label, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: trace %d has %d samples, x-domain has %d", ErrShapeMismatch, e.Index, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// invalidf wraps ErrInvalidParameter with a formatted reason.
func invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, a...))
}

// InvalidParameterf is invalidf for other packages reporting the same error kind.
func InvalidParameterf(format string, a ...interface{}) error {
	return invalidf(format, a...)
}
