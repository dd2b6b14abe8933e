// Package calcerr defines the error kinds shared by the gradewise calculators.
//
// Calculator errors are matched by kind via errors.Is:
//
//	errors.Is(err, calcerr.ErrInvalidInput)
//
// ErrInsufficientData is a refinement of ErrInvalidInput, so a sample that is
// too small matches both kinds. ErrDegenerateInput matches only itself.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates malformed input shape: mismatched series
	// lengths, negative points, an out-of-range quality.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData indicates a sample too small for the requested
	// statistic (empty sample, correlation on fewer than two points).
	ErrInsufficientData = fmt.Errorf("%w: insufficient data", ErrInvalidInput)

	// ErrDegenerateInput indicates well-shaped input whose result is
	// mathematically undefined, such as a zero-variance series.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Error describes a failed calculation.
type Error struct {
	Op     string // operation that failed, e.g. "stats.Mean"
	Kind   error  // one of the package sentinels
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error for op with the given kind.
func New(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
