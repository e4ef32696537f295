// Package coreerr provides the discriminated error taxonomy shared by every
// layer of the spatial-indexing core. There is no string-typed error in the
// public surface: every failure a caller can foresee comes back as a
// *CoreError carrying one of the ErrorType values below. The core never
// recovers from these locally — it propagates them unchanged to its callers,
// who choose recovery (see spec.md §7).
package coreerr

import "fmt"

// ErrorType discriminates the failure taxonomy of the core.
type ErrorType string

const (
	// InvalidShape: polygon with fewer than 3 vertices, rectangle with
	// negative dimensions, or a NaN/Inf coordinate.
	InvalidShape ErrorType = "invalid_shape"

	// DegenerateOperation: division by a near-zero magnitude, or
	// normalizing the zero vector.
	DegenerateOperation ErrorType = "degenerate_operation"

	// BoundaryEscape: an object or sub-block rectangle is not contained
	// by the parent it is being inserted into.
	BoundaryEscape ErrorType = "boundary_escape"

	// DuplicateBlock: create_ip_block called with an already-used name.
	DuplicateBlock ErrorType = "duplicate_block"

	// UnknownBlock: lookup or reference to a block name that does not
	// exist.
	UnknownBlock ErrorType = "unknown_block"

	// CapacityExceeded: the memory arena could not allocate (OOM).
	CapacityExceeded ErrorType = "capacity_exceeded"

	// Cancelled: a task was discarded during worker-pool teardown.
	Cancelled ErrorType = "cancelled"
)

// CoreError is the concrete error type returned across the core's API.
type CoreError struct {
	Type ErrorType
	Op   string // the operation that failed, e.g. "Polygon.New"
	Msg  string
	Err  error // optional wrapped cause
}

// New constructs a *CoreError with no wrapped cause.
func New(t ErrorType, op, msg string) *CoreError {
	return &CoreError{Type: t, Op: op, Msg: msg}
}

// Wrap constructs a *CoreError wrapping an existing error.
func Wrap(t ErrorType, op string, err error) *CoreError {
	return &CoreError{Type: t, Op: op, Msg: err.Error(), Err: err}
}

func (e *CoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Type, e.Msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *CoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *CoreError of the same Type. This lets
// callers write errors.Is(err, coreerr.New(coreerr.BoundaryEscape, "", ""))
// or, more commonly, use the Of helper below.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Of reports whether err is a *CoreError of type t.
func Of(err error, t ErrorType) bool {
	ce, ok := err.(*CoreError)
	if !ok {
		return false
	}
	return ce.Type == t
}
