package domain

import "errors"

// Sentinel errors for expected, caller-recoverable conditions. Handlers and
// other callers branch on these with errors.Is instead of matching messages.
var (
	// ErrMissingStudentID indicates a rental request without a student.
	ErrMissingStudentID = errors.New("student id is required")

	// ErrMissingInstrumentID indicates a rental request without an instrument.
	ErrMissingInstrumentID = errors.New("instrument id is required")

	// ErrMissingRentalID indicates a terminate request without a rental.
	ErrMissingRentalID = errors.New("rental id is required")

	// ErrInstrumentNotAvailable indicates the instrument does not exist or is
	// already rented out. Both cases look identical to the caller.
	ErrInstrumentNotAvailable = errors.New("instrument is not available")

	// ErrRentalNotFound indicates no active rental matched the given id.
	ErrRentalNotFound = errors.New("rental not found")
)

// OperationError reports a failed operation with a stable, presentable
// message. The underlying cause is reachable through errors.Unwrap for
// logging and errors.Is checks, but never appears in the message itself.
type OperationError struct {
	Msg   string
	Cause error
}

func (e *OperationError) Error() string { return e.Msg }

func (e *OperationError) Unwrap() error { return e.Cause }
