package core

import "errors"

// Error taxonomy shared by every package of the module. Packages wrap these
// with context; callers classify failures with errors.Is.
var (
	// ErrInvalidArgument reports a parameter outside its valid domain, such as
	// a non-power-of-two transform length or an out-of-range sub-buffer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientResource reports that a request could not be served with
	// the available resources, typically an oversized transform allocation.
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrInvalidOperation reports a call made in the wrong state, such as
	// synthesizing frames that were never analyzed or were already consumed.
	ErrInvalidOperation = errors.New("invalid operation")
)
