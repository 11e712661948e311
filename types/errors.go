// errors.go defines the failure taxonomy of the frame hand-off.

package types

import (
	"fmt"
)

// ErrInvalidFrame is returned for malformed or undersized input: non-positive
// dimensions, dimensions too large to address (Expected is negative), or a
// buffer length that does not match them.
type ErrInvalidFrame struct {
	Width    int
	Height   int
	Length   int
	Expected int
}

func (e ErrInvalidFrame) Error() string {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Sprintf("invalid frame: non-positive dimensions %dx%d", e.Width, e.Height)
	}
	if e.Expected < 0 {
		return fmt.Sprintf("invalid frame: dimensions %dx%d are too large", e.Width, e.Height)
	}
	return fmt.Sprintf("invalid frame %dx%d: got %d bytes, expected %d", e.Width, e.Height, e.Length, e.Expected)
}

// ErrConversionFailure is returned when the edge pipeline cannot produce a mask.
type ErrConversionFailure struct {
	Err error
}

func (e ErrConversionFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failure: %v", e.Err)
	}
	return "conversion failure"
}

func (e ErrConversionFailure) Unwrap() error {
	return e.Err
}

// ErrAllocationFailure is returned when a frame buffer of the requested size
// cannot be allocated. The previously published frame stays intact.
type ErrAllocationFailure struct {
	Size int
	Err  error
}

func (e ErrAllocationFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to allocate %d bytes: %v", e.Size, e.Err)
	}
	return fmt.Sprintf("unable to allocate %d bytes", e.Size)
}

func (e ErrAllocationFailure) Unwrap() error {
	return e.Err
}
