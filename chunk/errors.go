package chunk

import "errors"

var (
	// ErrIndexOutOfRange is returned when a bit, register or row index is past its bound.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidOperands is returned when operands are malformed for the requested operation.
	ErrInvalidOperands = errors.New("invalid operands")

	// ErrAllocation is returned when storage for the requested shape cannot be allocated.
	ErrAllocation = errors.New("allocation failed")

	// ErrInvalidGeometry is returned for register geometries with no words.
	ErrInvalidGeometry = errors.New("invalid register geometry")
)
