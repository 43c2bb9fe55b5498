package tableau

import (
	"errors"

	"github.com/hupe1980/stabgo/chunk"
)

var (
	// ErrIndexOutOfRange is returned for qubit, generator or bit indices past n.
	ErrIndexOutOfRange = chunk.ErrIndexOutOfRange

	// ErrInvalidOperands is returned for malformed operand combinations such as
	// CNOT(q, q), a row sum of anticommuting generators, or n < 1.
	ErrInvalidOperands = chunk.ErrInvalidOperands

	// ErrAllocation is returned when the tableau storage cannot be reserved or allocated.
	ErrAllocation = chunk.ErrAllocation

	// ErrInvalidLayout is returned when an operation runs in the wrong layout.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrMalformed is returned by UnmarshalBinary for inconsistent encodings.
	ErrMalformed = errors.New("malformed tableau encoding")
)
