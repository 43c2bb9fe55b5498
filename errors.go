package stabgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/stabgo/blobstore"
	"github.com/hupe1980/stabgo/circuit"
	"github.com/hupe1980/stabgo/snapshot"
	"github.com/hupe1980/stabgo/tableau"
)

var (
	// ErrIndexOutOfRange is returned when a qubit or generator index is outside the tableau.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidLayout is returned when an operation runs in the wrong storage layout.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidOperands is returned for operand combinations an operation rejects.
	ErrInvalidOperands = errors.New("invalid operands")

	// ErrAllocation is returned when tableau storage cannot be reserved.
	ErrAllocation = errors.New("allocation failed")

	// ErrInvalidCircuit is returned when a circuit fails validation.
	ErrInvalidCircuit = errors.New("invalid circuit")

	// ErrCorruptSnapshot is returned when a snapshot cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoBlobStore is returned by snapshot operations without WithBlobStore.
	ErrNoBlobStore = errors.New("no blob store configured")

	// ErrClosed is returned by operations on a closed Simulator.
	ErrClosed = errors.New("simulator closed")
)

// ErrGate reports a failed instruction.
//
// Index is the position of the instruction in the circuit, or -1 for Apply.
// The underlying error can be accessed via errors.Unwrap.
type ErrGate struct {
	Instruction circuit.Instruction
	Index       int
	cause       error
}

func (e *ErrGate) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Instruction, e.cause)
	}
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, e.Instruction, e.cause)
}

func (e *ErrGate) Unwrap() error { return e.cause }

// Op returns the failed operation.
func (e *ErrGate) Op() circuit.Op { return e.Instruction.Op }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Snapshot decoding. Checked first: a malformed header also wraps the
	// allocation and range errors its sizes trip.
	var ce *snapshot.ErrChecksum
	if errors.As(err, &ce) ||
		errors.Is(err, snapshot.ErrBadMagic) ||
		errors.Is(err, snapshot.ErrUnsupportedVersion) ||
		errors.Is(err, snapshot.ErrUnsupportedCompression) ||
		errors.Is(err, snapshot.ErrTruncated) ||
		errors.Is(err, snapshot.ErrCorrupt) ||
		errors.Is(err, tableau.ErrMalformed) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	switch {
	case errors.Is(err, tableau.ErrIndexOutOfRange):
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	case errors.Is(err, tableau.ErrInvalidLayout):
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	case errors.Is(err, tableau.ErrInvalidOperands):
		return fmt.Errorf("%w: %w", ErrInvalidOperands, err)
	case errors.Is(err, tableau.ErrAllocation):
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	case errors.Is(err, blobstore.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Circuit validation.
	if errors.Is(err, circuit.ErrQubitRange) ||
		errors.Is(err, circuit.ErrSameQubit) ||
		errors.Is(err, circuit.ErrUnknownOp) ||
		errors.Is(err, circuit.ErrNoRegister) {
		return fmt.Errorf("%w: %w", ErrInvalidCircuit, err)
	}

	return err
}
