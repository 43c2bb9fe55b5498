package stabgo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/stabgo/blobstore"
	"github.com/hupe1980/stabgo/circuit"
	"github.com/hupe1980/stabgo/snapshot"
	"github.com/hupe1980/stabgo/tableau"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	tests := []struct {
		in   error
		want error
	}{
		{fmt.Errorf("h: %w", tableau.ErrIndexOutOfRange), ErrIndexOutOfRange},
		{tableau.ErrInvalidLayout, ErrInvalidLayout},
		{tableau.ErrInvalidOperands, ErrInvalidOperands},
		{tableau.ErrAllocation, ErrAllocation},
		{blobstore.ErrNotFound, ErrNotFound},
		{circuit.ErrQubitRange, ErrInvalidCircuit},
		{circuit.ErrSameQubit, ErrInvalidCircuit},
		{snapshot.ErrBadMagic, ErrCorruptSnapshot},
		{&snapshot.ErrChecksum{Want: 1, Got: 2}, ErrCorruptSnapshot},
		{tableau.ErrMalformed, ErrCorruptSnapshot},
		{fmt.Errorf("%w: %w", tableau.ErrMalformed, tableau.ErrAllocation), ErrCorruptSnapshot},
		{fmt.Errorf("snapshot: lz4 payload: %w", snapshot.ErrCorrupt), ErrCorruptSnapshot},
	}
	for _, tt := range tests {
		got := translateError(tt.in)
		assert.ErrorIs(t, got, tt.want, "%v", tt.in)
		assert.ErrorIs(t, got, tt.in, "original error stays reachable")
	}

	oversize := translateError(fmt.Errorf("%w: %w", tableau.ErrMalformed, tableau.ErrAllocation))
	assert.NotErrorIs(t, oversize, ErrAllocation, "a corrupt header is not an allocation failure")

	other := errors.New("other")
	assert.Same(t, other, translateError(other))
}

func TestErrGate(t *testing.T) {
	in := circuit.Instruction{Op: circuit.OpCNOT, Ctrl: 0, Targ: 3}

	err := &ErrGate{Instruction: in, Index: 4, cause: ErrIndexOutOfRange}
	assert.Equal(t, "instruction 4 (cx q[0], q[3];): index out of range", err.Error())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, circuit.OpCNOT, err.Op())

	direct := &ErrGate{Instruction: in, Index: -1, cause: ErrInvalidLayout}
	assert.Equal(t, "cx q[0], q[3];: invalid layout", direct.Error())
}
