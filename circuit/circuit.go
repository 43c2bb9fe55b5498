package circuit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrQubitRange is returned when an instruction addresses a qubit outside the register.
	ErrQubitRange = errors.New("qubit out of range")

	// ErrSameQubit is returned when a two-qubit gate uses one qubit twice.
	ErrSameQubit = errors.New("control and target are the same qubit")

	// ErrUnknownOp is returned for operations the simulator does not implement.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrNoRegister is returned when a circuit declares no qubits.
	ErrNoRegister = errors.New("no qubit register")
)

// Instruction is one operation with its operands. Single-qubit operations use
// Targ; Ctrl is only meaningful for two-qubit operations.
type Instruction struct {
	Op   Op
	Ctrl int
	Targ int
}

// Qubits returns the qubits touched by the instruction.
func (in Instruction) Qubits() []int {
	switch in.Op.Arity() {
	case 0:
		return nil
	case 2:
		return []int{in.Ctrl, in.Targ}
	default:
		return []int{in.Targ}
	}
}

// String renders the instruction as a QASM statement.
func (in Instruction) String() string {
	switch in.Op.Arity() {
	case 0:
		return in.Op.String() + ";"
	case 2:
		return fmt.Sprintf("%s q[%d], q[%d];", in.Op, in.Ctrl, in.Targ)
	default:
		return fmt.Sprintf("%s q[%d];", in.Op, in.Targ)
	}
}

// Circuit is an ordered list of instructions over a fixed qubit register.
type Circuit struct {
	Qubits       int
	Instructions []Instruction
}

// New returns an empty circuit over n qubits.
func New(n int) *Circuit {
	return &Circuit{Qubits: n}
}

// Gate appends a single-qubit operation.
func (c *Circuit) Gate(op Op, targ int) *Circuit {
	c.Instructions = append(c.Instructions, Instruction{Op: op, Targ: targ})
	return c
}

// Controlled appends a two-qubit operation.
func (c *Circuit) Controlled(op Op, ctrl, targ int) *Circuit {
	c.Instructions = append(c.Instructions, Instruction{Op: op, Ctrl: ctrl, Targ: targ})
	return c
}

// Flip appends a layout flip.
func (c *Circuit) Flip() *Circuit {
	c.Instructions = append(c.Instructions, Instruction{Op: OpFlip})
	return c
}

// Len returns the number of instructions.
func (c *Circuit) Len() int { return len(c.Instructions) }

// Validate checks every instruction against the register.
// The returned error names the first offending instruction.
func (c *Circuit) Validate() error {
	if c.Qubits < 1 {
		return fmt.Errorf("%w: %d qubits", ErrNoRegister, c.Qubits)
	}
	for i, in := range c.Instructions {
		if err := c.check(in); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, in, err)
		}
	}
	return nil
}

func (c *Circuit) check(in Instruction) error {
	if !in.Op.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownOp, in.Op)
	}
	for _, q := range in.Qubits() {
		if q < 0 || q >= c.Qubits {
			return fmt.Errorf("%w: q[%d] of %d", ErrQubitRange, q, c.Qubits)
		}
	}
	if in.Op.Arity() == 2 && in.Ctrl == in.Targ {
		return fmt.Errorf("%w: q[%d]", ErrSameQubit, in.Ctrl)
	}
	return nil
}

// Footprint returns the set of qubits any instruction touches.
func (c *Circuit) Footprint() *roaring.Bitmap {
	bm := roaring.New()
	for _, in := range c.Instructions {
		for _, q := range in.Qubits() {
			if q >= 0 {
				bm.Add(uint32(q))
			}
		}
	}
	return bm
}

// Counts returns how often each operation occurs.
func (c *Circuit) Counts() map[Op]int {
	counts := make(map[Op]int)
	for _, in := range c.Instructions {
		counts[in.Op]++
	}
	return counts
}

// WriteTo writes the circuit in the QASM form accepted by Parse.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.Qubits)
	for _, in := range c.Instructions {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
