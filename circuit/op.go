package circuit

import "strings"

// Op is a circuit operation.
type Op uint8

const (
	OpI Op = iota
	OpX
	OpY
	OpZ
	OpH
	OpS
	OpSdg
	OpHS
	OpSH
	OpSHS
	OpCNOT
	OpCZ
	OpFlip

	// Remaining single-qubit Cliffords, named as operator products.
	OpHX
	OpSX
	OpSdgX
	OpHY
	OpHZ
	OpSdgH
	OpHSdg
	OpHSX
	OpHSdgX
	OpSHY
	OpSdgHY
	OpHSH
	OpHSdgH
	OpSdgHS
	OpSHSdg
	numOps
)

var opNames = [numOps]string{
	"id", "x", "y", "z", "h", "s", "sdg", "hs", "sh", "shs", "cx", "cz", "flip",
	"hx", "sx", "sdgx", "hy", "hz", "sdgh", "hsdg", "hsx", "hsdgx",
	"shy", "sdghy", "hsh", "hsdgh", "sdghs", "shsdg",
}

func (o Op) String() string {
	if o < numOps {
		return opNames[o]
	}
	return "unknown"
}

// Arity returns the number of qubit operands.
func (o Op) Arity() int {
	switch o {
	case OpFlip:
		return 0
	case OpCNOT, OpCZ:
		return 2
	default:
		return 1
	}
}

// Valid reports whether o is a known operation.
func (o Op) Valid() bool { return o < numOps }

// ParseOp looks up an operation by its QASM name, case-insensitively.
func ParseOp(name string) (Op, bool) {
	name = strings.ToLower(name)
	switch name {
	case "i":
		return OpI, true
	case "r", "rx", "rh", "hr", "hrx", "rhy", "hrh", "rhs", "shr":
		// R is the S-dagger spelling of the gate-set tables.
		return ParseOp(strings.NewReplacer("r", "sdg").Replace(name))
	case "cnot":
		return OpCNOT, true
	}
	for i, n := range opNames {
		if n == name {
			return Op(i), true
		}
	}
	return 0, false
}

// Ops returns every operation in declaration order.
func Ops() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}
