package tableau

// Layout is the orientation of the X and Z blocks.
type Layout uint8

const (
	// ColumnMajor stores one vector per qubit, indexed by generator.
	ColumnMajor Layout = iota
	// RowMajor stores one vector per generator, indexed by qubit.
	RowMajor
)

// Flip returns the other layout.
func (l Layout) Flip() Layout {
	if l == ColumnMajor {
		return RowMajor
	}
	return ColumnMajor
}

func (l Layout) String() string {
	switch l {
	case ColumnMajor:
		return "column-major"
	case RowMajor:
		return "row-major"
	default:
		return "unknown"
	}
}

// Block selects one of the tableau's bit matrices.
type Block uint8

const (
	BlockX Block = iota
	BlockZ
	BlockPhase
)

func (b Block) String() string {
	switch b {
	case BlockX:
		return "X"
	case BlockZ:
		return "Z"
	case BlockPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// LocalClifford names a single-qubit Clifford built from H, S and the Paulis.
//
// Composite names read as operator products: SH applies H first, then S.
// Together with SHS the set covers all 24 single-qubit Cliffords.
type LocalClifford uint8

const (
	LocalI LocalClifford = iota
	LocalX
	LocalY
	LocalZ
	LocalH
	LocalS
	LocalSdg
	LocalHS
	LocalSH
	LocalSHS
	LocalHX
	LocalSX
	LocalSdgX
	LocalHY
	LocalHZ
	LocalSdgH
	LocalHSdg
	LocalHSX
	LocalHSdgX
	LocalSHY
	LocalSdgHY
	LocalHSH
	LocalHSdgH
	LocalSdgHS
	LocalSHSdg
	numLocal
)

var localNames = [numLocal]string{
	"I", "X", "Y", "Z", "H", "S", "SDG", "HS", "SH", "SHS",
	"HX", "SX", "SDGX", "HY", "HZ", "SDGH", "HSDG", "HSX", "HSDGX",
	"SHY", "SDGHY", "HSH", "HSDGH", "SDGHS", "SHSDG",
}

func (c LocalClifford) String() string {
	if c < numLocal {
		return localNames[c]
	}
	return "unknown"
}

// LocalCliffords returns every local Clifford in declaration order.
func LocalCliffords() []LocalClifford {
	out := make([]LocalClifford, numLocal)
	for i := range out {
		out[i] = LocalClifford(i)
	}
	return out
}
