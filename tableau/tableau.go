package tableau

import (
	"fmt"

	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/internal/mem"
	"github.com/hupe1980/stabgo/resource"
)

// Tableau is the symplectic representation of an n-qubit stabilizer state.
type Tableau struct {
	n    int
	geom chunk.Geometry

	// layout is what callers see; physical is how the words are arranged.
	// They differ only between FlipLayout and the next storage access.
	layout   Layout
	physical Layout

	arena *chunk.Arena
	x     []chunk.Vector
	z     []chunk.Vector
	phase chunk.Vector

	budget     *resource.Controller
	reserved   int64
	parallel   bool
	transposes int
}

// New returns a tableau for n qubits in the |0...0> state, ColumnMajor.
func New(n int, opts ...Option) (*Tableau, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t, err := allocate(n, o)
	if err != nil {
		return nil, err
	}

	for i := range t.z {
		if err := t.z[i].SetBit(i); err != nil {
			t.Close()
			return nil, err
		}
	}
	return t, nil
}

func allocate(n int, o options) (*Tableau, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: tableau needs at least one qubit, got %d", ErrInvalidOperands, n)
	}

	// 2n block rows plus the phase vector.
	words, err := o.geometry.ArenaWords(n, 2*n+1)
	if err != nil {
		return nil, err
	}
	size := int64(words) * mem.WordBytes

	if err := o.budget.AcquireMemory(size); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	arena, err := chunk.NewArena(o.geometry, n, 2*n+1)
	if err != nil {
		o.budget.ReleaseMemory(size)
		return nil, err
	}

	vs := arena.Vectors()
	return &Tableau{
		n:        n,
		geom:     o.geometry,
		layout:   ColumnMajor,
		physical: ColumnMajor,
		arena:    arena,
		x:        vs[:n:n],
		z:        vs[n : 2*n : 2*n],
		phase:    vs[2*n],
		budget:   o.budget,
		reserved: size,
		parallel: o.parallel,
	}, nil
}

// Close returns the tableau's memory reservation to its budget.
// The tableau must not be used afterwards.
func (t *Tableau) Close() {
	if t.reserved > 0 {
		t.budget.ReleaseMemory(t.reserved)
		t.reserved = 0
	}
}

// QubitCount returns n.
func (t *Tableau) QubitCount() int { return t.n }

// Layout returns the logical layout.
func (t *Tableau) Layout() Layout { return t.layout }

// Geometry returns the register geometry of every row.
func (t *Tableau) Geometry() chunk.Geometry { return t.geom }

// MemoryBytes returns the size of the tableau's storage.
func (t *Tableau) MemoryBytes() int { return t.arena.Size() }

// Transposes returns how many physical transposes have run.
func (t *Tableau) Transposes() int { return t.transposes }

// FlipLayout toggles between RowMajor and ColumnMajor.
//
// The data movement is deferred to the next gate, row operation or row query.
func (t *Tableau) FlipLayout() {
	t.layout = t.layout.Flip()
}

// SetLayout brings the tableau into layout l.
func (t *Tableau) SetLayout(l Layout) {
	if t.layout != l {
		t.FlipLayout()
	}
}

// ReadBit returns one bit of a block in the current logical layout.
//
// For BlockX and BlockZ in RowMajor, row is the generator and col the qubit; in
// ColumnMajor, row is the qubit and col the generator. For BlockPhase, row is
// the generator and col must be 0.
func (t *Tableau) ReadBit(block Block, row, col int) (bool, error) {
	if err := t.checkIndex("row", row); err != nil {
		return false, err
	}

	switch block {
	case BlockPhase:
		if col != 0 {
			return false, fmt.Errorf("%w: phase column %d, want 0", ErrIndexOutOfRange, col)
		}
		return t.phase.GetBit(row)
	case BlockX, BlockZ:
		if err := t.checkIndex("column", col); err != nil {
			return false, err
		}
		// Storage may still be in the other orientation.
		if t.physical != t.layout {
			row, col = col, row
		}
		rows := t.block(block)
		return rows[row].GetBit(col)
	default:
		return false, fmt.Errorf("%w: unknown block %d", ErrInvalidOperands, block)
	}
}

// Clone returns an independent copy. The copy reserves memory against the
// same budget.
func (t *Tableau) Clone() (*Tableau, error) {
	t.sync()

	c, err := allocate(t.n, options{geometry: t.geom, budget: t.budget, parallel: t.parallel})
	if err != nil {
		return nil, err
	}
	for i := range t.x {
		c.x[i].CopyFrom(&t.x[i])
		c.z[i].CopyFrom(&t.z[i])
	}
	c.phase.CopyFrom(&t.phase)
	c.layout, c.physical = t.layout, t.physical
	return c, nil
}

// Equal reports whether both tableaux hold the same state in the same layout.
func (t *Tableau) Equal(other *Tableau) bool {
	if t.n != other.n || t.layout != other.layout || t.geom.Words() != other.geom.Words() {
		return false
	}
	t.sync()
	other.sync()

	for i := range t.x {
		if !t.x[i].Equal(&other.x[i]) || !t.z[i].Equal(&other.z[i]) {
			return false
		}
	}
	return t.phase.Equal(&other.phase)
}

// Negate complements every bit of a block, padding included. It is meant for
// diagnostics and bulk initialization, not gate evolution.
func (t *Tableau) Negate(block Block) error {
	switch block {
	case BlockX, BlockZ:
		t.sync()
		rows := t.block(block)
		for i := range rows {
			rows[i].Negate()
		}
	case BlockPhase:
		t.phase.Negate()
	default:
		return fmt.Errorf("%w: unknown block %d", ErrInvalidOperands, block)
	}
	return nil
}

func (t *Tableau) block(b Block) []chunk.Vector {
	if b == BlockX {
		return t.x
	}
	return t.z
}

func (t *Tableau) checkIndex(what string, i int) error {
	if i < 0 || i >= t.n {
		return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, what, i, t.n)
	}
	return nil
}

func (t *Tableau) requireLayout(l Layout, op string) error {
	if t.layout != l {
		return fmt.Errorf("%w: %s requires %s, tableau is %s", ErrInvalidLayout, op, l, t.layout)
	}
	return nil
}
