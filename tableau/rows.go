package tableau

import (
	"fmt"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/stabgo/chunk"
)

// RowSum replaces generator targ with the product of generators ctrl and targ.
//
// The sign follows the Aaronson-Gottesman rule. Stabilizer generators of a pure
// state always commute; if ctrl and targ anticommute the product is not
// Hermitian and RowSum fails with ErrInvalidOperands without writing anything.
// Requires RowMajor.
func (t *Tableau) RowSum(ctrl, targ int) error {
	if err := t.requireLayout(RowMajor, "rowsum"); err != nil {
		return err
	}
	if err := t.checkIndex("control generator", ctrl); err != nil {
		return err
	}
	if err := t.checkIndex("target generator", targ); err != nil {
		return err
	}
	if ctrl == targ {
		return fmt.Errorf("%w: rowsum of generator %d with itself", ErrInvalidOperands, ctrl)
	}
	t.sync()

	// Words before the control's first register are zero in the control, so
	// they neither change the target nor contribute to the phase.
	start := t.x[ctrl].FirstRegister()
	if zs := t.z[ctrl].FirstRegister(); zs >= 0 && (start < 0 || zs < start) {
		start = zs
	}
	if start < 0 {
		start = t.x[ctrl].Len()
	}

	logI := productLogI(t.x[targ].Words(), t.z[targ].Words(), t.x[ctrl].Words(), t.z[ctrl].Words(), start*t.geom.Words())
	if logI&1 != 0 {
		return fmt.Errorf("%w: generators %d and %d anticommute", ErrInvalidOperands, ctrl, targ)
	}

	// r_targ ^= r_ctrl ^ (logI == 2)
	rc, _ := t.phase.GetBit(ctrl)
	if rc != (logI == 2) {
		_ = t.phase.FlipBit(targ)
	}

	t.x[targ].PartialXorWith(&t.x[ctrl], start)
	t.z[targ].PartialXorWith(&t.z[ctrl], start)
	return nil
}

// productLogI returns k in 0..3 such that P1*P2 = i^k * (P1 xor P2), where
// (x1, z1) encodes P1 and (x2, z2) encodes P2. It does not modify its inputs.
//
// cnt1 and cnt2 are lane-wise two-bit counters of the accumulated exponent.
func productLogI(x1, z1, x2, z2 []uint64, from int) int {
	var cnt1, cnt2 uint64
	for k := from; k < len(x1); k++ {
		x1z2 := x1[k] & z2[k]
		anti := (x2[k] & z1[k]) ^ x1z2
		nx := x1[k] ^ x2[k]
		nz := z1[k] ^ z2[k]
		cnt2 ^= (cnt1 ^ nx ^ nz ^ x1z2) & anti
		cnt1 ^= anti
	}
	return (bits.OnesCount64(cnt1) + 2*bits.OnesCount64(cnt2)) & 3
}

// SwapGenerators exchanges generators i and j together with their phase bits.
// Requires RowMajor.
func (t *Tableau) SwapGenerators(i, j int) error {
	if err := t.requireLayout(RowMajor, "swap"); err != nil {
		return err
	}
	if err := t.checkIndex("generator", i); err != nil {
		return err
	}
	if err := t.checkIndex("generator", j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	t.sync()

	t.x[i], t.x[j] = t.x[j], t.x[i]
	t.z[i], t.z[j] = t.z[j], t.z[i]

	ri, _ := t.phase.GetBit(i)
	rj, _ := t.phase.GetBit(j)
	if ri != rj {
		_ = t.phase.FlipBit(i)
		_ = t.phase.FlipBit(j)
	}
	return nil
}

// Weight returns the number of set bits in row i of a block, ignoring padding.
// For BlockPhase, i must be 0.
func (t *Tableau) Weight(block Block, i int) (int, error) {
	v, err := t.row(block, i)
	if err != nil {
		return 0, err
	}
	count := 0
	t.eachWord(v, func(_ int, w uint64) {
		count += bits.OnesCount64(w)
	})
	return count, nil
}

// IsEmpty reports whether row i of a block has no set bit.
func (t *Tableau) IsEmpty(block Block, i int) (bool, error) {
	w, err := t.Weight(block, i)
	return w == 0, err
}

// FirstSet returns the lowest set bit of row i of a block, or -1.
func (t *Tableau) FirstSet(block Block, i int) (int, error) {
	v, err := t.row(block, i)
	if err != nil {
		return 0, err
	}
	if f := v.FirstSet(); f >= 0 && f < t.n {
		return f, nil
	}
	return -1, nil
}

// Support returns the set bits of row i of a block as a bitmap.
func (t *Tableau) Support(block Block, i int) (*roaring.Bitmap, error) {
	v, err := t.row(block, i)
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	t.eachWord(v, func(k int, w uint64) {
		for w != 0 {
			bm.Add(uint32(k*64 + bits.TrailingZeros64(w)))
			w &= w - 1
		}
	})
	return bm, nil
}

// row returns row i of a block in the logical layout.
func (t *Tableau) row(block Block, i int) (*chunk.Vector, error) {
	switch block {
	case BlockX, BlockZ:
		if err := t.checkIndex("row", i); err != nil {
			return nil, err
		}
		t.sync()
		return &t.block(block)[i], nil
	case BlockPhase:
		if i != 0 {
			return nil, fmt.Errorf("%w: phase row %d, want 0", ErrIndexOutOfRange, i)
		}
		return &t.phase, nil
	default:
		return nil, fmt.Errorf("%w: unknown block %d", ErrInvalidOperands, block)
	}
}

// eachWord calls fn for every word of v that overlaps bits [0, n), with
// padding bits masked off.
func (t *Tableau) eachWord(v *chunk.Vector, fn func(k int, w uint64)) {
	words := v.Words()
	last := (t.n - 1) / 64
	for k := 0; k <= last; k++ {
		w := words[k]
		if k == last && t.n%64 != 0 {
			w &= (uint64(1) << uint(t.n%64)) - 1
		}
		fn(k, w)
	}
}
