package chunk

import (
	"fmt"

	"github.com/hupe1980/stabgo/internal/mem"
	"github.com/hupe1980/stabgo/internal/simd"
)

// Vector is an ordered sequence of registers.
//
// Vectors that take part in a binary operation must have the same geometry and
// register count. Mismatched shapes are a programming error and panic, the same
// way mismatched slice lengths do in crypto/subtle.
type Vector struct {
	geom  Geometry
	words []uint64
}

// NewVector returns a zeroed vector large enough to hold nBits bits.
func NewVector(g Geometry, nBits int) (Vector, error) {
	words, err := g.ArenaWords(nBits, 1)
	if err != nil {
		return Vector{}, err
	}
	buf := mem.AllocAlignedWords(words)
	if buf == nil {
		return Vector{}, fmt.Errorf("%w: %d words", ErrAllocation, words)
	}
	return Vector{geom: g, words: buf}, nil
}

// NewIdentityRow returns a zeroed vector covering nBits with only bit row set.
func NewIdentityRow(g Geometry, nBits, row int) (Vector, error) {
	if row < 0 || row >= nBits {
		return Vector{}, fmt.Errorf("%w: identity row %d of %d", ErrIndexOutOfRange, row, nBits)
	}
	v, err := NewVector(g, nBits)
	if err != nil {
		return Vector{}, err
	}
	v.words[row>>6] = 1 << (uint(row) & 63)
	return v, nil
}

// Geometry returns the register geometry of the vector.
func (v *Vector) Geometry() Geometry { return v.geom }

// Len returns the number of registers.
func (v *Vector) Len() int {
	return len(v.words) / v.geom.Words()
}

// Bits returns the bit capacity of the vector.
func (v *Vector) Bits() int {
	return len(v.words) * WordBits
}

// Words exposes the backing words. The slice aliases the vector.
func (v *Vector) Words() []uint64 { return v.words }

// Register returns a view of register i.
func (v *Vector) Register(i int) (Register, error) {
	if i < 0 || i >= v.Len() {
		return nil, fmt.Errorf("%w: register %d of %d", ErrIndexOutOfRange, i, v.Len())
	}
	w := v.geom.Words()
	return Register(v.words[i*w : (i+1)*w : (i+1)*w]), nil
}

// GetBit reports whether global bit i is set.
func (v *Vector) GetBit(i int) (bool, error) {
	if err := v.check(i); err != nil {
		return false, err
	}
	return v.words[i>>6]&(1<<(uint(i)&63)) != 0, nil
}

// SetBit sets global bit i.
func (v *Vector) SetBit(i int) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.words[i>>6] |= 1 << (uint(i) & 63)
	return nil
}

// ClearBit clears global bit i.
func (v *Vector) ClearBit(i int) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.words[i>>6] &^= 1 << (uint(i) & 63)
	return nil
}

// FlipBit toggles global bit i.
func (v *Vector) FlipBit(i int) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.words[i>>6] ^= 1 << (uint(i) & 63)
	return nil
}

// XorWith performs v ^= other register by register.
func (v *Vector) XorWith(other *Vector) {
	mustSameLen(len(v.words), len(other.words))
	simd.XorWords(v.words, other.words)
}

// PartialXorWith performs v ^= other on registers [start, Len()).
// Registers before start are untouched. A start past the end is a no-op.
func (v *Vector) PartialXorWith(other *Vector, start int) {
	mustSameLen(len(v.words), len(other.words))
	if start < 0 {
		start = 0
	}
	off := start * v.geom.Words()
	if off >= len(v.words) {
		return
	}
	simd.XorWords(v.words[off:], other.words[off:])
}

// AndXorWith performs v ^= a & b.
func (v *Vector) AndXorWith(a, b *Vector) {
	mustSameLen(len(v.words), len(a.words))
	mustSameLen(len(v.words), len(b.words))
	simd.AndXorWords(v.words, a.words, b.words)
}

// Negate flips every bit, padding included.
func (v *Vector) Negate() {
	simd.NotWords(v.words)
}

// Swap exchanges the contents of v and other.
func (v *Vector) Swap(other *Vector) {
	mustSameLen(len(v.words), len(other.words))
	simd.SwapWords(v.words, other.words)
}

// CopyFrom overwrites v with the contents of other.
func (v *Vector) CopyFrom(other *Vector) {
	mustSameLen(len(v.words), len(other.words))
	copy(v.words, other.words)
}

// Reset clears every bit.
func (v *Vector) Reset() {
	clear(v.words)
}

// Equal reports whether both vectors have the same shape and bits.
func (v *Vector) Equal(other *Vector) bool {
	return simd.EqualWords(v.words, other.words)
}

// IsZero reports whether no bit is set.
func (v *Vector) IsZero() bool {
	return simd.IsZeroWords(v.words)
}

// Popcount returns the number of set bits.
func (v *Vector) Popcount() int {
	return simd.PopcountWords(v.words)
}

// FirstSet returns the index of the lowest set bit, or -1 when the vector is zero.
func (v *Vector) FirstSet() int {
	return simd.FirstSetWord(v.words)
}

// FirstRegister returns the index of the first register with a set bit, or -1.
func (v *Vector) FirstRegister() int {
	i := v.FirstSet()
	if i < 0 {
		return -1
	}
	return i / v.geom.RegisterBits()
}

// Clone returns an independent copy of v with its own aligned storage.
func (v *Vector) Clone() Vector {
	buf := mem.AllocAlignedWords(len(v.words))
	copy(buf, v.words)
	return Vector{geom: v.geom, words: buf}
}

func (v *Vector) check(i int) error {
	if i < 0 || i >= v.Bits() {
		return fmt.Errorf("%w: bit %d of %d-bit vector", ErrIndexOutOfRange, i, v.Bits())
	}
	return nil
}
