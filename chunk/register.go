package chunk

import (
	"fmt"

	"github.com/hupe1980/stabgo/internal/mem"
	"github.com/hupe1980/stabgo/internal/simd"
)

// Register is a fixed-width run of words holding RegisterBits bits.
//
// A Register obtained from NewRegister owns its storage. A Register obtained
// from Vector.Register is a view into the vector and shares its words.
type Register []uint64

// NewRegister returns a zeroed, 64-byte aligned register of the given geometry.
func NewRegister(g Geometry) Register {
	return Register(mem.AllocAlignedWords(g.Words()))
}

// Bits returns the number of bits in the register.
func (r Register) Bits() int {
	return len(r) * WordBits
}

// GetBit reports whether bit i is set.
func (r Register) GetBit(i int) (bool, error) {
	if err := r.check(i); err != nil {
		return false, err
	}
	return r[i>>6]&(1<<(uint(i)&63)) != 0, nil
}

// SetBit sets bit i to one.
func (r Register) SetBit(i int) error {
	if err := r.check(i); err != nil {
		return err
	}
	r[i>>6] |= 1 << (uint(i) & 63)
	return nil
}

// ClearBit sets bit i to zero.
func (r Register) ClearBit(i int) error {
	if err := r.check(i); err != nil {
		return err
	}
	r[i>>6] &^= 1 << (uint(i) & 63)
	return nil
}

// XorWith performs r ^= other. Both registers must share a geometry.
func (r Register) XorWith(other Register) {
	mustSameLen(len(r), len(other))
	simd.XorWords(r, other)
}

// Negate flips every bit of the register.
func (r Register) Negate() {
	simd.NotWords(r)
}

// IsZero reports whether no bit is set.
func (r Register) IsZero() bool {
	return simd.IsZeroWords(r)
}

// Popcount returns the number of set bits.
func (r Register) Popcount() int {
	return simd.PopcountWords(r)
}

// Equal reports whether both registers hold the same bits.
func (r Register) Equal(other Register) bool {
	return simd.EqualWords(r, other)
}

func (r Register) check(i int) error {
	if i < 0 || i >= r.Bits() {
		return fmt.Errorf("%w: bit %d of %d-bit register", ErrIndexOutOfRange, i, r.Bits())
	}
	return nil
}

func mustSameLen(a, b int) {
	if a != b {
		panic(fmt.Sprintf("chunk: shape mismatch (%d words vs %d words)", a, b))
	}
}
