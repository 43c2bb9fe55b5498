package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordGeometry(t *testing.T) Geometry {
	t.Helper()
	g, err := NewGeometry(1)
	require.NoError(t, err)
	return g
}

func TestVector_New(t *testing.T) {
	g := wordGeometry(t)

	for _, tt := range []struct{ nBits, regs int }{{8, 1}, {63, 1}, {64, 2}, {127, 2}, {128, 3}} {
		v, err := NewVector(g, tt.nBits)
		require.NoError(t, err)
		assert.Equal(t, tt.regs, v.Len(), "nBits=%d", tt.nBits)
		assert.True(t, v.IsZero())
	}

	v, err := NewVector(DefaultGeometry, 1000)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1024, v.Bits())

	_, err = NewVector(g, -5)
	require.ErrorIs(t, err, ErrAllocation)
}

func TestVector_IdentityRow(t *testing.T) {
	v, err := NewIdentityRow(DefaultGeometry, 600, 513)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Popcount())
	assert.Equal(t, 513, v.FirstSet())
	assert.Equal(t, 1, v.FirstRegister())

	_, err = NewIdentityRow(DefaultGeometry, 600, 600)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = NewIdentityRow(DefaultGeometry, 600, -1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestVector_Registers(t *testing.T) {
	g := wordGeometry(t)
	v, err := NewVector(g, 128)
	require.NoError(t, err)

	r, err := v.Register(1)
	require.NoError(t, err)
	require.NoError(t, r.SetBit(5))

	got, err := v.GetBit(64 + 5)
	require.NoError(t, err)
	assert.True(t, got, "register view aliases the vector")

	_, err = v.Register(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

// TestVector_XorScenario checks register counts and XOR behavior for a
// 1024-bit vector split into 64-bit registers.
func TestVector_XorScenario(t *testing.T) {
	g := wordGeometry(t)

	a, err := NewVector(g, 1024)
	require.NoError(t, err)
	b, err := NewVector(g, 1024)
	require.NoError(t, err)
	assert.Equal(t, 17, a.Len())

	for i := 0; i < 1024; i += 2 {
		require.NoError(t, a.SetBit(i))
	}
	for i := 0; i < 1024; i += 3 {
		require.NoError(t, b.SetBit(i))
	}

	c := a.Clone()
	c.XorWith(&b)
	for i := 0; i < 1024; i++ {
		got, err := c.GetBit(i)
		require.NoError(t, err)
		assert.Equal(t, (i%2 == 0) != (i%3 == 0), got, "bit %d", i)
	}

	c.XorWith(&b)
	assert.True(t, c.Equal(&a), "xor is an involution")

	c.XorWith(&c)
	assert.True(t, c.IsZero())
	assert.False(t, a.IsZero(), "clone must not alias")
}

func TestVector_PartialXor(t *testing.T) {
	g := wordGeometry(t)
	a, _ := NewVector(g, 256)
	b, _ := NewVector(g, 256)
	for i := 0; i < 256; i += 5 {
		require.NoError(t, b.SetBit(i))
	}

	// b has support in register 0, so a partial xor from there equals a full xor.
	full := a.Clone()
	full.XorWith(&b)
	partial := a.Clone()
	partial.PartialXorWith(&b, b.FirstRegister())
	assert.True(t, full.Equal(&partial))

	// Registers below start are untouched.
	head := a.Clone()
	head.PartialXorWith(&b, 2)
	for i := 0; i < 128; i++ {
		got, _ := head.GetBit(i)
		assert.False(t, got, "bit %d", i)
	}
	got, _ := head.GetBit(130)
	assert.True(t, got)

	// Past the end is a no-op.
	tail := a.Clone()
	tail.PartialXorWith(&b, 100)
	assert.True(t, tail.IsZero())
}

func TestVector_AndXor(t *testing.T) {
	a, _ := NewVector(DefaultGeometry, 100)
	b, _ := NewVector(DefaultGeometry, 100)
	acc, _ := NewVector(DefaultGeometry, 100)
	require.NoError(t, a.SetBit(1))
	require.NoError(t, a.SetBit(2))
	require.NoError(t, b.SetBit(2))
	require.NoError(t, b.SetBit(3))
	require.NoError(t, acc.SetBit(2))

	acc.AndXorWith(&a, &b)
	assert.True(t, acc.IsZero())
}

func TestVector_NegateSwapBits(t *testing.T) {
	a, _ := NewVector(DefaultGeometry, 10)
	b, _ := NewVector(DefaultGeometry, 10)
	require.NoError(t, a.SetBit(4))
	require.NoError(t, b.FlipBit(9))

	a.Swap(&b)
	got, _ := a.GetBit(9)
	assert.True(t, got)
	got, _ = b.GetBit(4)
	assert.True(t, got)

	orig := a.Clone()
	a.Negate()
	assert.Equal(t, a.Bits()-1, a.Popcount())
	a.Negate()
	assert.True(t, a.Equal(&orig))

	require.NoError(t, a.FlipBit(9))
	assert.True(t, a.IsZero())
	assert.Equal(t, -1, a.FirstSet())
	assert.Equal(t, -1, a.FirstRegister())

	assert.ErrorIs(t, a.FlipBit(a.Bits()), ErrIndexOutOfRange)

	b.Reset()
	assert.True(t, b.IsZero())
	b.CopyFrom(&orig)
	assert.True(t, b.Equal(&orig))
}

func TestVector_ShapeMismatchPanics(t *testing.T) {
	a, _ := NewVector(DefaultGeometry, 10)
	b, _ := NewVector(DefaultGeometry, 1000)

	assert.Panics(t, func() { a.XorWith(&b) })
	assert.Panics(t, func() { a.PartialXorWith(&b, 0) })
	assert.Panics(t, func() { a.Swap(&b) })
	assert.False(t, a.Equal(&b))
}

func TestVector_RegisterNegateScenario(t *testing.T) {
	g := wordGeometry(t)
	a, _ := NewVector(g, 1024)
	b, _ := NewVector(g, 1024)

	for _, i := range []int{2, 3} {
		r, err := a.Register(i)
		require.NoError(t, err)
		r.Negate()
	}
	for i := 1; i < b.Len(); i += 2 {
		r, err := b.Register(i)
		require.NoError(t, err)
		r.Negate()
	}

	a.XorWith(&b)

	// Registers 3 cancel; 1 and 2 survive. Odd registers past 3 come from b.
	for i := 0; i < 256; i++ {
		got, _ := a.GetBit(i)
		assert.Equal(t, i >= 64 && i < 192, got, "bit %d", i)
	}
	r5, _ := a.Register(5)
	assert.Equal(t, 64, r5.Popcount())
}
