package tableau

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stabgo/testutil"
)

func TestTranspose64(t *testing.T) {
	rng := testutil.NewRNG(42)
	var a, orig [tileBits]uint64
	rng.FillWords(a[:])
	orig = a

	transpose64(&a)
	for r := 0; r < tileBits; r++ {
		for c := 0; c < tileBits; c++ {
			want := orig[c]>>uint(r)&1 == 1
			got := a[r]>>uint(c)&1 == 1
			if want != got {
				t.Fatalf("element (%d,%d): got %v, want %v", r, c, got, want)
			}
		}
	}

	transpose64(&a)
	assert.Equal(t, orig, a, "transpose is an involution")
}

func TestFlipLayout_ReadBitConsistency(t *testing.T) {
	for _, n := range []int{1, 5, 64, 65, 200} {
		tab, err := New(n, WithGeometry(wordGeometry(t)))
		require.NoError(t, err)
		scramble(t, tab, testutil.NewRNG(int64(n)), 3*n)

		x0, z0, r0 := snapshotBits(t, tab)

		// Lazy: nothing moves until storage is touched.
		tab.FlipLayout()
		assert.Equal(t, RowMajor, tab.Layout())
		assert.Equal(t, 0, tab.Transposes())
		x1, z1, r1 := snapshotBits(t, tab)
		assert.Equal(t, x0, x1, "n=%d", n)
		assert.Equal(t, z0, z1, "n=%d", n)
		assert.Equal(t, r0, r1, "n=%d", n)

		// Force the physical transpose and read again.
		_, err = tab.Weight(BlockX, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, tab.Transposes())
		x2, z2, r2 := snapshotBits(t, tab)
		assert.Equal(t, x0, x2, "n=%d", n)
		assert.Equal(t, z0, z2, "n=%d", n)
		assert.Equal(t, r0, r2, "n=%d", n)

		// And back.
		tab.FlipLayout()
		require.NoError(t, tab.ApplyIdentity(0))
		_, err = tab.Weight(BlockZ, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, tab.Transposes())
		x3, z3, _ := snapshotBits(t, tab)
		assert.Equal(t, x0, x3, "n=%d", n)
		assert.Equal(t, z0, z3, "n=%d", n)
	}
}

func TestFlipLayout_DoubleFlipMovesNothing(t *testing.T) {
	tab, err := New(100)
	require.NoError(t, err)

	tab.FlipLayout()
	tab.FlipLayout()
	require.NoError(t, tab.ApplyHadamard(0))
	assert.Equal(t, 0, tab.Transposes())

	tab.SetLayout(ColumnMajor)
	tab.SetLayout(RowMajor)
	require.NoError(t, tab.SwapGenerators(0, 1))
	assert.Equal(t, 1, tab.Transposes())
}

func TestTranspose_PaddingCleared(t *testing.T) {
	tab, err := New(70, WithGeometry(wordGeometry(t)))
	require.NoError(t, err)
	require.NoError(t, tab.Negate(BlockX))

	tab.FlipLayout()
	_, err = tab.Weight(BlockX, 0)
	require.NoError(t, err)

	for i := range tab.x {
		assert.Equal(t, 70, tab.x[i].Popcount(), "row %d keeps only matrix bits", i)
	}
}

func TestTranspose_ParallelMatchesSerial(t *testing.T) {
	const n = parallelTransposeMin + 37

	serial, err := New(n, WithParallelTranspose(false))
	require.NoError(t, err)
	scramble(t, serial, testutil.NewRNG(9), 2*n)

	parallel, err := serial.Clone()
	require.NoError(t, err)
	parallel.parallel = true

	serial.FlipLayout()
	parallel.FlipLayout()
	assert.True(t, serial.Equal(parallel))
	assert.Equal(t, 1, serial.Transposes())
	assert.Equal(t, 1, parallel.Transposes())
}

func BenchmarkTranspose(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			tab, err := New(n)
			require.NoError(b, err)
			b.SetBytes(int64(tab.MemoryBytes()))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tab.FlipLayout()
				tab.sync()
			}
		})
	}
}

func BenchmarkCNOT(b *testing.B) {
	for _, n := range []int{256, 4096} {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			tab, err := New(n)
			require.NoError(b, err)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tab.ApplyCNOT(i%n, (i+1)%n)
			}
		})
	}
}
