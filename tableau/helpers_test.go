package tableau

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/testutil"
)

func wordGeometry(t testing.TB) chunk.Geometry {
	t.Helper()
	g, err := chunk.NewGeometry(1)
	require.NoError(t, err)
	return g
}

// scramble applies random column gates so tests start from non-trivial states.
func scramble(t testing.TB, tab *Tableau, rng *testutil.RNG, gates int) {
	t.Helper()
	n := tab.QubitCount()
	for i := 0; i < gates; i++ {
		switch k := rng.Intn(5); {
		case k == 0 && n > 1:
			c, tg := rng.Pair(n)
			require.NoError(t, tab.ApplyCNOT(c, tg))
		case k == 1:
			require.NoError(t, tab.ApplyHadamard(rng.Intn(n)))
		case k == 2:
			require.NoError(t, tab.ApplyPhase(rng.Intn(n)))
		case k == 3:
			require.NoError(t, tab.ApplyPauliX(rng.Intn(n)))
		default:
			require.NoError(t, tab.ApplyHadamard(rng.Intn(n)))
			require.NoError(t, tab.ApplyPhaseDagger(rng.Intn(n)))
		}
	}
}

// snapshotBits reads every X and Z bit as (generator, qubit) plus the phases.
func snapshotBits(t testing.TB, tab *Tableau) (x, z [][]bool, r []bool) {
	t.Helper()
	n := tab.QubitCount()
	x = make([][]bool, n)
	z = make([][]bool, n)
	r = make([]bool, n)
	for g := 0; g < n; g++ {
		x[g] = make([]bool, n)
		z[g] = make([]bool, n)
		for q := 0; q < n; q++ {
			row, col := g, q
			if tab.Layout() == ColumnMajor {
				row, col = q, g
			}
			var err error
			x[g][q], err = tab.ReadBit(BlockX, row, col)
			require.NoError(t, err)
			z[g][q], err = tab.ReadBit(BlockZ, row, col)
			require.NoError(t, err)
		}
		var err error
		r[g], err = tab.ReadBit(BlockPhase, g, 0)
		require.NoError(t, err)
	}
	return x, z, r
}

// pauli is a reference Pauli string with an i^k global factor.
type pauli struct {
	logI int
	x, z []bool
}

func generator(t testing.TB, tab *Tableau, g int) pauli {
	t.Helper()
	x, z, r := snapshotBits(t, tab)
	p := pauli{x: x[g], z: z[g]}
	if r[g] {
		p.logI = 2
	}
	return p
}

// mul returns p*q one qubit at a time.
func (p pauli) mul(q pauli) pauli {
	out := pauli{logI: p.logI + q.logI, x: make([]bool, len(p.x)), z: make([]bool, len(p.x))}
	for k := range p.x {
		out.logI += singleLogI(p.x[k], p.z[k], q.x[k], q.z[k])
		out.x[k] = p.x[k] != q.x[k]
		out.z[k] = p.z[k] != q.z[k]
	}
	out.logI &= 3
	return out
}

// singleLogI is the exponent of i in the product of two single-qubit Paulis.
func singleLogI(x1, z1, x2, z2 bool) int {
	type p struct{ x, z bool }
	a, b := p{x1, z1}, p{x2, z2}
	var (
		X = p{true, false}
		Y = p{true, true}
		Z = p{false, true}
	)
	switch {
	case a == X && b == Y, a == Y && b == Z, a == Z && b == X:
		return 1
	case a == Y && b == X, a == Z && b == Y, a == X && b == Z:
		return 3
	default:
		return 0
	}
}
