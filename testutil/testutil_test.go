package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stabgo/circuit"
)

func TestRandomCircuit(t *testing.T) {
	rng := NewRNG(4711)

	c := rng.RandomCircuit(16, 500, CircuitOptions{})
	require.NoError(t, c.Validate())
	assert.Equal(t, 500, c.Len())
	assert.Zero(t, c.Counts()[circuit.OpFlip])

	rng.Reset()
	again := rng.RandomCircuit(16, 500, CircuitOptions{})
	assert.Equal(t, c, again, "same seed, same circuit")
}

func TestRandomCircuit_Options(t *testing.T) {
	rng := NewRNG(1)

	c := rng.RandomCircuit(1, 50, CircuitOptions{Ops: []circuit.Op{circuit.OpH, circuit.OpCNOT}})
	require.NoError(t, c.Validate())
	assert.Equal(t, map[circuit.Op]int{circuit.OpH: 50}, c.Counts())

	c = rng.RandomCircuit(8, 10, CircuitOptions{Ops: []circuit.Op{circuit.OpS}, FlipEvery: 5})
	require.NoError(t, c.Validate())
	assert.Equal(t, 4, c.Counts()[circuit.OpFlip])
}

func TestPair(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 100; i++ {
		a, b := rng.Pair(3)
		assert.NotEqual(t, a, b)
		assert.Less(t, a, 3)
		assert.Less(t, b, 3)
	}
}

func TestFillWords(t *testing.T) {
	rng := NewRNG(3)
	dst := make([]uint64, 8)
	rng.FillWords(dst)
	assert.NotEqual(t, make([]uint64, 8), dst)
	assert.Equal(t, int64(3), rng.Seed())
}
