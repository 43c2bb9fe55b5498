package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/stabgo/circuit"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillWords fills dst with random words.
func (r *RNG) FillWords(dst []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Uint64()
	}
}

// Pair returns two distinct indices in [0,n). n must be at least 2.
func (r *RNG) Pair(n int) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairLocked(n)
}

func (r *RNG) pairLocked(n int) (int, int) {
	a := r.rand.Intn(n)
	b := r.rand.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// CircuitOptions shapes RandomCircuit output.
type CircuitOptions struct {
	// Ops restricts the operations drawn. Defaults to every gate except flip.
	Ops []circuit.Op

	// FlipEvery inserts a pair of layout flips after every FlipEvery gates.
	// Zero means no flips.
	FlipEvery int
}

// RandomCircuit returns a valid circuit of gates drawn uniformly from opts.Ops.
// Two-qubit gates are skipped when n is 1.
func (r *RNG) RandomCircuit(n, gates int, opts CircuitOptions) *circuit.Circuit {
	ops := opts.Ops
	if len(ops) == 0 {
		for _, op := range circuit.Ops() {
			if op != circuit.OpFlip {
				ops = append(ops, op)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := circuit.New(n)
	for len(c.Instructions) < gates {
		op := ops[r.rand.Intn(len(ops))]
		switch op.Arity() {
		case 0:
			c.Flip()
		case 2:
			if n < 2 {
				continue
			}
			ctrl, targ := r.pairLocked(n)
			c.Controlled(op, ctrl, targ)
		default:
			c.Gate(op, r.rand.Intn(n))
		}
		if opts.FlipEvery > 0 && len(c.Instructions)%opts.FlipEvery == 0 {
			c.Flip().Flip()
		}
	}
	return c
}
