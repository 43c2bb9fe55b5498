package chunk

import (
	"fmt"

	"github.com/hupe1980/stabgo/internal/mem"
)

// Arena holds count equally shaped vectors in one aligned allocation.
//
// Vectors handed out by an Arena are views: they stay valid for the lifetime
// of the arena and never move.
type Arena struct {
	geom   Geometry
	nBits  int
	count  int
	stride int
	words  []uint64
}

// NewArena allocates count zeroed vectors covering nBits bits each.
func NewArena(g Geometry, nBits, count int) (*Arena, error) {
	total, err := g.ArenaWords(nBits, count)
	if err != nil {
		return nil, err
	}
	a := &Arena{
		geom:   g,
		nBits:  nBits,
		count:  count,
		stride: g.WordsFor(nBits),
	}
	if total > 0 {
		a.words = mem.AllocAlignedWords(total)
		if a.words == nil {
			return nil, fmt.Errorf("%w: %d words", ErrAllocation, total)
		}
	}
	return a, nil
}

// Vector returns a view of vector i.
func (a *Arena) Vector(i int) (Vector, error) {
	if i < 0 || i >= a.count {
		return Vector{}, fmt.Errorf("%w: vector %d of %d", ErrIndexOutOfRange, i, a.count)
	}
	off := i * a.stride
	return Vector{geom: a.geom, words: a.words[off : off+a.stride : off+a.stride]}, nil
}

// Vectors returns views of all vectors in order.
func (a *Arena) Vectors() []Vector {
	out := make([]Vector, a.count)
	for i := range out {
		off := i * a.stride
		out[i] = Vector{geom: a.geom, words: a.words[off : off+a.stride : off+a.stride]}
	}
	return out
}

// Count returns the number of vectors.
func (a *Arena) Count() int { return a.count }

// Stride returns the number of words per vector.
func (a *Arena) Stride() int { return a.stride }

// Geometry returns the register geometry.
func (a *Arena) Geometry() Geometry { return a.geom }

// Words exposes the whole backing allocation.
func (a *Arena) Words() []uint64 { return a.words }

// Size returns the arena footprint in bytes.
func (a *Arena) Size() int {
	return len(a.words) * mem.WordBytes
}
