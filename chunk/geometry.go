package chunk

import (
	"fmt"
	"math"

	"github.com/hupe1980/stabgo/internal/mem"
)

const (
	// WordBits is the number of bits per storage word.
	WordBits = 64

	// CacheLineBytes is the size of the default register.
	CacheLineBytes = mem.Alignment

	// DefaultWords is the number of words in a default register (one cache line).
	DefaultWords = CacheLineBytes / mem.WordBytes
)

// DefaultGeometry is a register of exactly one cache line (512 bits).
var DefaultGeometry = Geometry{words: DefaultWords}

// Geometry fixes the register width used by registers, vectors and arenas.
// The zero value behaves like DefaultGeometry.
type Geometry struct {
	words int
}

// NewGeometry returns a geometry with the given number of 64-bit words per register.
func NewGeometry(words int) (Geometry, error) {
	if words < 1 {
		return Geometry{}, fmt.Errorf("%w: %d words per register", ErrInvalidGeometry, words)
	}
	return Geometry{words: words}, nil
}

// Words returns the number of words per register.
func (g Geometry) Words() int {
	if g.words == 0 {
		return DefaultWords
	}
	return g.words
}

// RegisterBits returns the number of bits per register.
func (g Geometry) RegisterBits() int {
	return g.Words() * WordBits
}

// RegisterBytes returns the number of bytes per register.
func (g Geometry) RegisterBytes() int {
	return g.Words() * mem.WordBytes
}

// RegistersFor returns how many registers a vector covering nBits holds.
//
// The count is nBits/RegisterBits + 1: a vector always carries at least one bit
// of slack past its logical length, so 64 bits in a 64-bit register geometry
// take two registers.
func (g Geometry) RegistersFor(nBits int) int {
	return nBits/g.RegisterBits() + 1
}

// WordsFor returns the number of words in a vector covering nBits.
func (g Geometry) WordsFor(nBits int) int {
	return g.RegistersFor(nBits) * g.Words()
}

// ArenaWords returns the word count of count vectors covering nBits each.
// It fails with ErrAllocation when the total would overflow or exceed the
// largest allocation the runtime can serve.
func (g Geometry) ArenaWords(nBits, count int) (int, error) {
	if nBits < 0 || count < 0 {
		return 0, fmt.Errorf("%w: negative shape %dx%d", ErrAllocation, count, nBits)
	}
	stride := g.WordsFor(nBits)
	if count != 0 && stride > math.MaxInt/count {
		return 0, fmt.Errorf("%w: %d vectors of %d bits overflow", ErrAllocation, count, nBits)
	}
	total := stride * count
	if total > mem.MaxWords {
		return 0, fmt.Errorf("%w: %d words exceed the %d byte allocation limit", ErrAllocation, total, mem.MaxBytes)
	}
	return total, nil
}

// String returns a compact description of the geometry.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx64", g.Words())
}
