package tableau

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/internal/conv"
	"github.com/hupe1980/stabgo/internal/mem"
)

// headerSize is n (u64) + words per register (u32) + layout (u8) + 3 reserved bytes.
const headerSize = 16

// MarshalBinary encodes the tableau as little-endian words:
// header, X rows, Z rows and the phase vector, rows in logical order.
func (t *Tableau) MarshalBinary() ([]byte, error) {
	t.sync()

	stride := t.x[0].Len() * t.geom.Words()
	buf := make([]byte, headerSize, headerSize+(2*t.n+1)*stride*mem.WordBytes)
	binary.LittleEndian.PutUint64(buf[0:], uint64(t.n))
	binary.LittleEndian.PutUint32(buf[8:], uint32(t.geom.Words()))
	buf[12] = byte(t.layout)

	for i := range t.x {
		buf = appendWords(buf, t.x[i].Words())
	}
	for i := range t.z {
		buf = appendWords(buf, t.z[i].Words())
	}
	buf = appendWords(buf, t.phase.Words())
	return buf, nil
}

// UnmarshalBinary replaces t with the encoded tableau. Options given to the
// original constructor, such as a memory budget, are kept.
func (t *Tableau) UnmarshalBinary(data []byte) error {
	o := options{geometry: t.geom, budget: t.budget, parallel: t.parallel}
	if t.arena == nil {
		o = defaultOptions()
	}
	d, err := decode(data, o)
	if err != nil {
		return err
	}
	t.Close()
	*t = *d
	return nil
}

// Decode builds a new tableau from MarshalBinary output. The geometry stored
// in data overrides WithGeometry.
func Decode(data []byte, opts ...Option) (*Tableau, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return decode(data, o)
}

func decode(data []byte, o options) (*Tableau, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformed, len(data), headerSize)
	}
	n64 := binary.LittleEndian.Uint64(data[0:])
	words := binary.LittleEndian.Uint32(data[8:])
	layout := Layout(data[12])

	if n64 < 1 || n64 > uint64(mem.MaxWords) {
		return nil, fmt.Errorf("%w: qubit count %d", ErrMalformed, n64)
	}
	if layout != ColumnMajor && layout != RowMajor {
		return nil, fmt.Errorf("%w: layout %d", ErrMalformed, layout)
	}
	w, err := conv.Uint32ToInt(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	g, err := chunk.NewGeometry(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	n, err := conv.Uint64ToInt(n64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	total, err := g.ArenaWords(n, 2*n+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if want := headerSize + total*mem.WordBytes; len(data) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformed, len(data), want)
	}

	o.geometry = g
	t, err := allocate(n, o)
	if err != nil {
		return nil, err
	}

	body := data[headerSize:]
	for i := range t.x {
		body = readWords(t.x[i].Words(), body)
	}
	for i := range t.z {
		body = readWords(t.z[i].Words(), body)
	}
	readWords(t.phase.Words(), body)

	t.layout, t.physical = layout, layout
	return t, nil
}

func appendWords(buf []byte, words []uint64) []byte {
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return buf
}

func readWords(dst []uint64, src []byte) []byte {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(src[i*mem.WordBytes:])
	}
	return src[len(dst)*mem.WordBytes:]
}
