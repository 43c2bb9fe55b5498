package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/stabgo/internal/conv"
	"github.com/hupe1980/stabgo/internal/hash"
	"github.com/hupe1980/stabgo/tableau"
)

const (
	// Version is the current format version.
	Version uint16 = 1

	// HeaderSize is the encoded header length in bytes.
	HeaderSize = 28

	// maxRawLen bounds the decompression buffer a header may ask for.
	maxRawLen = 1 << 40
)

var magic = [4]byte{'S', 'T', 'A', 'B'}

var (
	// ErrBadMagic is returned when data does not start with the snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion is returned for format versions this build cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrUnsupportedCompression is returned for unknown compression codes.
	ErrUnsupportedCompression = errors.New("snapshot: unsupported compression")

	// ErrTruncated is returned when data is shorter than its header claims.
	ErrTruncated = errors.New("snapshot: truncated")

	// ErrCorrupt is returned for headers with impossible lengths and payloads
	// that do not decompress to the length the header records.
	ErrCorrupt = errors.New("snapshot: corrupt")
)

// ErrChecksum is returned when the payload checksum does not match.
type ErrChecksum struct {
	Want uint32
	Got  uint32
}

func (e *ErrChecksum) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: header %08x, payload %08x", e.Want, e.Got)
}

// Header describes an encoded snapshot.
type Header struct {
	Version     uint16
	Compression Compression
	RawLen      uint64
	PayloadLen  uint64
	Checksum    uint32
}

// Size returns the full encoded length, header included.
func (h Header) Size() int64 {
	return HeaderSize + int64(h.PayloadLen)
}

// Encode snapshots t, compressing the payload with c when that helps.
func Encode(t *tableau.Tableau, c Compression) ([]byte, error) {
	raw, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return nil, err
	}

	h := Header{
		Version:     Version,
		Compression: used,
		RawLen:      uint64(len(raw)),
		PayloadLen:  uint64(len(payload)),
		Checksum:    hash.CRC32C(payload),
	}

	out := make([]byte, HeaderSize, HeaderSize+len(payload))
	h.put(out)
	return append(out, payload...), nil
}

// ReadHeader parses and checks the fixed header of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return Header{}, ErrBadMagic
	}

	h := Header{
		Version:     binary.LittleEndian.Uint16(data[4:]),
		Compression: Compression(data[6]),
		RawLen:      binary.LittleEndian.Uint64(data[8:]),
		PayloadLen:  binary.LittleEndian.Uint64(data[16:]),
		Checksum:    binary.LittleEndian.Uint32(data[24:]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedCompression, h.Compression)
	}
	if h.RawLen > maxRawLen || (h.Compression == CompressionNone && h.RawLen != h.PayloadLen) {
		return Header{}, fmt.Errorf("%w: raw %d, payload %d", ErrCorrupt, h.RawLen, h.PayloadLen)
	}
	return h, nil
}

// Decode verifies data and rebuilds the tableau. opts apply to the new
// tableau, for example a memory budget.
func Decode(data []byte, opts ...tableau.Option) (*tableau.Tableau, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) < h.PayloadLen {
		return nil, fmt.Errorf("%w: payload %d of %d bytes", ErrTruncated, len(body), h.PayloadLen)
	}
	payload := body[:h.PayloadLen]

	if sum := hash.CRC32C(payload); sum != h.Checksum {
		return nil, &ErrChecksum{Want: h.Checksum, Got: sum}
	}

	rawLen, err := conv.Uint64ToInt(h.RawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := checkRawLen(len(payload), rawLen, h.Compression); err != nil {
		return nil, err
	}

	// The decompressed copy lives until the tableau is built from it.
	if h.Compression != CompressionNone {
		rc := tableau.MemoryBudget(opts...)
		if err := rc.AcquireMemory(int64(rawLen)); err != nil {
			return nil, fmt.Errorf("%w: %d byte %s payload: %w", tableau.ErrAllocation, rawLen, h.Compression, err)
		}
		defer rc.ReleaseMemory(int64(rawLen))
	}

	raw, err := decompress(payload, h.Compression, rawLen)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s payload: %w", h.Compression, err)
	}
	return tableau.Decode(raw, opts...)
}

func (h Header) put(dst []byte) {
	copy(dst[0:4], magic[:])
	binary.LittleEndian.PutUint16(dst[4:], h.Version)
	dst[6] = byte(h.Compression)
	dst[7] = 0
	binary.LittleEndian.PutUint64(dst[8:], h.RawLen)
	binary.LittleEndian.PutUint64(dst[16:], h.PayloadLen)
	binary.LittleEndian.PutUint32(dst[24:], h.Checksum)
}
