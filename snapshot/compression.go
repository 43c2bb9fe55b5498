package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the payload codec.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// minSavings is the compressed/raw ratio above which the payload is stored raw.
const minSavings = 0.9

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Compression) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compression) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxRawLen),
	)
}

// compress returns the payload for data and the codec actually used.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if len(data) == 0 {
		return data, CompressionNone, nil
	}

	var (
		out []byte
		err error
	)
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		out, err = compressLZ4(data)
	case CompressionZSTD:
		out, err = compressZSTD(data)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
	if err != nil {
		return nil, 0, err
	}

	if len(out) == 0 || float64(len(out)) > float64(len(data))*minSavings {
		return data, CompressionNone, nil
	}
	return out, c, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible.
	return buf[:n], nil
}

func compressZSTD(data []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

// lz4MaxRatio bounds how far an LZ4 block can expand: a match token adds at
// most 255 bytes of output per input byte.
const lz4MaxRatio = 255

// checkRawLen rejects raw lengths the payload cannot decompress to.
func checkRawLen(payloadLen, rawLen int, c Compression) error {
	switch c {
	case CompressionNone:
		if payloadLen != rawLen {
			return fmt.Errorf("%w: raw %d, payload %d", ErrCorrupt, rawLen, payloadLen)
		}
	case CompressionLZ4:
		if rawLen/lz4MaxRatio > payloadLen {
			return fmt.Errorf("%w: lz4 payload of %d bytes cannot hold %d", ErrCorrupt, payloadLen, rawLen)
		}
	}
	return nil
}

// decompress expands payload to exactly rawLen bytes. Output never grows
// past rawLen+1 bytes, whatever the payload claims.
func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	if err := checkRawLen(len(payload), rawLen, c); err != nil {
		return nil, err
	}

	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("%w: lz4 yielded %d of %d bytes", ErrCorrupt, n, rawLen)
		}
		return out, nil
	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = dec.Reset(nil)
			zstdDecoderPool.Put(dec)
		}()
		// Streamed so a frame that expands past rawLen stops at the limit.
		if err := dec.Reset(bytes.NewReader(payload)); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		out, err := io.ReadAll(io.LimitReader(dec, int64(rawLen)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(out) != rawLen {
			return nil, fmt.Errorf("%w: zstd yielded %d bytes, header says %d", ErrCorrupt, len(out), rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
