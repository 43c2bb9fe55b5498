package snapshot

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stabgo/internal/hash"
	"github.com/hupe1980/stabgo/resource"
	"github.com/hupe1980/stabgo/tableau"
	"github.com/hupe1980/stabgo/testutil"
)

func newTableau(t *testing.T, n int) *tableau.Tableau {
	t.Helper()
	tab, err := tableau.New(n)
	require.NoError(t, err)

	rng := testutil.NewRNG(int64(n))
	for i := 0; i < n; i++ {
		c, tg := rng.Pair(n)
		require.NoError(t, tab.ApplyHadamard(c))
		require.NoError(t, tab.ApplyCNOT(c, tg))
		require.NoError(t, tab.ApplyPhase(tg))
	}
	return tab
}

func TestEncodeDecode(t *testing.T) {
	tab := newTableau(t, 300)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(tab, c)
			require.NoError(t, err)

			h, err := ReadHeader(data)
			require.NoError(t, err)
			assert.Equal(t, Version, h.Version)
			assert.Equal(t, c, h.Compression, "padding-heavy tableaux compress well")
			assert.Equal(t, int64(len(data)), h.Size())

			back, err := Decode(data)
			require.NoError(t, err)
			assert.True(t, tab.Equal(back))
		})
	}
}

func TestEncode_FallsBackToRaw(t *testing.T) {
	// A dense random X block leaves little for the codecs to find.
	tab, err := tableau.New(64)
	require.NoError(t, err)
	rng := testutil.NewRNG(1)
	for i := 0; i < 64*64; i++ {
		c, tg := rng.Pair(64)
		require.NoError(t, tab.ApplyHadamard(c))
		require.NoError(t, tab.ApplyCNOT(c, tg))
	}
	raw, err := tab.MarshalBinary()
	require.NoError(t, err)

	payload, used, err := compress(raw, CompressionLZ4)
	require.NoError(t, err)
	if used == CompressionNone {
		assert.Equal(t, raw, payload)
	} else {
		assert.LessOrEqual(t, float64(len(payload)), float64(len(raw))*minSavings)
	}

	payload, used, err = compress([]byte{1, 2, 3, 4, 5, 6, 7, 8}, CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, used, "tiny inputs never shrink")
	assert.Len(t, payload, 8)
}

func TestDecode_Errors(t *testing.T) {
	tab := newTableau(t, 20)
	data, err := Encode(tab, CompressionLZ4)
	require.NoError(t, err)

	mutate := func(f func([]byte)) []byte {
		c := append([]byte(nil), data...)
		f(c)
		return c
	}

	_, err = Decode(data[:10])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(mutate(func(b []byte) { b[0] = 'X' }))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode(mutate(func(b []byte) { binary.LittleEndian.PutUint16(b[4:], 9) }))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(mutate(func(b []byte) { b[6] = 7 }))
	assert.ErrorIs(t, err, ErrUnsupportedCompression)

	_, err = Decode(mutate(func(b []byte) { binary.LittleEndian.PutUint64(b[8:], 1<<50) }))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(mutate(func(b []byte) { b[HeaderSize+3] ^= 0xFF }))
	var ce *ErrChecksum
	require.ErrorAs(t, err, &ce)
	assert.NotEqual(t, ce.Want, ce.Got)
}

// forge builds a snapshot with a valid checksum around an arbitrary payload.
func forge(c Compression, rawLen uint64, payload []byte) []byte {
	h := Header{
		Version:     Version,
		Compression: c,
		RawLen:      rawLen,
		PayloadLen:  uint64(len(payload)),
		Checksum:    hash.CRC32C(payload),
	}
	data := make([]byte, HeaderSize+len(payload))
	h.put(data)
	copy(data[HeaderSize:], payload)
	return data
}

func TestDecode_HostileRawLen(t *testing.T) {
	zstdPayload, err := compressZSTD(make([]byte, 4096))
	require.NoError(t, err)

	t.Run("lz4 beyond max ratio", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
		_, err := Decode(forge(CompressionLZ4, 1<<40-1, []byte{0}), tableau.WithMemoryBudget(rc))
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Zero(t, rc.MemoryUsage())
	})

	t.Run("lz4 without budget", func(t *testing.T) {
		_, err := Decode(forge(CompressionLZ4, 1<<40-1, []byte{0}))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("zstd over budget", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
		_, err := Decode(forge(CompressionZSTD, 1<<40-1, zstdPayload), tableau.WithMemoryBudget(rc))
		assert.ErrorIs(t, err, tableau.ErrAllocation)
		assert.Zero(t, rc.MemoryUsage())
	})

	t.Run("zstd shorter than claimed", func(t *testing.T) {
		_, err := Decode(forge(CompressionZSTD, 1<<40-1, zstdPayload))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("zstd longer than claimed", func(t *testing.T) {
		_, err := Decode(forge(CompressionZSTD, 100, zstdPayload))
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestDecode_CorruptPayload(t *testing.T) {
	garbage := []byte{0xF0, 0xFF, 0xFF, 0xFF, 0x01, 0x02}

	_, err := Decode(forge(CompressionLZ4, 64, garbage))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(forge(CompressionZSTD, 64, garbage))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecode_MemoryBudget(t *testing.T) {
	tab := newTableau(t, 200)
	data, err := Encode(tab, CompressionZSTD)
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	_, err = Decode(data, tableau.WithMemoryBudget(rc))
	assert.ErrorIs(t, err, tableau.ErrAllocation)
	assert.Zero(t, rc.MemoryUsage())

	// The scratch reservation is returned once the tableau is built.
	rc = resource.NewController(resource.Config{MemoryLimitBytes: 16 << 20})
	got, err := Decode(data, tableau.WithMemoryBudget(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(got.MemoryBytes()), rc.MemoryUsage())
	got.Close()
	assert.Zero(t, rc.MemoryUsage())
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionNone, "none": CompressionNone, "LZ4": CompressionLZ4, " zstd ": CompressionZSTD} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCompression("gzip")
	assert.Error(t, err)
	assert.Equal(t, "compression(9)", Compression(9).String())

	text, err := CompressionZSTD.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "zstd", string(text))

	var c Compression
	require.NoError(t, c.UnmarshalText([]byte("lz4")))
	assert.Equal(t, CompressionLZ4, c)
	assert.Error(t, c.UnmarshalText([]byte("gzip")))
}
