// Package hash provides the checksum used by tableau snapshots.
//
// Snapshots carry a CRC32-Castagnoli (CRC32C) of their payload. Go's
// hash/crc32 uses the SSE4.2 and ARMv8 CRC instructions for this polynomial
// when the CPU has them.
//
// For one-shot checksums:
//
//	sum := hash.CRC32C(payload)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(header)
//	h.Write(payload)
//	sum := h.Sum32()
package hash
