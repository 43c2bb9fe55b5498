// Package snapshot encodes tableaux into self-describing, checksummed blobs.
//
// # Format
//
// All integers are little-endian.
//
//	offset size field
//	0      4    magic "STAB"
//	4      2    format version (1)
//	6      1    compression (0 none, 1 LZ4, 2 ZSTD)
//	7      1    reserved
//	8      8    raw length (tableau.MarshalBinary output)
//	16     8    payload length
//	24     4    CRC32C of the payload
//	28     ...  payload
//
// The payload is the tableau encoding, compressed when that saves at least 10%
// and stored raw otherwise. The header records what was actually used, so a
// snapshot requested with ZSTD may come back as CompressionNone.
package snapshot
