// Package chunk provides cache-line sized bit registers and the vectors built
// from them.
//
// A Register is a fixed run of 64-bit words, one cache line by default
// (512 bits). A Vector is an ordered run of registers large enough to hold one
// tableau row. An Arena carves many equally shaped vectors out of a single
// 64-byte aligned allocation so that rows are addressed by index rather than by
// pointer.
//
// # Geometry
//
// Register width is not a global constant. Every constructor takes a Geometry,
// and all vectors that interact must share it. DefaultGeometry matches the
// cache line; NewGeometry builds narrower or wider registers, which is mostly
// useful in tests.
//
// # Bit Addressing
//
// Bit i of a vector lives in word i>>6 at bit position i&63. Registers are laid
// out back to back, so register r holds bits [r*RegisterBits, (r+1)*RegisterBits).
package chunk
