package simd

import "math/bits"

// ==============================================================================
// Word Kernels
// ==============================================================================
//
// These operations back the register and vector types of the chunk package.
// They operate on []uint64 slices whose length is a whole number of registers.
// Destination and source slices must have equal length; the kernels index the
// source with the destination's bounds.

// Kernel function pointers. Generic implementations are the default;
// selectKernels switches to cache-line wide loops when the CPU has wide
// vector units. The loops differ only in unroll width.
var (
	kernelXorWords    = xorWordsGeneric
	kernelAndXorWords = andXorWordsGeneric
	kernelNotWords    = notWordsGeneric
)

func selectKernels(w Width) {
	switch w {
	case Line:
		kernelXorWords = xorWordsLine
		kernelAndXorWords = andXorWordsLine
		kernelNotWords = notWordsLine
	default:
		kernelXorWords = xorWordsGeneric
		kernelAndXorWords = andXorWordsGeneric
		kernelNotWords = notWordsGeneric
	}
}

// XorWords performs dst[i] ^= src[i] for all words.
func XorWords(dst, src []uint64) {
	kernelXorWords(dst, src)
}

// AndXorWords performs dst[i] ^= a[i] & b[i] for all words.
func AndXorWords(dst, a, b []uint64) {
	kernelAndXorWords(dst, a, b)
}

// NotWords performs dst[i] = ^dst[i] for all words.
func NotWords(dst []uint64) {
	kernelNotWords(dst)
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	count := 0
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

// IsZeroWords reports whether every word is zero.
func IsZeroWords(words []uint64) bool {
	var acc uint64
	for _, w := range words {
		acc |= w
	}
	return acc == 0
}

// EqualWords reports whether a and b hold the same words.
func EqualWords(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	var diff uint64
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// FirstSetWord returns the global bit index of the lowest set bit, or -1.
func FirstSetWord(words []uint64) int {
	for i, w := range words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// SwapWords exchanges the contents of a and b.
func SwapWords(a, b []uint64) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// ==============================================================================
// Generic implementations
// ==============================================================================

func xorWordsGeneric(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] ^= src[i]
		dst[i+1] ^= src[i+1]
		dst[i+2] ^= src[i+2]
		dst[i+3] ^= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= src[i]
	}
}

func andXorWordsGeneric(dst, a, b []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] ^= a[i] & b[i]
		dst[i+1] ^= a[i+1] & b[i+1]
		dst[i+2] ^= a[i+2] & b[i+2]
		dst[i+3] ^= a[i+3] & b[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= a[i] & b[i]
	}
}

func notWordsGeneric(dst []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] = ^dst[i]
		dst[i+1] = ^dst[i+1]
		dst[i+2] = ^dst[i+2]
		dst[i+3] = ^dst[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] = ^dst[i]
	}
}

// ==============================================================================
// Cache-line implementations (8 words = 64 bytes per iteration)
// ==============================================================================

func xorWordsLine(dst, src []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := dst[i : i+8 : i+8]
		s := src[i : i+8 : i+8]
		d[0] ^= s[0]
		d[1] ^= s[1]
		d[2] ^= s[2]
		d[3] ^= s[3]
		d[4] ^= s[4]
		d[5] ^= s[5]
		d[6] ^= s[6]
		d[7] ^= s[7]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= src[i]
	}
}

func andXorWordsLine(dst, a, b []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := dst[i : i+8 : i+8]
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		d[0] ^= x[0] & y[0]
		d[1] ^= x[1] & y[1]
		d[2] ^= x[2] & y[2]
		d[3] ^= x[3] & y[3]
		d[4] ^= x[4] & y[4]
		d[5] ^= x[5] & y[5]
		d[6] ^= x[6] & y[6]
		d[7] ^= x[7] & y[7]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= a[i] & b[i]
	}
}

func notWordsLine(dst []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := dst[i : i+8 : i+8]
		d[0] = ^d[0]
		d[1] = ^d[1]
		d[2] = ^d[2]
		d[3] = ^d[3]
		d[4] = ^d[4]
		d[5] = ^d[5]
		d[6] = ^d[6]
		d[7] = ^d[7]
	}
	for ; i < len(dst); i++ {
		dst[i] = ^dst[i]
	}
}
