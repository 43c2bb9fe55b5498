// Package simd provides word kernels for bit-packed tableau storage.
//
// The kernels are plain Go. Runtime CPU detection (AVX2 on x86-64, ASIMD on
// ARM64) only picks the loop unroll width: eight words per iteration on
// CPUs with wide vector units, four otherwise. Set STABGO_SIMD=narrow or
// STABGO_SIMD=line to force either width.
//
// # Operations
//
//   - XOR: XorWords, AndXorWords
//   - Complement: NotWords
//   - Inspection: PopcountWords, IsZeroWords, EqualWords, FirstSetWord
//   - Exchange: SwapWords
package simd
