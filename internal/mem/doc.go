// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned word storage so that every tableau register starts
// on a cache line boundary (AVX-512 friendly).
package mem
