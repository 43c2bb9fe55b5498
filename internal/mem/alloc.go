package mem

import (
	"math"
	"unsafe"
)

// Alignment is the byte alignment required for AVX-512 (64 bytes).
// It is also the cache line size of every platform we target.
const Alignment = 64

// WordBytes is the size of one storage word.
const WordBytes = 8

// MaxBytes is the largest allocation AllocAligned attempts. No 64-bit
// platform the Go runtime supports can map more than 1<<47 bytes of heap.
const MaxBytes = min(math.MaxInt-Alignment, 1<<47)

// MaxWords is the largest word count AllocAlignedWords accepts.
const MaxWords = MaxBytes / WordBytes

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
// It returns nil when size is not positive, exceeds MaxBytes or the runtime
// rejects the length.
func AllocAligned(size int) (out []byte) {
	if size <= 0 || size > MaxBytes {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
		}
	}()

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// AllocAlignedWords allocates n zeroed uint64 words with 64-byte alignment.
// It returns nil for n <= 0 or n > MaxWords.
func AllocAlignedWords(n int) []uint64 {
	if n <= 0 || n > MaxWords {
		return nil
	}

	byteSlice := AllocAligned(n * WordBytes)
	if byteSlice == nil {
		return nil
	}
	ptr := unsafe.Pointer(&byteSlice[0])    //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*uint64)(ptr), n) //nolint:gosec // unsafe is required for memory alignment
}

// IsAligned reports whether the first word of words sits on a 64-byte boundary.
func IsAligned(words []uint64) bool {
	if len(words) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&words[0]))%Alignment == 0 //nolint:gosec // address inspection only
}
