package simd

import (
	"os"
	"strings"
)

// Width is the unroll width of the word kernels. Both widths are plain Go;
// the choice only changes how many words one loop iteration touches.
type Width uint8

const (
	// Narrow processes four words per iteration.
	Narrow Width = iota
	// Line processes one 64-byte cache line (eight words) per iteration.
	Line
)

func (w Width) String() string {
	if w == Line {
		return "line"
	}
	return "narrow"
}

// ParseWidth parses a STABGO_SIMD value. "generic" is accepted for Narrow.
func ParseWidth(s string) (Width, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow", "generic":
		return Narrow, true
	case "line":
		return Line, true
	}
	return Narrow, false
}

var (
	activeWidth = Narrow

	// wideVectors is set by the architecture init: AVX2 on amd64, ASIMD on arm64.
	wideVectors bool
)

func initCapabilities() {
	activeWidth = Narrow
	if wideVectors {
		activeWidth = Line
	}
	if w, ok := ParseWidth(os.Getenv("STABGO_SIMD")); ok {
		activeWidth = w
	}
	selectKernels(activeWidth)
}

// ActiveWidth returns the unroll width the kernels dispatch to.
func ActiveWidth() Width { return activeWidth }

// WideVectors reports whether the CPU has wide vector units.
func WideVectors() bool { return wideVectors }
