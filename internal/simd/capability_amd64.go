//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	wideVectors = cpu.X86.HasAVX2
	initCapabilities()
}
