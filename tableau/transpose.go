package tableau

import (
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/stabgo/chunk"
)

const tileBits = 64

// sync performs a pending transpose so that storage matches the logical layout.
func (t *Tableau) sync() {
	if t.physical == t.layout {
		return
	}
	t.transpose()
	t.physical = t.layout
	t.transposes++
}

func (t *Tableau) transpose() {
	if !t.parallel || t.n < parallelTransposeMin {
		transposeBlock(t.x, t.n)
		transposeBlock(t.z, t.n)
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		transposeBlock(t.x, t.n)
		return nil
	})
	g.Go(func() error {
		transposeBlock(t.z, t.n)
		return nil
	})
	_ = g.Wait()
}

// transposeBlock transposes the n x n bit matrix held in rows, in place.
//
// The matrix is cut into 64x64 tiles; tile (i, j) and tile (j, i) are each
// transposed and written to the other's position. Rows at or past n read as
// zero and are never written, so padding columns come out clear. Words past
// the last tile are cleared as well.
func transposeBlock(rows []chunk.Vector, n int) {
	tiles := (n + tileBits - 1) / tileBits

	var a, b [tileBits]uint64
	for bi := 0; bi < tiles; bi++ {
		for bj := bi; bj < tiles; bj++ {
			loadTile(&a, rows, n, bi, bj)
			transpose64(&a)
			if bi == bj {
				storeTile(&a, rows, n, bi, bj)
				continue
			}
			loadTile(&b, rows, n, bj, bi)
			transpose64(&b)
			storeTile(&a, rows, n, bj, bi)
			storeTile(&b, rows, n, bi, bj)
		}
	}

	for i := range rows {
		clear(rows[i].Words()[tiles:])
	}
}

func loadTile(dst *[tileBits]uint64, rows []chunk.Vector, n, bi, bj int) {
	base := bi * tileBits
	for k := range dst {
		if r := base + k; r < n {
			dst[k] = rows[r].Words()[bj]
		} else {
			dst[k] = 0
		}
	}
}

func storeTile(src *[tileBits]uint64, rows []chunk.Vector, n, bi, bj int) {
	base := bi * tileBits
	for k := range src {
		r := base + k
		if r >= n {
			return
		}
		rows[r].Words()[bj] = src[k]
	}
}

// transpose64 transposes a 64x64 bit matrix in place. Bit c of a[r] is
// element (r, c).
func transpose64(a *[tileBits]uint64) {
	j := 32
	m := uint64(0x00000000FFFFFFFF)
	for j != 0 {
		for k := 0; k < tileBits; k = (k + j + 1) &^ j {
			t := (a[k]>>uint(j) ^ a[k+j]) & m
			a[k+j] ^= t
			a[k] ^= t << uint(j)
		}
		j >>= 1
		m ^= m << uint(j)
	}
}
