// Package ident produces the stable identifiers used for albums and images
// within one editing session.
package ident

import (
	"strconv"
	"sync/atomic"
)

// DefaultAlbumID is the fixed id of the reserved default album. It is not
// generated so the album stays recognizable before any generator exists,
// e.g. when repairing an externally supplied collection.
const DefaultAlbumID = "album_default"

// Generator hands out ids of the form {prefix}_{n} from a single
// monotonically increasing counter. One Generator lives for the whole session
// so ids stay stable across re-renders and never collide across prefixes.
type Generator struct {
	n uint64
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Next(prefix string) string {
	n := atomic.AddUint64(&g.n, 1)
	return prefix + "_" + strconv.FormatUint(n, 10)
}

// Reserve raises the counter so the next id uses at least n+1. Called when a
// collection produced by an earlier session is adopted, so freshly generated
// ids cannot collide with adopted ones.
func (g *Generator) Reserve(n uint64) {
	for {
		cur := atomic.LoadUint64(&g.n)
		if cur >= n || atomic.CompareAndSwapUint64(&g.n, cur, n) {
			return
		}
	}
}
