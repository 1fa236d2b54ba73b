// Package window produces fixed-width overlapping groups from ordered sequences.
package window

import (
	"iter"
	"slices"
)

// Sliding returns every contiguous window of width n over items, in order.
// For len(items) = L and 1 <= n <= L there are L-n+1 windows of length n.
// It returns nil when n < 1 or n > L; callers decide what a short input means.
// Windows do not share memory with items or with each other.
func Sliding[T any](items []T, n int) [][]T {
	if n < 1 || n > len(items) {
		return nil
	}
	out := make([][]T, 0, len(items)-n+1)
	for i := 0; i+n <= len(items); i++ {
		out = append(out, slices.Clone(items[i:i+n]))
	}
	return out
}

// Seq is Sliding over a single-pass sequence. Each element of seq is read
// once; an n-element buffer keeps the current window.
func Seq[T any](seq iter.Seq[T], n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if n < 1 {
			return
		}
		buf := make([]T, 0, n)
		for v := range seq {
			if len(buf) == n {
				copy(buf, buf[1:])
				buf = buf[:n-1]
			}
			buf = append(buf, v)
			if len(buf) == n {
				if !yield(slices.Clone(buf)) {
					return
				}
			}
		}
	}
}
