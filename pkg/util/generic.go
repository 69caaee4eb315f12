// pkg/util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

// Select returns a if sel is true, b otherwise — a ternary-expression
// stand-in used where an if/else would otherwise interrupt a struct
// literal or a single expression.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// FilterSlice applies the given filter function pred to the given slice,
// returning a new slice that only contains elements where pred returned
// true. cmd/daaband uses this to drop stale/invalid traffic states out of
// a cache scan before handing the remainder to daa.MostUrgent.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var filtered []V
	for _, item := range s {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
