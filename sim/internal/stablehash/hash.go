// Package stablehash provides a deterministic, process-independent hash
// over strings, used anywhere the simulator needs a total order that does
// not depend on Go's randomized map iteration (successor-list ordering,
// route tie-breaking).
package stablehash

import "hash/fnv"

// String returns the FNV-1a 64-bit hash of s. The same input always
// produces the same output, in this process and any other.
func String(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Strings returns a stable hash of an ordered sequence of strings,
// distinguishing ["ab","c"] from ["a","bc"] via a zero delimiter byte
// written after each element.
func Strings(ss []string) uint64 {
	h := fnv.New64a()
	for _, s := range ss {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
