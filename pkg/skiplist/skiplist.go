// Package skiplist implements the probabilistic skip-list engine shared by
// every ordered container in this repository (sets, multisets, and maps).
//
// The engine itself knows nothing about sets or maps: it stores values of
// type V ordered by a key of type K extracted via a Projector, compared with
// a LessFunc. Container adapters in pkg/container plug in the projector
// (identity for sets, first-of-pair for maps) and a duplicate policy, and
// add the thin, mechanical conveniences (Contains, Range, ...) on top.
//
// The engine is single-owner: it has no internal synchronization, and
// concurrent mutation from multiple goroutines is undefined, same as any
// other non-thread-safe Go container.
package skiplist

// LessFunc is a strict-weak-ordering comparator over keys. The engine never
// invokes == or <= on keys or values directly; every ordering decision is
// derived from a single LessFunc via Equivalent and LessOrEqual below.
type LessFunc[K any] func(a, b K) bool

// Projector maps a stored value to its ordering key. Identity and PairKey
// are the two stock projectors used by the set/map adapters.
type Projector[V any, K any] func(value V) K

// Equivalent reports whether a and b compare equal under less: neither is
// less than the other.
func Equivalent[K any](less LessFunc[K], a, b K) bool {
	return !less(a, b) && !less(b, a)
}

// LessOrEqual reports whether a sorts at or before b under less.
func LessOrEqual[K any](less LessFunc[K], a, b K) bool {
	return !less(b, a)
}

// Identity is the stock projector for set-like containers, where the stored
// value is its own key.
func Identity[K any](v K) K { return v }

// Pair is a key/value pair used by map-like containers.
type Pair[K any, Val any] struct {
	Key   K
	Value Val
}

// PairKey is the stock projector for map-like containers: the ordering key
// of a Pair is its Key field.
func PairKey[K any, Val any](p Pair[K, Val]) K { return p.Key }
