package container

import "github.com/ordskip/ordskip/pkg/skiplist"

// insertRange feeds values through e.Insert one at a time, passing the
// previous successful insertion's node as the next hint. This is the one
// range-insertion algorithm shared by Set, Multiset, and Map (SPEC_FULL.md
// §4.6): inputs that are already close to sorted order get most of their
// inserts resolved without a head-origin descent, and a run of rejected
// duplicates simply falls back to the last good hint rather than to head.
func insertRange[V any, K any](e *skiplist.Engine[V, K], values []V) int {
	var hint *skiplist.Node[V]
	inserted := 0
	for _, v := range values {
		n, ok := e.Insert(v, hint)
		if ok {
			inserted++
			hint = n
		}
	}
	return inserted
}
