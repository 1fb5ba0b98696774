package skiplist

import (
	"github.com/ordskip/ordskip/pkg/utils"
)

// Engine is the probabilistic skip-list engine shared by every ordered
// container in this repository. It is single-owner: it has no internal
// synchronization, and concurrent mutation from multiple goroutines, or
// concurrent mutation racing with iteration, is undefined.
type Engine[V any, K any] struct {
	less      LessFunc[K]
	project   Projector[V, K]
	generator LevelGenerator

	// allowDuplicates selects the set/map behavior (false, unique keys) or
	// the multiset behavior (true). It changes only the final step of
	// Insert and the loop inside Remove's top-down lane walk.
	allowDuplicates bool

	// levels is an upper bound on (the max level of any real node) + 1.
	// It is never decremented on removal -- see SPEC_FULL.md §9 item 1 --
	// so it monotonically approaches generator.MaxLevel()+1 under churn.
	// This is the documented, deliberate simplification, not a bug.
	levels int
	count  int

	head, tail *Node[V]
}

// New constructs an empty Engine. less is the strict-weak-ordering
// comparator over keys; project extracts the ordering key from a stored
// value (skiplist.Identity for sets, skiplist.PairKey for maps);
// allowDuplicates selects multiset behavior; generator supplies random
// levels for newly inserted nodes.
func New[V any, K any](less LessFunc[K], project Projector[V, K], allowDuplicates bool, generator LevelGenerator) *Engine[V, K] {
	maxLevel := generator.MaxLevel()
	e := &Engine[V, K]{
		less:            less,
		project:         project,
		generator:       generator,
		allowDuplicates: allowDuplicates,
		head:            newSentinel[V](maxLevel),
		tail:            newSentinel[V](maxLevel),
	}
	for l := range e.head.next {
		e.head.next[l] = e.tail
	}
	e.tail.prev = e.head
	e.head.owner = e.head
	e.tail.owner = e.head
	return e
}

// Size returns the number of real nodes in the engine.
func (e *Engine[V, K]) Size() int { return e.count }

// Empty reports whether the engine holds no real nodes.
func (e *Engine[V, K]) Empty() bool { return e.count == 0 }

// Front returns the first real node in key order, or nil when empty.
func (e *Engine[V, K]) Front() *Node[V] {
	if e.count == 0 {
		return nil
	}
	return e.head.next[0]
}

// Back returns the last real node in key order, or nil when empty.
func (e *Engine[V, K]) Back() *Node[V] {
	if e.count == 0 {
		return nil
	}
	return e.tail.prev
}

// IsValid reports whether node is non-nil and neither sentinel of this
// engine. It does not check ownership: Remove and RemoveBetween additionally
// reject (via raiseBadNode) a valid node that was built by another engine or
// already removed; see belongsTo.
func (e *Engine[V, K]) IsValid(node *Node[V]) bool {
	return node != nil && node != e.head && node != e.tail
}

// End returns the tail sentinel node. Dereferencing it (calling Value() on
// it) is undefined, matching the distilled spec's end()/*it contract.
func (e *Engine[V, K]) End() *Node[V] { return e.tail }

// belongsTo reports whether node was constructed by this engine. Every
// node (including both sentinels) is stamped with its owning engine's head
// sentinel at construction time; comparing that stamp against e.head is
// O(1) and catches a node from a different Engine[V,K] instance even when
// it is otherwise structurally valid (non-nil, not e's own head or tail).
func (e *Engine[V, K]) belongsTo(node *Node[V]) bool {
	return node != nil && node.owner == e.head
}

// Swap exchanges the entire contents (and comparator/projector/policy) of
// e and other. Both must have been constructed compatibly; this mirrors the
// adapters' Swap described in SPEC_FULL.md §4.6/§6.
func (e *Engine[V, K]) Swap(other *Engine[V, K]) {
	*e, *other = *other, *e
}

// raiseBadNode reports a precondition violation: the caller passed a node
// that doesn't belong to this engine, is already removed, or is a
// sentinel. Grounded on pkg/utils.RaiseInvariant: it logs, increments a
// Prometheus counter, and panics only when utils.IsTestMode is set.
func (e *Engine[V, K]) raiseBadNode(op string) {
	utils.RaiseInvariant("skiplist", "bad_node_precondition",
		"Engine operation called with a node that is nil, a sentinel, or foreign.", "op", op)
}

// raiseForeignIterator reports a precondition violation: two iterators
// anchored on different engines were compared with Equal. SPEC_FULL.md §7
// item 3 and §4.5 call for exactly this cross-container comparison check.
func (e *Engine[V, K]) raiseForeignIterator(op string) {
	utils.RaiseInvariant("skiplist", "foreign_iterator_compare",
		"Iterator.Equal called with iterators anchored on different engines.", "op", op)
}
