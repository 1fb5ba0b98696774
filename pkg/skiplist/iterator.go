package skiplist

import "iter"

// Iterator is a bidirectional cursor anchored on a node. Insertion never
// invalidates an existing Iterator; removal invalidates only iterators
// anchored on exactly the removed node (SPEC_FULL.md §4.5).
type Iterator[V any, K any] struct {
	engine *Engine[V, K]
	node   *Node[V]
}

// Begin returns an iterator to the first real node, or to End() when empty.
func (e *Engine[V, K]) Begin() Iterator[V, K] {
	return Iterator[V, K]{engine: e, node: e.head.next[0]}
}

// EndIter returns an iterator to the tail sentinel. Dereferencing it is
// undefined.
func (e *Engine[V, K]) EndIter() Iterator[V, K] {
	return Iterator[V, K]{engine: e, node: e.tail}
}

// At wraps an arbitrary node (as returned by Find, LowerBound, Insert, ...)
// in an Iterator anchored on this engine.
func (e *Engine[V, K]) At(node *Node[V]) Iterator[V, K] {
	return Iterator[V, K]{engine: e, node: node}
}

// Node returns the node this iterator is anchored on.
func (it Iterator[V, K]) Node() *Node[V] { return it.node }

// Value returns a copy of the anchored node's value. Calling it on End() or
// on a removed node is undefined.
func (it Iterator[V, K]) Value() V { return it.node.value }

// Next returns an iterator to the following node in key order.
func (it Iterator[V, K]) Next() Iterator[V, K] {
	return Iterator[V, K]{engine: it.engine, node: it.node.next[0]}
}

// Prev returns an iterator to the preceding node in key order.
func (it Iterator[V, K]) Prev() Iterator[V, K] {
	return Iterator[V, K]{engine: it.engine, node: it.node.prev}
}

// Equal reports whether it and other are anchored on the same node. Comparing
// iterators anchored on different engines is a precondition violation
// (SPEC_FULL.md §7 item 3): it is reported via the owning engine's
// raiseForeignIterator and Equal returns false rather than comparing nodes
// that belong to unrelated lists.
func (it Iterator[V, K]) Equal(other Iterator[V, K]) bool {
	if it.engine != other.engine {
		it.engine.raiseForeignIterator("Iterator.Equal")
		return false
	}
	return it.node == other.node
}

// ReverseIterator adapts an Iterator to walk the list back to front.
// Dereferencing a ReverseIterator yields the anchored base iterator's
// predecessor's value, standard reverse_iterator semantics: RBegin's base is
// End(), so *RBegin() yields Back()'s value.
type ReverseIterator[V any, K any] struct {
	base Iterator[V, K]
}

// RBegin returns a reverse iterator to the last real node, or to REnd() when
// empty.
func (e *Engine[V, K]) RBegin() ReverseIterator[V, K] {
	return ReverseIterator[V, K]{base: e.EndIter()}
}

// REnd returns the reverse end sentinel.
func (e *Engine[V, K]) REnd() ReverseIterator[V, K] {
	return ReverseIterator[V, K]{base: e.Begin()}
}

// Value returns the value one step before the reverse iterator's base
// anchor. Calling it on REnd() is undefined.
func (r ReverseIterator[V, K]) Value() V { return r.base.Prev().Value() }

// Next moves the reverse iterator one step further from Back().
func (r ReverseIterator[V, K]) Next() ReverseIterator[V, K] {
	return ReverseIterator[V, K]{base: r.base.Prev()}
}

// Prev moves the reverse iterator one step back toward Back().
func (r ReverseIterator[V, K]) Prev() ReverseIterator[V, K] {
	return ReverseIterator[V, K]{base: r.base.Next()}
}

// Equal reports whether r and other share the same base anchor.
func (r ReverseIterator[V, K]) Equal(other ReverseIterator[V, K]) bool {
	return r.base.Equal(other.base)
}

// All returns a standard-library iter.Seq walking every value front to
// back. This is an ambient convenience built on top of Begin/Next; it adds
// no new traversal algorithm over the bidirectional cursors above.
func (e *Engine[V, K]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := e.Begin(); !it.Equal(e.EndIter()); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Reversed returns a standard-library iter.Seq walking every value back to
// front.
func (e *Engine[V, K]) Reversed() iter.Seq[V] {
	return func(yield func(V) bool) {
		for r := e.RBegin(); !r.Equal(e.REnd()); r = r.Next() {
			if !yield(r.Value()) {
				return
			}
		}
	}
}
