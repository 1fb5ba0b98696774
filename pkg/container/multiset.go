package container

import (
	"iter"

	"github.com/ordskip/ordskip/pkg/skiplist"
)

// Multiset is an ordered collection that permits duplicate values.
type Multiset[V any] struct {
	engine *skiplist.Engine[V, V]
	less   skiplist.LessFunc[V]
}

// NewMultiset constructs an empty Multiset ordered by less.
func NewMultiset[V any](less skiplist.LessFunc[V]) *Multiset[V] {
	return &Multiset[V]{
		engine: skiplist.New[V, V](less, skiplist.Identity[V], true, newDefaultGenerator()),
		less:   less,
	}
}

// Len reports the total number of elements, counting duplicates.
func (m *Multiset[V]) Len() int { return m.engine.Size() }

// Empty reports whether m holds no elements.
func (m *Multiset[V]) Empty() bool { return m.engine.Empty() }

// Insert adds value to m. A multiset never rejects an insertion.
func (m *Multiset[V]) Insert(value V) {
	m.engine.Insert(value, nil)
}

// InsertRange inserts every value in values, chaining locality hints the
// same way Set.InsertRange does.
func (m *Multiset[V]) InsertRange(values []V) {
	insertRange[V, V](m.engine, values)
}

// Count returns the number of elements equivalent to value.
func (m *Multiset[V]) Count(value V) int { return m.engine.Count(value) }

// Contains reports whether at least one element is equivalent to value.
func (m *Multiset[V]) Contains(value V) bool {
	n := m.engine.LowerBound(value)
	return m.engine.IsValid(n) && skiplist.Equivalent(m.less, n.Value(), value)
}

// Range returns an iterator over every element equivalent to value, most
// recently inserted first: Insert places a new element before any
// equivalent ones already present.
func (m *Multiset[V]) Range(value V) iter.Seq[V] {
	return func(yield func(V) bool) {
		n := m.engine.LowerBound(value)
		for m.engine.IsValid(n) && skiplist.Equivalent(m.less, n.Value(), value) {
			if !yield(n.Value()) {
				return
			}
			n = m.engine.At(n).Next().Node()
		}
	}
}

// LowerBound returns the smallest element that is >= value, or the zero
// value and false if every element in m sorts before value.
func (m *Multiset[V]) LowerBound(value V) (V, bool) {
	n := m.engine.LowerBound(value)
	if !m.engine.IsValid(n) {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// UpperBound returns the smallest element that is strictly greater than
// value, or the zero value and false if no such element exists.
func (m *Multiset[V]) UpperBound(value V) (V, bool) {
	n := m.engine.UpperBound(value)
	if !m.engine.IsValid(n) {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// EqualRange returns LowerBound(value) and UpperBound(value) together, the
// pair of boundaries SPEC_FULL.md §4.6 defines equal_range(v) as. The span
// between them -- when both are present -- is exactly the run Range(value)
// iterates.
func (m *Multiset[V]) EqualRange(value V) (lower V, lowerOK bool, upper V, upperOK bool) {
	lower, lowerOK = m.LowerBound(value)
	upper, upperOK = m.UpperBound(value)
	return lower, lowerOK, upper, upperOK
}

// RemoveOne deletes a single element equivalent to value, reporting whether
// one was found.
func (m *Multiset[V]) RemoveOne(value V) bool {
	n := m.engine.LowerBound(value)
	if !m.engine.IsValid(n) || !skiplist.Equivalent(m.less, n.Value(), value) {
		return false
	}
	m.engine.Remove(n)
	return true
}

// RemoveAll deletes every element equivalent to value, returning the count
// removed. Erased as a loop of single-node Remove calls rather than a range
// splice -- see RemoveRange for why a multiset can't reuse
// Engine.RemoveBetween as cheaply as Set/Map can.
func (m *Multiset[V]) RemoveAll(value V) int {
	removed := 0
	for {
		n := m.engine.LowerBound(value)
		if !m.engine.IsValid(n) || !skiplist.Equivalent(m.less, n.Value(), value) {
			return removed
		}
		m.engine.Remove(n)
		removed++
	}
}

// RemoveRange deletes every element n with first <= n <= last, inclusive of
// both endpoints, returning the count removed. Implemented as iterated
// single-node Remove calls rather than Engine.RemoveBetween's range splice
// -- see SPEC_FULL.md §4.6: a multiset's erase(first, last)
// would otherwise have to re-derive per-lane equivalent-run boundaries the
// same way Remove already does internally, at which point the splice buys
// nothing over the iterated form.
func (m *Multiset[V]) RemoveRange(first, last V) int {
	removed := 0
	for {
		n := m.engine.LowerBound(first)
		if !m.engine.IsValid(n) || m.less(last, n.Value()) {
			return removed
		}
		m.engine.Remove(n)
		removed++
	}
}

// Front returns the smallest element, or the zero value and false if m is
// empty.
func (m *Multiset[V]) Front() (V, bool) {
	n := m.engine.Front()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// Back returns the largest element, or the zero value and false if m is
// empty.
func (m *Multiset[V]) Back() (V, bool) {
	n := m.engine.Back()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// Clear removes every element from m.
func (m *Multiset[V]) Clear() { m.engine.RemoveAll() }

// Swap exchanges the entire contents of m and other in O(1).
func (m *Multiset[V]) Swap(other *Multiset[V]) {
	m.engine.Swap(other.engine)
	m.less, other.less = other.less, m.less
}

// All returns an iterator over every element in ascending order.
func (m *Multiset[V]) All() iter.Seq[V] { return m.engine.All() }

// Reversed returns an iterator over every element in descending order.
func (m *Multiset[V]) Reversed() iter.Seq[V] { return m.engine.Reversed() }
