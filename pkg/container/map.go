package container

import (
	"fmt"
	"iter"

	"github.com/ordskip/ordskip/pkg/skiplist"
)

// Map is an ordered collection of unique keys, each holding one value.
type Map[K any, V any] struct {
	engine *skiplist.Engine[skiplist.Pair[K, V], K]
	less   skiplist.LessFunc[K]
	filter *membershipFilter[K]
}

// NewMap constructs an empty Map ordered by less over its keys.
func NewMap[K any, V any](less skiplist.LessFunc[K]) *Map[K, V] {
	return &Map[K, V]{
		engine: skiplist.New[skiplist.Pair[K, V], K](less, skiplist.PairKey[K, V], false, newDefaultGenerator()),
		less:   less,
	}
}

// NewMapWithMembershipFilter is NewMap plus an opt-in Bloom-filter front end
// for Lookup/Contains.
func NewMapWithMembershipFilter[K any, V any](less skiplist.LessFunc[K], expectedItems uint, falsePositiveRate float64) *Map[K, V] {
	m := NewMap[K, V](less)
	m.filter = newMembershipFilter[K](expectedItems, falsePositiveRate, *bloomRebuildThreshold)
	return m
}

// NewMapFromEntries is the range-construction constructor: it builds a Map
// ordered by less over its keys and populates it from entries in one call,
// the same way PutRange chains locality hints across an already-mostly-
// sorted input.
func NewMapFromEntries[K any, V any](less skiplist.LessFunc[K], entries []skiplist.Pair[K, V]) *Map[K, V] {
	m := NewMap[K, V](less)
	m.PutRange(entries)
	return m
}

// Len reports the number of entries in m.
func (m *Map[K, V]) Len() int { return m.engine.Size() }

// Empty reports whether m holds no entries.
func (m *Map[K, V]) Empty() bool { return m.engine.Empty() }

func (m *Map[K, V]) findNode(key K) *skiplist.Node[skiplist.Pair[K, V]] {
	n := m.engine.LowerBound(key)
	if m.engine.IsValid(n) && skiplist.Equivalent(m.less, n.Value().Key, key) {
		return n
	}
	return nil
}

// keys returns an iterator over every key currently stored, used to drive a
// membership-filter rebuild without exposing engine internals.
func (m *Map[K, V]) keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range m.engine.All() {
			if !yield(p.Key) {
				return
			}
		}
	}
}

// Put inserts key with value, or overwrites the value of an already-present
// key. It returns the previous value and true when an entry already
// existed. Overwriting a key whose ordering position is unchanged is
// implemented as remove-then-reinsert using the removed node's predecessor
// as the locality hint, since Engine exposes no in-place value mutation
// (SPEC_FULL.md §9 item 3).
func (m *Map[K, V]) Put(key K, value V) (V, bool) {
	pair := skiplist.Pair[K, V]{Key: key, Value: value}
	if existing := m.findNode(key); existing != nil {
		previous := existing.Value().Value
		hint := m.engine.At(existing).Prev().Node()
		m.engine.Remove(existing)
		m.engine.Insert(pair, hint)
		return previous, true
	}
	_, ok := m.engine.Insert(pair, nil)
	if ok {
		m.filter.observeInsert(key)
	}
	var zero V
	return zero, false
}

// PutRange inserts every key/value pair in entries whose key is not already
// present, chaining locality hints across the batch the same way
// Set.InsertRange does. Unlike Put, a key collision within the batch or
// against m's existing contents is skipped, not overwritten -- this is
// range insertion, not range assignment.
func (m *Map[K, V]) PutRange(entries []skiplist.Pair[K, V]) int {
	n := insertRange[skiplist.Pair[K, V], K](m.engine, entries)
	for _, e := range entries {
		if node := m.findNode(e.Key); node != nil {
			m.filter.observeInsert(node.Value().Key)
		}
	}
	return n
}

// Get returns the value stored for key and true, or the zero value and
// false when key is absent.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if !m.filter.maybeContains(key) {
		var zero V
		return zero, false
	}
	n := m.findNode(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value().Value, true
}

// Lookup is Get with an error return, for callers that prefer error-based
// control flow over an (V, bool) pair.
func (m *Map[K, V]) Lookup(key K) (V, error) {
	value, ok := m.Get(key)
	if !ok {
		return value, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return value, nil
}

// Contains reports whether key is present in m.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Find returns the entry stored under key and true, or the zero pair and
// false when key is absent. It is Get's value wrapped back into its Pair,
// for callers that want the key alongside the value without a second
// lookup.
func (m *Map[K, V]) Find(key K) (skiplist.Pair[K, V], bool) {
	n := m.findNode(key)
	if n == nil {
		var zero skiplist.Pair[K, V]
		return zero, false
	}
	return n.Value(), true
}

// LowerBound returns the entry with the smallest key that is >= key, or the
// zero pair and false if every entry in m sorts before key.
func (m *Map[K, V]) LowerBound(key K) (skiplist.Pair[K, V], bool) {
	n := m.engine.LowerBound(key)
	if !m.engine.IsValid(n) {
		var zero skiplist.Pair[K, V]
		return zero, false
	}
	return n.Value(), true
}

// UpperBound returns the entry with the smallest key that is strictly
// greater than key, or the zero pair and false if no such entry exists.
func (m *Map[K, V]) UpperBound(key K) (skiplist.Pair[K, V], bool) {
	n := m.engine.UpperBound(key)
	if !m.engine.IsValid(n) {
		var zero skiplist.Pair[K, V]
		return zero, false
	}
	return n.Value(), true
}

// Delete removes key from m, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	n := m.findNode(key)
	if n == nil {
		return false
	}
	m.engine.Remove(n)
	m.filter.observeMutation(m.keys())
	return true
}

// Front returns the entry with the smallest key, or the zero pair and false
// if m is empty.
func (m *Map[K, V]) Front() (skiplist.Pair[K, V], bool) {
	n := m.engine.Front()
	if n == nil {
		var zero skiplist.Pair[K, V]
		return zero, false
	}
	return n.Value(), true
}

// Back returns the entry with the largest key, or the zero pair and false
// if m is empty.
func (m *Map[K, V]) Back() (skiplist.Pair[K, V], bool) {
	n := m.engine.Back()
	if n == nil {
		var zero skiplist.Pair[K, V]
		return zero, false
	}
	return n.Value(), true
}

// Clear removes every entry from m.
func (m *Map[K, V]) Clear() { m.engine.RemoveAll() }

// Assign replaces every entry of m with the contents of entries, the bulk
// equivalent of calling Clear then PutRange.
func (m *Map[K, V]) Assign(entries []skiplist.Pair[K, V]) {
	m.Clear()
	m.PutRange(entries)
}

// Swap exchanges the entire contents of m and other in O(1).
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.engine.Swap(other.engine)
	m.less, other.less = other.less, m.less
	m.filter, other.filter = other.filter, m.filter
}

// All returns an iterator over every entry in ascending key order.
func (m *Map[K, V]) All() iter.Seq[skiplist.Pair[K, V]] { return m.engine.All() }

// Reversed returns an iterator over every entry in descending key order.
func (m *Map[K, V]) Reversed() iter.Seq[skiplist.Pair[K, V]] { return m.engine.Reversed() }
