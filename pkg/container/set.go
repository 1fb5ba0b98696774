package container

import (
	"iter"

	"github.com/ordskip/ordskip/pkg/skiplist"
)

// Set is an ordered collection of unique values.
type Set[V any] struct {
	engine *skiplist.Engine[V, V]
	less   skiplist.LessFunc[V]
	filter *membershipFilter[V]
}

// NewSet constructs an empty Set ordered by less.
func NewSet[V any](less skiplist.LessFunc[V]) *Set[V] {
	return &Set[V]{
		engine: skiplist.New[V, V](less, skiplist.Identity[V], false, newDefaultGenerator()),
		less:   less,
	}
}

// NewSetWithMembershipFilter is NewSet plus an opt-in Bloom-filter front end
// for Contains, sized for expectedItems at the given false-positive rate
// (SPEC_FULL.md §11's bits-and-blooms/bloom wiring).
func NewSetWithMembershipFilter[V any](less skiplist.LessFunc[V], expectedItems uint, falsePositiveRate float64) *Set[V] {
	s := NewSet(less)
	s.filter = newMembershipFilter[V](expectedItems, falsePositiveRate, *bloomRebuildThreshold)
	return s
}

// NewSetFromValues is the range-construction constructor: it builds a Set
// ordered by less and populates it from values in one call, the same way
// InsertRange chains locality hints across an already-mostly-sorted input.
func NewSetFromValues[V any](less skiplist.LessFunc[V], values []V) *Set[V] {
	s := NewSet(less)
	s.InsertRange(values)
	return s
}

// Len reports the number of elements in s.
func (s *Set[V]) Len() int { return s.engine.Size() }

// Empty reports whether s holds no elements.
func (s *Set[V]) Empty() bool { return s.engine.Empty() }

// Insert adds value to s, reporting whether it was newly inserted (false
// means an equivalent value was already present).
func (s *Set[V]) Insert(value V) bool {
	_, ok := s.engine.Insert(value, nil)
	if ok {
		s.filter.observeInsert(value)
	}
	return ok
}

// InsertRange inserts every value in values, using each successful
// insertion as the locality hint for the next. It returns the number of
// values actually inserted (duplicates within values or against the
// existing contents are skipped, not overwritten).
func (s *Set[V]) InsertRange(values []V) int {
	n := insertRange[V, V](s.engine, values)
	for _, v := range values {
		// engineHas, not Contains: the filter hasn't observed v yet, so
		// routing this through the filter-gated Contains would report a
		// false negative for every value just inserted by insertRange and
		// the filter would never learn about them.
		if s.engineHas(v) {
			s.filter.observeInsert(v)
		}
	}
	return n
}

// Remove deletes value from s, reporting whether it was present.
func (s *Set[V]) Remove(value V) bool {
	n := s.engine.LowerBound(value)
	if !s.engine.IsValid(n) || !skiplist.Equivalent(s.less, n.Value(), value) {
		return false
	}
	s.engine.Remove(n)
	s.filter.observeMutation(s.engine.All())
	return true
}

// engineHas reports whether value is present, querying the skip list
// directly and bypassing any membership filter.
func (s *Set[V]) engineHas(value V) bool {
	n := s.engine.LowerBound(value)
	return s.engine.IsValid(n) && skiplist.Equivalent(s.less, n.Value(), value)
}

// Contains reports whether value is a member of s.
func (s *Set[V]) Contains(value V) bool {
	if !s.filter.maybeContains(value) {
		return false
	}
	return s.engineHas(value)
}

// Find returns the stored element equivalent to value and true, or the zero
// value and false if no such element is a member of s. Unlike Contains,
// Find returns the element actually stored under the comparator's notion
// of equivalence -- useful when less considers two structurally different
// values equivalent.
func (s *Set[V]) Find(value V) (V, bool) {
	n := s.engine.LowerBound(value)
	if !s.engine.IsValid(n) || !skiplist.Equivalent(s.less, n.Value(), value) {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// LowerBound returns the smallest element that is >= value, or the zero
// value and false if every element in s sorts before value.
func (s *Set[V]) LowerBound(value V) (V, bool) {
	n := s.engine.LowerBound(value)
	if !s.engine.IsValid(n) {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// UpperBound returns the smallest element that is strictly greater than
// value, or the zero value and false if no such element exists.
func (s *Set[V]) UpperBound(value V) (V, bool) {
	n := s.engine.UpperBound(value)
	if !s.engine.IsValid(n) {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// Front returns the smallest element, or the zero value and false if s is
// empty.
func (s *Set[V]) Front() (V, bool) {
	n := s.engine.Front()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// Back returns the largest element, or the zero value and false if s is
// empty.
func (s *Set[V]) Back() (V, bool) {
	n := s.engine.Back()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value(), true
}

// Clear removes every element from s.
func (s *Set[V]) Clear() { s.engine.RemoveAll() }

// Assign replaces every element of s with the contents of values, the bulk
// equivalent of calling Clear then InsertRange.
func (s *Set[V]) Assign(values []V) {
	s.Clear()
	s.InsertRange(values)
}

// Swap exchanges the entire contents of s and other in O(1).
func (s *Set[V]) Swap(other *Set[V]) {
	s.engine.Swap(other.engine)
	s.less, other.less = other.less, s.less
	s.filter, other.filter = other.filter, s.filter
}

// All returns an iterator over every element in ascending order.
func (s *Set[V]) All() iter.Seq[V] { return s.engine.All() }

// Reversed returns an iterator over every element in descending order.
func (s *Set[V]) Reversed() iter.Seq[V] { return s.engine.Reversed() }
