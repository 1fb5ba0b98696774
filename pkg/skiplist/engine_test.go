package skiplist

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntSet() *Engine[int, int] {
	return New[int, int](func(a, b int) bool { return a < b }, Identity[int], false, NewLogGenerator(1, MaxLevel))
}

func newIntMultiset() *Engine[int, int] {
	return New[int, int](func(a, b int) bool { return a < b }, Identity[int], true, NewLogGenerator(2, MaxLevel))
}

func newStringIntMap() *Engine[Pair[int, string], int] {
	return New[Pair[int, string], int](func(a, b int) bool { return a < b }, PairKey[int, string], false, NewLogGenerator(3, MaxLevel))
}

// TestEngine_EmptyQueries covers SPEC_FULL.md §8 scenario 1.
func TestEngine_EmptyQueries(t *testing.T) {
	e := newIntSet()
	assert.Equal(t, 0, e.Size())
	assert.True(t, e.Empty())
	assert.True(t, e.Begin().Equal(e.EndIter()))
	assert.Equal(t, e.head, e.Find(0))
	assert.Equal(t, e.tail, e.LowerBound(0))
	assert.Equal(t, 0, e.Count(0))
	assert.Nil(t, e.Front())
	assert.Nil(t, e.Back())
}

// TestEngine_UniqueRejection covers SPEC_FULL.md §8 scenario 2.
func TestEngine_UniqueRejection(t *testing.T) {
	e := newIntSet()
	n1, ok1 := e.Insert(10, nil)
	require.True(t, ok1)
	require.True(t, e.IsValid(n1))

	n2, ok2 := e.Insert(10, nil)
	assert.False(t, ok2)
	assert.Equal(t, e.tail, n2)
	assert.Equal(t, 1, e.Size())
}

// TestEngine_OrderedTraversal covers SPEC_FULL.md §8 scenario 3.
func TestEngine_OrderedTraversal(t *testing.T) {
	e := newIntSet()
	for _, v := range []int{30, 10, 40, 20, 0} {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}

	var forward []int
	for v := range e.All() {
		forward = append(forward, v)
	}
	assert.Equal(t, []int{0, 10, 20, 30, 40}, forward)

	var backward []int
	for v := range e.Reversed() {
		backward = append(backward, v)
	}
	assert.Equal(t, []int{40, 30, 20, 10, 0}, backward)
}

// TestEngine_MapLookupAgainstReference covers SPEC_FULL.md §8 scenario 4.
func TestEngine_MapLookupAgainstReference(t *testing.T) {
	e := newStringIntMap()
	entries := []Pair[int, string]{{5, "a"}, {7, "b"}, {11, "a"}, {21, "b"}}
	for _, p := range entries {
		_, ok := e.Insert(p, nil)
		require.True(t, ok)
	}

	keys := []int{5, 7, 11, 21}
	for _, probe := range []int{0, 4, 5, 6, 7, 8, 10, 11, 15, 21, 22} {
		wantLower, _ := slices.BinarySearch(keys, probe)
		lb := e.LowerBound(probe)
		if wantLower == len(keys) {
			assert.Equal(t, e.tail, lb, "lower_bound(%d)", probe)
		} else {
			require.True(t, e.IsValid(lb), "lower_bound(%d)", probe)
			assert.Equal(t, keys[wantLower], lb.value.Key, "lower_bound(%d)", probe)
		}

		wantUpper, _ := slices.BinarySearch(keys, probe+1)
		ub := e.UpperBound(probe)
		if wantUpper == len(keys) {
			assert.Equal(t, e.tail, ub, "upper_bound(%d)", probe)
		} else {
			require.True(t, e.IsValid(ub), "upper_bound(%d)", probe)
			assert.Equal(t, keys[wantUpper], ub.value.Key, "upper_bound(%d)", probe)
		}
	}
}

// TestEngine_FindFirstLandsOnFirstOfRun pins the first-of-run behavior
// directly against Engine.FindFirst (rather than only through LowerBound):
// when the equivalent run being searched starts at the very front of the
// list, the back-walk must stop at that first member, not overshoot onto
// head.
func TestEngine_FindFirstLandsOnFirstOfRun(t *testing.T) {
	e := newIntMultiset()
	for _, v := range []int{5, 5, 5, 7, 9} {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}

	first := e.FindFirst(5)
	require.True(t, e.IsValid(first))
	assert.Equal(t, 5, first.value)
	assert.Equal(t, first, e.Front(), "the 5-run starts at the front of the list")

	// A unique set where the queried key is the smallest element present
	// exercises the same back-walk with a run length of one.
	set := newIntSet()
	for _, v := range []int{5, 7, 9} {
		_, ok := set.Insert(v, nil)
		require.True(t, ok)
	}
	assert.Equal(t, 5, set.FindFirst(5).value)

	// A key smaller than every element still lands on head -- find(key)
	// itself returns head, with no back-walk through a real run involved.
	assert.Equal(t, set.head, set.FindFirst(0))
}

// TestEngine_MultisetCountAndEqualRange covers SPEC_FULL.md §8 scenario 5.
func TestEngine_MultisetCountAndEqualRange(t *testing.T) {
	e := newIntMultiset()
	for _, v := range []int{5, 5, 5, 7, 7, 9} {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}

	assert.Equal(t, 3, e.Count(5))
	assert.Equal(t, 2, e.Count(7))
	assert.Equal(t, 0, e.Count(8))

	lo, hi := e.LowerBound(5), e.UpperBound(5)
	var span []int
	for n := lo; n != hi; n = n.next[0] {
		span = append(span, n.value)
	}
	assert.Equal(t, []int{5, 5, 5}, span)

	erased := 0
	for n := e.Find(5); e.IsValid(n) && Equivalent(e.less, n.value, 5); n = e.Find(5) {
		e.Remove(n)
		erased++
	}
	assert.Equal(t, 3, erased)
	assert.Equal(t, 3, e.Size())
}

// TestEngine_IteratorStabilityUnderUnrelatedErase covers SPEC_FULL.md §8 scenario 6.
func TestEngine_IteratorStabilityUnderUnrelatedErase(t *testing.T) {
	e := newIntSet()
	nodes := make(map[int]*Node[int], 100)
	for v := 1; v <= 100; v++ {
		n, ok := e.Insert(v, nil)
		require.True(t, ok)
		nodes[v] = n
	}

	saved := e.At(nodes[50])
	e.Remove(nodes[30])

	assert.Equal(t, 50, saved.Value())
	assert.Equal(t, 51, saved.Next().Value())
}

func TestEngine_RemoveBetween_BoundaryIsInclusive(t *testing.T) {
	e := newIntSet()
	nodes := make([]*Node[int], 0, 10)
	for v := 0; v < 10; v++ {
		n, ok := e.Insert(v, nil)
		require.True(t, ok)
		nodes = append(nodes, n)
	}

	e.RemoveBetween(nodes[3], nodes[6]) // removes 3,4,5,6 inclusive

	var got []int
	for v := range e.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 7, 8, 9}, got)
	assert.Equal(t, 6, e.Size())
}

func TestEngine_RemoveAll(t *testing.T) {
	e := newIntSet()
	for v := 0; v < 20; v++ {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}
	e.RemoveAll()
	assert.Equal(t, 0, e.Size())
	assert.True(t, e.Begin().Equal(e.EndIter()))
	// engine remains usable after RemoveAll.
	_, ok := e.Insert(1, nil)
	assert.True(t, ok)
	assert.Equal(t, 1, e.Size())
}

func TestEngine_IdempotentErase(t *testing.T) {
	e := newIntSet()
	for _, v := range []int{1, 2, 3} {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}
	before := slices.Collect(e.All())

	n := e.Find(42) // absent key
	assert.False(t, e.IsValid(n) && n.value == 42)

	after := slices.Collect(e.All())
	assert.Equal(t, before, after)
	assert.Equal(t, 3, e.Size())
}

func TestEngine_RoundTripSortedTraversal(t *testing.T) {
	e := newIntSet()
	input := []int{9, 3, 7, 1, 8, 2, 6, 4, 0, 5}
	for _, v := range input {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}
	want := slices.Clone(input)
	slices.SortFunc(want, cmp.Compare)
	assert.Equal(t, want, slices.Collect(e.All()))
}

func TestEngine_HintedInsertUsesLocality(t *testing.T) {
	e := newIntSet()
	var hint *Node[int]
	for _, v := range []int{1, 2, 3, 4, 5} {
		n, ok := e.Insert(v, hint)
		require.True(t, ok)
		hint = n
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, slices.Collect(e.All()))
}

func TestEngine_BadHintFallsBackToHead(t *testing.T) {
	e := newIntSet()
	for _, v := range []int{1, 2, 3, 4, 5} {
		_, ok := e.Insert(v, nil)
		require.True(t, ok)
	}
	// A stale hint pointing to a node whose key is greater than the new
	// key must be ignored; the engine falls back to head-origin search
	// silently instead of corrupting order.
	staleHint := e.Find(5)
	n, ok := e.Insert(0, staleHint)
	require.True(t, ok)
	assert.Equal(t, 0, n.value)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, slices.Collect(e.All()))
}
