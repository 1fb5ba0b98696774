package container

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiset_CountAndRange(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{5, 5, 5, 7, 7, 9})

	assert.Equal(t, 3, m.Count(5))
	assert.Equal(t, 2, m.Count(7))
	assert.Equal(t, 0, m.Count(8))
	assert.True(t, m.Contains(9))
	assert.False(t, m.Contains(8))

	assert.Equal(t, []int{5, 5, 5}, slices.Collect(m.Range(5)))
}

func TestMultiset_RemoveOneLeavesRemainder(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{5, 5, 5})

	assert.True(t, m.RemoveOne(5))
	assert.Equal(t, 2, m.Count(5))
	assert.False(t, m.RemoveOne(42))
}

func TestMultiset_RemoveAllCountsErasures(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{1, 2, 2, 2, 3})

	assert.Equal(t, 3, m.RemoveAll(2))
	assert.Equal(t, 0, m.Count(2))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []int{1, 3}, slices.Collect(m.All()))
}

func TestMultiset_OrderedAcrossDuplicates(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{3, 1, 2, 1, 3, 2})
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3}, slices.Collect(m.All()))
}

// TestMultiset_EqualRangeSpansTheRun covers SPEC_FULL.md §8 scenario 5's
// equal_range check through the Multiset type itself, not just Engine.
func TestMultiset_EqualRangeSpansTheRun(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{5, 5, 5, 7, 7, 9})

	lower, lowerOK, upper, upperOK := m.EqualRange(5)
	require.True(t, lowerOK)
	require.True(t, upperOK)
	assert.Equal(t, 5, lower)
	assert.Equal(t, 7, upper)

	var span []int
	for v := range m.Range(5) {
		span = append(span, v)
	}
	assert.Equal(t, []int{5, 5, 5}, span)

	_, lowerOK, _, upperOK = m.EqualRange(100)
	assert.False(t, lowerOK)
	assert.False(t, upperOK)
}

func TestMultiset_RemoveRangeIsInclusiveOfBothEndpoints(t *testing.T) {
	m := NewMultiset(intLess)
	m.InsertRange([]int{1, 2, 2, 3, 3, 3, 4, 5})

	removed := m.RemoveRange(2, 4)
	assert.Equal(t, 6, removed)
	assert.Equal(t, []int{1, 5}, slices.Collect(m.All()))
}
