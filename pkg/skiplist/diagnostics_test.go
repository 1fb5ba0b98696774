package skiplist

import (
	"testing"

	"github.com/ordskip/ordskip/pkg/utils"
	"github.com/stretchr/testify/assert"
)

// TestEngine_RemoveOnSentinelRaisesInvariant exercises SPEC_FULL.md §7 item
// 3: calling Remove with a node that fails IsValid is a precondition
// violation, reported through pkg/utils.RaiseInvariant rather than
// corrupting the engine.
func TestEngine_RemoveOnSentinelRaisesInvariant(t *testing.T) {
	before := utils.GetMetricValue("skiplist", "bad_node_precondition")

	e := newIntSet()
	_, ok := e.Insert(1, nil)
	assert.True(t, ok)

	e.Remove(e.EndIter().Node()) // e.tail is not IsValid.

	after := utils.GetMetricValue("skiplist", "bad_node_precondition")
	assert.Equal(t, before+1, after)
	assert.Equal(t, 1, e.Size(), "rejected removal must leave the engine unchanged")
}

// TestEngine_RemoveForeignNodeRaisesInvariant exercises the same §7 item 3
// precondition with a node that is structurally valid (non-nil, not a
// sentinel of e) but was constructed by a different Engine instance. Only
// the owner stamp set at construction time (Engine.New, Engine.Insert) can
// catch this; IsValid alone cannot.
func TestEngine_RemoveForeignNodeRaisesInvariant(t *testing.T) {
	before := utils.GetMetricValue("skiplist", "bad_node_precondition")

	e := newIntSet()
	_, ok := e.Insert(1, nil)
	assert.True(t, ok)

	other := newIntSet()
	foreign, ok := other.Insert(2, nil)
	assert.True(t, ok)

	e.Remove(foreign)

	after := utils.GetMetricValue("skiplist", "bad_node_precondition")
	assert.Equal(t, before+1, after)
	assert.Equal(t, 1, e.Size(), "rejecting a foreign node must leave e unchanged")
	assert.Equal(t, 1, other.Size(), "rejecting a foreign node must leave other unchanged")
}

// TestEngine_RemoveBetweenForeignNodeRaisesInvariant mirrors the single-node
// case above for RemoveBetween: first belongs to e, last belongs to other.
func TestEngine_RemoveBetweenForeignNodeRaisesInvariant(t *testing.T) {
	before := utils.GetMetricValue("skiplist", "bad_node_precondition")

	e := newIntSet()
	first, ok := e.Insert(1, nil)
	assert.True(t, ok)
	_, ok = e.Insert(2, nil)
	assert.True(t, ok)

	other := newIntSet()
	foreignLast, ok := other.Insert(9, nil)
	assert.True(t, ok)

	e.RemoveBetween(first, foreignLast)

	after := utils.GetMetricValue("skiplist", "bad_node_precondition")
	assert.Equal(t, before+1, after)
	assert.Equal(t, 2, e.Size(), "rejecting a foreign endpoint must leave e unchanged")
}

// TestIterator_EqualAcrossEnginesRaisesInvariant exercises the
// "foreign iterator" case in SPEC_FULL.md §4.5/§7 item 3: comparing
// iterators anchored on two different engines must be detected rather than
// silently comparing unrelated node pointers.
func TestIterator_EqualAcrossEnginesRaisesInvariant(t *testing.T) {
	before := utils.GetMetricValue("skiplist", "foreign_iterator_compare")

	e := newIntSet()
	e.Insert(1, nil)
	other := newIntSet()
	other.Insert(1, nil)

	eq := e.Begin().Equal(other.Begin())

	after := utils.GetMetricValue("skiplist", "foreign_iterator_compare")
	assert.Equal(t, before+1, after)
	assert.False(t, eq, "iterators anchored on different engines are never Equal")
}
