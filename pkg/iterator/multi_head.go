// Package iterator provides merge iteration across multiple ordered
// sequences. Any caller holding several independently ordered containers
// from pkg/container -- sharded sets, a primary map layered with overrides,
// replicas of the same ordered collection -- can merge their All() /
// Reversed() sequences into a single ordered stream without copying their
// contents into a new container first.
//
// This is the same shape of problem as merging sorted SSTables, MemTables,
// and cluster shards behind one lazy iterator so a range scan runs in
// constant memory: N already-sorted sources, pick the lowest key, break
// priority ties by source order, discard lower-priority duplicates. The
// ordered-container library has no on-disk tables, but that shape shows up
// whenever a caller keeps more than one skiplist-backed container and wants
// one sorted view over all of them.
package iterator

import (
	"container/heap"
	"errors"
	"iter"

	"github.com/ordskip/ordskip/pkg/utils"
)

// headElement is a pulled item from one of MultiHead's input sequences.
type headElement[K any, V any] struct {
	key    K
	val    V
	seqIdx int // index into MultiHead's pull/stop slices identifying the source sequence.
}

// mergeHeap is a min-heap over the current head element of each input
// sequence, ordered by key and then by source priority (lower seqIdx wins
// ties). It implements container/heap.Interface.
type mergeHeap[K any, V any] struct {
	compare  utils.CompareFn[K]
	elements []*headElement[K, V]
}

var _ heap.Interface = (*mergeHeap[int, int])(nil)

func (h *mergeHeap[K, V]) Len() int { return len(h.elements) }

func (h *mergeHeap[K, V]) Less(i, j int) bool {
	a, b := h.elements[i], h.elements[j]
	switch cmp := h.compare(a.key, b.key); {
	case cmp == 0:
		return a.seqIdx < b.seqIdx
	case cmp < 0:
		return true
	default:
		return false
	}
}

func (h *mergeHeap[K, V]) Swap(i, j int) { h.elements[i], h.elements[j] = h.elements[j], h.elements[i] }

func (h *mergeHeap[K, V]) Push(x any) {
	element, ok := x.(*headElement[K, V])
	if !ok {
		utils.RaiseInvariant("iterator", "pushed_invalid_type", "An item with an invalid type was pushed to the merge heap.")
		return
	}
	if element == nil {
		utils.RaiseInvariant("iterator", "pushed_nil_element", "A nil element was pushed to the merge heap.")
		return
	}
	h.elements = append(h.elements, element)
}

func (h *mergeHeap[K, V]) Pop() any {
	last := h.elements[len(h.elements)-1]
	h.elements = h.elements[:len(h.elements)-1]
	return last
}

func (h *mergeHeap[K, V]) topKey() K {
	if len(h.elements) == 0 {
		var zero K
		return zero
	}
	return h.elements[0].key
}

// MultiHead merges sequences, a list of independently ascending key/value
// sequences, into one ascending sequence. Sequences earlier in the slice
// have higher priority: when two sequences produce the same key, only the
// value from the earliest (lowest-index) sequence is yielded and the
// others are discarded. Every input sequence must already be sorted
// ascending by cmp; MultiHead does not sort, it only merges.
//
// Each input sequence is pulled from lazily, one element ahead, so merging
// N sequences holding a total of M elements costs O(N) extra memory rather
// than O(M).
func MultiHead[K any, V any](cmp utils.CompareFn[K], sequences []iter.Seq[utils.Pair[K, V]]) (iter.Seq[utils.Pair[K, V]], error) {
	if cmp == nil {
		return nil, errors.New("expected a non-nil comparison function")
	}
	if len(sequences) == 0 {
		return nil, errors.New("expected a non-empty sequences slice")
	}

	h := &mergeHeap[K, V]{compare: cmp, elements: make([]*headElement[K, V], 0, len(sequences))}
	pull := make([]func() (utils.Pair[K, V], bool), 0, len(sequences))
	stop := make([]func(), 0, len(sequences))
	for _, seq := range sequences {
		pullFn, stopFn := iter.Pull(seq)
		first, ok := pullFn()
		if !ok {
			stopFn()
			continue
		}
		heap.Push(h, &headElement[K, V]{key: first.Key, val: first.Value, seqIdx: len(pull)})
		pull = append(pull, pullFn)
		stop = append(stop, stopFn)
	}

	next := func() utils.Pair[K, V] {
		top := heap.Pop(h).(*headElement[K, V])
		nextVal, ok := pull[top.seqIdx]()
		if ok {
			heap.Push(h, &headElement[K, V]{key: nextVal.Key, val: nextVal.Value, seqIdx: top.seqIdx})
		} else {
			stop[top.seqIdx]()
		}
		return utils.Pair[K, V]{Key: top.key, Value: top.val}
	}

	return func(yield func(utils.Pair[K, V]) bool) {
		if h.Len() == 0 {
			return
		}
		defer func() {
			for _, stopFn := range stop {
				stopFn()
			}
		}()

		current := next()
		if !yield(current) {
			return
		}
		for h.Len() > 0 {
			if cmp(h.topKey(), current.Key) == 0 {
				next() // lower-priority duplicate of the key just yielded, discard.
				continue
			}
			current = next()
			if !yield(current) {
				return
			}
		}
	}, nil
}
