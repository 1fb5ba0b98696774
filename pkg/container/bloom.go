package container

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// hashKey derives a 64-bit digest for a key of common kinds, falling back to
// a printed representation for everything else, the same type-switch shape
// as a sharded cache's hash-dispatch, extended with the cases that show up
// as ordered-container keys.
func hashKey[K any](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case []byte:
		return xxhash.Sum64(k)
	case int:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(k))
		return xxhash.Sum64(b[:])
	case int64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(k))
		return xxhash.Sum64(b[:])
	case uint64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], k)
		return xxhash.Sum64(b[:])
	case int32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(k))
		return xxhash.Sum64(b[:])
	case uint32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], k)
		return xxhash.Sum64(b[:])
	default:
		return xxhash.Sum64String(fmt.Sprintf("%#v", k))
	}
}

// membershipFilter is an optional Bloom-filter front end for Contains: a
// negative test is conclusive ("definitely absent", skip the skip list
// entirely), a positive test is not ("maybe present", fall through to the
// engine). It is disabled (nil-safe) unless a container is built with
// WithMembershipFilter.
type membershipFilter[K any] struct {
	filter        *bloom.BloomFilter
	mutationsSeen int
	rebuildEvery  int
}

func newMembershipFilter[K any](expectedItems uint, falsePositiveRate float64, rebuildEvery int) *membershipFilter[K] {
	return &membershipFilter[K]{
		filter:       bloom.NewWithEstimates(expectedItems, falsePositiveRate),
		rebuildEvery: rebuildEvery,
	}
}

func (f *membershipFilter[K]) digest(key K) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], hashKey(key))
	return b[:]
}

// observeInsert records a newly inserted key in the filter. It never
// rebuilds; rebuilding is observeMutation's job.
func (f *membershipFilter[K]) observeInsert(key K) {
	if f == nil {
		return
	}
	f.filter.Add(f.digest(key))
}

// observeMutation records one removal and, once rebuildEvery removals have
// accumulated since the last rebuild, rebuilds the filter from keys so stale
// "maybe present" bits from long-removed keys don't pile up and degrade the
// false-positive rate.
func (f *membershipFilter[K]) observeMutation(keys iter.Seq[K]) {
	if f == nil || f.rebuildEvery <= 0 {
		return
	}
	f.mutationsSeen++
	if f.mutationsSeen < f.rebuildEvery {
		return
	}
	f.rebuild(keys)
}

func (f *membershipFilter[K]) rebuild(keys iter.Seq[K]) {
	if f == nil {
		return
	}
	next := bloom.NewWithEstimates(uint(f.filter.ApproximatedSize())+1, 0.01)
	for k := range keys {
		next.Add(f.digest(k))
	}
	f.filter = next
	f.mutationsSeen = 0
}

// maybeContains reports false only when key is conclusively absent. true
// means "check the engine"; it is also the answer when no filter is
// configured.
func (f *membershipFilter[K]) maybeContains(key K) bool {
	if f == nil {
		return true
	}
	return f.filter.Test(f.digest(key))
}
