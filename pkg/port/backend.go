// Package port exposes the ordered containers in pkg/container over network
// protocols. The Redis wire protocol demo server in this package is the
// first (and so far only) port.
package port

import (
	"errors"
	"sync"

	"github.com/ordskip/ordskip/pkg/container"
)

// ErrNoSuchKey is returned by backend operations addressed at a sorted set
// or set name that was never created.
var ErrNoSuchKey = errors.New("no such key")

// zmember is the (score, member) pair a sorted set orders its rank view by.
// Ties on score break on member so the ordering stays a strict weak order,
// matching real Redis ZSET tie-breaking.
type zmember struct {
	score  float64
	member string
}

func lessZMember(a, b zmember) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.member < b.member
}

// sortedSet mirrors Redis's own ZSET representation: a hash from member to
// score for O(log n) ZSCORE/ZADD-update, plus a score-ordered structure for
// rank-based range queries. Here both sides are pkg/container adapters over
// the same skip-list engine instead of a separate dict + skiplist pair.
type sortedSet struct {
	byMember *container.Map[string, float64]
	byScore  *container.Set[zmember]
}

func newSortedSet() *sortedSet {
	return &sortedSet{
		byMember: container.NewMap[string, float64](func(a, b string) bool { return a < b }),
		byScore:  container.NewSet(lessZMember),
	}
}

// add inserts or updates member's score, reporting whether member is newly
// added (false means an existing member's score was updated).
func (s *sortedSet) add(member string, score float64) bool {
	if previous, existed := s.byMember.Get(member); existed {
		s.byScore.Remove(zmember{score: previous, member: member})
		s.byMember.Put(member, score)
		s.byScore.Insert(zmember{score: score, member: member})
		return false
	}
	s.byMember.Put(member, score)
	s.byScore.Insert(zmember{score: score, member: member})
	return true
}

func (s *sortedSet) remove(member string) bool {
	score, existed := s.byMember.Get(member)
	if !existed {
		return false
	}
	s.byMember.Delete(member)
	s.byScore.Remove(zmember{score: score, member: member})
	return true
}

func (s *sortedSet) score(member string) (float64, bool) {
	return s.byMember.Get(member)
}

func (s *sortedSet) card() int {
	return s.byMember.Len()
}

// rank returns member's 0-based position in ascending score order. This is
// a linear scan: Engine has no augmented span counters to answer rank in
// O(log n), and adding them is out of scope (SPEC_FULL.md names rank as a
// demo-server convenience, not a core container operation).
func (s *sortedSet) rank(member string) (int, bool) {
	i := 0
	for zm := range s.byScore.All() {
		if zm.member == member {
			return i, true
		}
		i++
	}
	return 0, false
}

// rangeByRank returns the members from start to stop inclusive, 0-based,
// with Python/Redis-style negative indices counting back from the end.
func (s *sortedSet) rangeByRank(start, stop int) []string {
	all := make([]string, 0, s.card())
	for zm := range s.byScore.All() {
		all = append(all, zm.member)
	}
	n := len(all)
	start, stop = clampRange(start, n), clampRange(stop, n)
	if start > stop || start >= n {
		return nil
	}
	if stop >= n {
		stop = n - 1
	}
	return all[start : stop+1]
}

func clampRange(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Store is the in-memory backend shared by the Redis demo server: a
// namespace of independently keyed sets and sorted sets, guarded by a
// single mutex.
type Store struct {
	mux   sync.RWMutex
	sets  map[string]*container.Set[string]
	zsets map[string]*sortedSet
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		sets:  make(map[string]*container.Set[string]),
		zsets: make(map[string]*sortedSet),
	}
}

func (st *Store) setFor(key string, createIfMissing bool) *container.Set[string] {
	s, ok := st.sets[key]
	if !ok {
		if !createIfMissing {
			return nil
		}
		s = container.NewSet(func(a, b string) bool { return a < b })
		st.sets[key] = s
	}
	return s
}

func (st *Store) zsetFor(key string, createIfMissing bool) *sortedSet {
	z, ok := st.zsets[key]
	if !ok {
		if !createIfMissing {
			return nil
		}
		z = newSortedSet()
		st.zsets[key] = z
	}
	return z
}

// SAdd adds members to the set named key, returning the number newly added.
func (st *Store) SAdd(key string, members []string) int {
	st.mux.Lock()
	defer st.mux.Unlock()
	s := st.setFor(key, true)
	added := 0
	for _, m := range members {
		if s.Insert(m) {
			added++
		}
	}
	return added
}

// SRem removes members from the set named key, returning the number removed.
func (st *Store) SRem(key string, members []string) int {
	st.mux.Lock()
	defer st.mux.Unlock()
	s := st.setFor(key, false)
	if s == nil {
		return 0
	}
	removed := 0
	for _, m := range members {
		if s.Remove(m) {
			removed++
		}
	}
	return removed
}

// SIsMember reports whether member belongs to the set named key.
func (st *Store) SIsMember(key, member string) bool {
	st.mux.RLock()
	defer st.mux.RUnlock()
	s := st.setFor(key, false)
	return s != nil && s.Contains(member)
}

// SCard reports the cardinality of the set named key.
func (st *Store) SCard(key string) int {
	st.mux.RLock()
	defer st.mux.RUnlock()
	s := st.setFor(key, false)
	if s == nil {
		return 0
	}
	return s.Len()
}

// SMembers returns every member of the set named key in ascending order.
func (st *Store) SMembers(key string) []string {
	st.mux.RLock()
	defer st.mux.RUnlock()
	s := st.setFor(key, false)
	if s == nil {
		return nil
	}
	members := make([]string, 0, s.Len())
	for m := range s.All() {
		members = append(members, m)
	}
	return members
}

// ZAdd adds or updates member's score in the sorted set named key,
// returning the number of members newly added (not counting score updates).
func (st *Store) ZAdd(key string, entries map[string]float64) int {
	st.mux.Lock()
	defer st.mux.Unlock()
	z := st.zsetFor(key, true)
	added := 0
	for member, score := range entries {
		if z.add(member, score) {
			added++
		}
	}
	return added
}

// ZScore returns member's score in the sorted set named key.
func (st *Store) ZScore(key, member string) (float64, bool) {
	st.mux.RLock()
	defer st.mux.RUnlock()
	z := st.zsetFor(key, false)
	if z == nil {
		return 0, false
	}
	return z.score(member)
}

// ZRem removes members from the sorted set named key, returning the number
// removed.
func (st *Store) ZRem(key string, members []string) int {
	st.mux.Lock()
	defer st.mux.Unlock()
	z := st.zsetFor(key, false)
	if z == nil {
		return 0
	}
	removed := 0
	for _, m := range members {
		if z.remove(m) {
			removed++
		}
	}
	return removed
}

// ZCard reports the cardinality of the sorted set named key.
func (st *Store) ZCard(key string) int {
	st.mux.RLock()
	defer st.mux.RUnlock()
	z := st.zsetFor(key, false)
	if z == nil {
		return 0
	}
	return z.card()
}

// ZRank returns member's 0-based rank in ascending score order.
func (st *Store) ZRank(key, member string) (int, bool) {
	st.mux.RLock()
	defer st.mux.RUnlock()
	z := st.zsetFor(key, false)
	if z == nil {
		return 0, false
	}
	return z.rank(member)
}

// ZRange returns members from start to stop inclusive, by ascending rank.
func (st *Store) ZRange(key string, start, stop int) []string {
	st.mux.RLock()
	defer st.mux.RUnlock()
	z := st.zsetFor(key, false)
	if z == nil {
		return nil
	}
	return z.rangeByRank(start, stop)
}
