package skiplist

// Node is a single element of the skip-list node graph. A node owns its
// stored value, the highest lane index it participates in (level), a
// forward-pointer per lane it participates in (next[0..level]), and a
// single back pointer used only on lane 0.
//
// A node's address never changes while it is part of a list: that stability
// is what lets iterators outlive unrelated insertions and removals.
//
// owner is stamped to the owning Engine's head sentinel at construction
// time (see Engine.New and Engine.Insert) and cleared only by destroy; it
// is the basis for Engine.belongsTo's cross-engine precondition check,
// cheaper than walking the node graph to confirm reachability.
type Node[V any] struct {
	value V
	level int
	next  []*Node[V]
	prev  *Node[V]
	owner *Node[V]
}

// Value returns the stored value. Calling it on a sentinel (Engine.head or
// Engine.tail) or on a node that has already been removed is undefined,
// mirroring dereferencing end() or a stale iterator in the distilled spec.
func (n *Node[V]) Value() V {
	return n.value
}

// Level reports the highest lane index n participates in; n.Level()+1 is
// the length of its forward-pointer array.
func (n *Node[V]) Level() int {
	return n.level
}

func newSentinel[V any](maxLevel int) *Node[V] {
	return &Node[V]{next: make([]*Node[V], maxLevel+1)}
}

func newNode[V any](value V, level int) *Node[V] {
	return &Node[V]{value: value, level: level, next: make([]*Node[V], level+1)}
}

// destroy drops the node's references so the garbage collector can reclaim
// the value and the neighboring nodes it pointed to; a destroyed node must
// never be reachable from the engine again.
func (n *Node[V]) destroy() {
	var zero V
	n.value = zero
	n.next = nil
	n.prev = nil
	n.owner = nil
}
