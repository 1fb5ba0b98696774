package skiplist

// Insert inserts value, optionally starting its top-level search from hint
// (see SPEC_FULL.md §4.4 for hint semantics). It returns the newly inserted
// node and true, or -- when duplicates are forbidden and an equivalent key
// is already present -- the tail sentinel and false. The rejected insertion
// leaves the engine's contents as they were before the call; only levels
// may have grown by one.
func (e *Engine[V, K]) Insert(value V, hint *Node[V]) (*Node[V], bool) {
	key := e.project(value)
	level := e.generator.NewLevel()
	if level >= e.levels {
		level = e.levels
		e.levels++
	}

	newNode := newNode(value, level)
	newNode.owner = e.head

	cur := e.head
	if e.isValidHint(hint, key) {
		cur = hint
	}

	preds := make([]*Node[V], e.levels)
	for l := e.levels - 1; l >= 0; l-- {
		for cur.next[l] != e.tail && e.less(e.project(cur.next[l].value), key) {
			cur = cur.next[l]
			searchStepsTotal.Inc()
		}
		preds[l] = cur
	}

	for l := 0; l <= level; l++ {
		newNode.next[l] = preds[l].next[l]
		preds[l].next[l] = newNode
	}

	newNode.prev = preds[0]
	newNode.next[0].prev = newNode
	e.count++

	if !e.allowDuplicates {
		if following := newNode.next[0]; e.IsValid(following) && Equivalent(e.less, e.project(following.value), key) {
			e.Remove(newNode)
			insertsTotal.WithLabelValues("duplicate_rejected").Inc()
			return e.tail, false
		}
	}

	insertsTotal.WithLabelValues("inserted").Inc()
	return newNode, true
}

// Remove unlinks node from every lane it participates in and destroys its
// value. node must be IsValid; removing a foreign, nil, or already-removed
// node is a precondition violation (SPEC_FULL.md §7 item 3) that this
// engine reports via pkg/utils.RaiseInvariant rather than corrupting state.
func (e *Engine[V, K]) Remove(node *Node[V]) {
	if !e.IsValid(node) || !e.belongsTo(node) {
		e.raiseBadNode("Remove")
		return
	}

	key := e.project(node.value)
	node.next[0].prev = node.prev

	cur := e.head
	for l := e.levels - 1; l >= 0; l-- {
		for cur.next[l] != e.tail && e.less(e.project(cur.next[l].value), key) {
			cur = cur.next[l]
		}
		// The run walk uses its own cursor so the descent into lane l-1 still
		// starts before the equivalent run, where node is reachable.
		pred := cur
		if e.allowDuplicates {
			for pred.next[l] != e.tail && pred.next[l] != node && Equivalent(e.less, e.project(pred.next[l].value), key) {
				pred = pred.next[l]
			}
		}
		if pred.next[l] == node {
			pred.next[l] = node.next[l]
		}
	}

	node.destroy()
	e.count--
	removesTotal.Inc()
}

// RemoveBetween removes every node from first through last inclusive.
// Intended for unique containers (set, map); a multiset implements its
// erase(first, last) as iterated single-node Remove calls instead -- see
// SPEC_FULL.md §4.6. The reason: a duplicate-aware range splice
// would have to re-derive per-lane run boundaries the same way Remove does,
// at which point it is no longer cheaper than the iterated form.
func (e *Engine[V, K]) RemoveBetween(first, last *Node[V]) {
	if !e.IsValid(first) || !e.IsValid(last) || !e.belongsTo(first) || !e.belongsTo(last) {
		e.raiseBadNode("RemoveBetween")
		return
	}

	last.next[0].prev = first.prev
	firstKey := e.project(first.value)
	lastKey := e.project(last.value)

	cur := e.head
	for l := e.levels - 1; l >= 0; l-- {
		for cur.next[l] != e.tail && e.less(e.project(cur.next[l].value), firstKey) {
			cur = cur.next[l]
		}
		pred := cur
		runner := pred.next[l]
		// Non-strict (<=) relation against lastKey, per SPEC_FULL.md §9 item 2:
		// the distilled spec flags the strict form as possibly-buggy source
		// behavior; the boundary node (last) itself must be skipped too.
		for runner != e.tail && LessOrEqual(e.less, e.project(runner.value), lastKey) {
			runner = runner.next[l]
		}
		pred.next[l] = runner
	}

	n := first
	for {
		next := n.next[0]
		isLast := n == last
		n.destroy()
		e.count--
		removesTotal.Inc()
		if isLast {
			break
		}
		n = next
	}
}

// RemoveAll destroys every real node and resets the engine to empty. levels
// is left unchanged, matching SPEC_FULL.md §4.4's "may be left unchanged or
// reset; behavior is equivalent".
func (e *Engine[V, K]) RemoveAll() {
	n := e.head.next[0]
	for n != e.tail {
		next := n.next[0]
		n.destroy()
		n = next
	}
	for l := range e.head.next {
		e.head.next[l] = e.tail
	}
	e.tail.prev = e.head
	e.count = 0
}
