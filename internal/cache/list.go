package cache

// entry is a node in the cache's usage-ordered sequence, intrusively
// linked so promotion and eviction are O(1) with no separate allocation.
// The key lives on the node (not just in the index) so that evicting the
// tail never needs to consult the index to find out what it held.
type entry struct {
	prev, next *entry
	key        string
	value      string
}

// list is the usage-ordered doubly linked sequence backing the LRU index.
// head is most-recently-used, tail is least-recently-used. It carries no
// locking of its own: the cache engine that embeds it is the sole owner,
// per the single-worker-per-shard concurrency model.
type list struct {
	head, tail *entry
	size       int
}

// pushFront inserts n as the new most-recently-used entry.
func (l *list) pushFront(n *entry) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// unlink removes n from the sequence without freeing it, leaving n
// detached (nil prev/next) so it's safe to reuse or discard.
func (l *list) unlink(n *entry) {
	if n.prev != nil {
		n.prev.next = n.next
	} else if l.head == n {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if l.tail == n {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}

// moveToFront re-promotes an already-linked node to the head. A no-op
// when n is already the head, matching the spec's "promotion on get is
// unconditional for hits on non-head nodes" tie-break.
func (l *list) moveToFront(n *entry) {
	if l.head == n {
		return
	}
	l.unlink(n)
	l.pushFront(n)
}
