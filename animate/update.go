package animate

// Message carries a fresh target for one property of one animation.
type Message struct {
	Target ID
	Kind   PropKind
	Value  Value
}

// Queue holds update messages until the addressed Animation drains them.
// It is confined to the frame-loop goroutine and does no locking.
type Queue struct {
	pending map[ID][]Message
	closed  map[ID]struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	q := new(Queue)
	q.pending = make(map[ID][]Message)
	q.closed = make(map[ID]struct{})
	return q
}

// Push appends a message for id. Messages pushed while a drain for id is
// being processed are kept for the next drain. Pushes for a closed id are
// dropped.
func (q *Queue) Push(id ID, kind PropKind, v Value) {
	if _, ok := q.closed[id]; ok {
		return
	}
	q.pending[id] = append(q.pending[id], Message{Target: id, Kind: kind, Value: v})
}

// DrainFor removes and returns the messages for id in arrival order.
func (q *Queue) DrainFor(id ID) []Message {
	msgs, ok := q.pending[id]
	if !ok {
		return nil
	}
	delete(q.pending, id)
	return msgs
}

// Pending returns the number of messages waiting for id.
func (q *Queue) Pending(id ID) int {
	return len(q.pending[id])
}

// Len returns the number of messages waiting for all animations.
func (q *Queue) Len() int {
	n := 0
	for _, msgs := range q.pending {
		n += len(msgs)
	}
	return n
}

// Close drops everything waiting for id and refuses later pushes for it.
// Ids are never reused, so the set of closed ids only grows: one entry per
// released animation for the life of the Queue.
func (q *Queue) Close(id ID) {
	delete(q.pending, id)
	q.closed[id] = struct{}{}
}
