package monitor

// Queue is a bounded FIFO of philosopher ids.
//
// Queue is a ring buffer holding each id at most once. It is not safe for
// concurrent use; the Monitor only touches it with its lock held.
type Queue struct {
	ids  []int
	head int
	size int
}

// NewQueue creates an empty Queue holding at most capacity ids.
func NewQueue(capacity int) *Queue {
	return &Queue{ids: make([]int, capacity)}
}

// Push adds id to the back of the queue.
func (q *Queue) Push(id int) error {
	if q.Contains(id) {
		return ErrQueueDuplicate
	}
	if q.size == len(q.ids) {
		return ErrQueueFull
	}
	q.ids[(q.head+q.size)%len(q.ids)] = id
	q.size++
	return nil
}

// Pop removes and returns the id at the front of the queue.
func (q *Queue) Pop() (int, error) {
	if q.size == 0 {
		return 0, ErrQueueEmpty
	}
	id := q.ids[q.head]
	q.head = (q.head + 1) % len(q.ids)
	q.size--
	return id, nil
}

// Front returns the id at the front of the queue without removing it.
func (q *Queue) Front() (int, bool) {
	if q.size == 0 {
		return 0, false
	}
	return q.ids[q.head], true
}

// Contains returns true if id is queued.
func (q *Queue) Contains(id int) bool {
	return q.index(id) >= 0
}

// Remove takes id out of the queue wherever it is, keeping the order of
// the remaining ids. It returns false if id was not queued.
func (q *Queue) Remove(id int) bool {
	i := q.index(id)
	if i < 0 {
		return false
	}
	for ; i < q.size-1; i++ {
		q.ids[(q.head+i)%len(q.ids)] = q.ids[(q.head+i+1)%len(q.ids)]
	}
	q.size--
	return true
}

// index returns the position of id counted from the front, or -1.
func (q *Queue) index(id int) int {
	for i := 0; i < q.size; i++ {
		if q.ids[(q.head+i)%len(q.ids)] == id {
			return i
		}
	}
	return -1
}

// Len returns the number of queued ids.
func (q *Queue) Len() int { return q.size }

// Cap returns the capacity of the queue.
func (q *Queue) Cap() int { return len(q.ids) }

// IsEmpty returns true if nothing is queued.
func (q *Queue) IsEmpty() bool { return q.size == 0 }

// Slice returns the queued ids, front first.
func (q *Queue) Slice() []int {
	ids := make([]int, q.size)
	for i := range ids {
		ids[i] = q.ids[(q.head+i)%len(q.ids)]
	}
	return ids
}
