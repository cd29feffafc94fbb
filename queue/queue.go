package queue

import (
	"sync"

	"github.com/jacobmcleman/JobBot/job"
)

// DefaultCapacity is the per-queue capacity used by [NewSet] when no
// override is given.
const DefaultCapacity = 4096

// Queue is a bounded FIFO of job handles. It is safe for concurrent
// use by multiple producers and consumers.
type Queue struct {
	mu   sync.Mutex
	buf  []job.Handle
	head int
	size int
}

// NewQueue creates a queue with room for capacity handles.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{buf: make([]job.Handle, capacity)}
}

// Push appends h to the queue. It reports false (without adding h) if
// the queue is full; callers surface that as [job.ErrQueueFull].
func (q *Queue) Push(h job.Handle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == len(q.buf) {
		return false
	}
	tail := (q.head + q.size) % len(q.buf)
	q.buf[tail] = h
	q.size++
	return true
}

// Pop removes and returns the oldest queued handle. ok is false if the
// queue was empty.
func (q *Queue) Pop() (h job.Handle, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return job.Handle{}, false
	}
	h = q.buf[q.head]
	q.buf[q.head] = job.Handle{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return h, true
}

// Len returns the number of handles currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Set is one Queue per job type, including Misc for jobs with no type
// flags set.
type Set struct {
	queues [6]*Queue // indexed by job.Type; Misc last
}

// NewSet creates a Set with a capacity-sized queue for every job type.
func NewSet(capacity int) *Set {
	s := &Set{}
	for i := range s.queues {
		s.queues[i] = NewQueue(capacity)
	}
	return s
}

// For returns the queue backing job type t.
func (s *Set) For(t job.Type) *Queue {
	return s.queues[t]
}

// DepthByType reports the current length of each type's queue, keyed
// by the type's name. Feeds dispatcher.Dispatcher.QueueDepth.
func (s *Set) DepthByType() map[string]int {
	depths := make(map[string]int, len(s.queues))
	for t := job.Tiny; int(t) < len(s.queues); t++ {
		depths[t.String()] = s.queues[t].Len()
	}
	return depths
}
