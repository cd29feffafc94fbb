package dispatcher

import (
	"sync"

	"github.com/jacobmcleman/JobBot/job"
	"github.com/jacobmcleman/JobBot/queue"
)

// Dispatcher classifies jobs into per-type queues and hands them back
// out to workers by specialization. It is safe for concurrent use.
type Dispatcher struct {
	queues *queue.Set

	mu   sync.Mutex
	cond *sync.Cond
}

// New creates a Dispatcher with a capacity-sized queue per job type.
func New(capacity int) *Dispatcher {
	d := &Dispatcher{queues: queue.NewSet(capacity)}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// classificationOrder is the fixed order a job is checked against,
// independent of which flags it carries.
var classificationOrder = [...]job.Type{
	job.Important, job.IO, job.Huge, job.Graphics, job.Tiny, job.Misc,
}

// classify returns the single job.Type a job is routed under.
func classify(h job.Handle) job.Type {
	for _, t := range classificationOrder {
		if h.Is().Type(t) {
			return t
		}
	}
	return job.Misc
}

// Submit routes h to its queue and wakes any worker waiting for work.
// It returns [job.ErrNullJob] for a null handle and [job.ErrQueueFull]
// if the target queue is at capacity.
func (d *Dispatcher) Submit(h job.Handle) error {
	if h.Is().Null() {
		return job.ErrNullJob
	}
	if !d.queues.For(classify(h)).Push(h) {
		return job.ErrQueueFull
	}
	d.mu.Lock()
	d.cond.Broadcast()
	d.mu.Unlock()
	return nil
}

// RequestJob returns the highest-priority job available for spec, or
// ok=false if none is queued right now. Important jobs are always
// checked first, ahead of whatever spec names.
func (d *Dispatcher) RequestJob(spec job.Specialization) (h job.Handle, ok bool) {
	if h, ok = d.queues.For(job.Important).Pop(); ok {
		return h, true
	}
	for _, t := range spec {
		if t == job.Null {
			break
		}
		if h, ok = d.queues.For(t).Pop(); ok {
			return h, true
		}
	}
	return job.Handle{}, false
}

// Wait blocks until the next broadcast from Submit or WakeAll. It's
// used by a Primary worker's
// main loop to sleep between polls instead of busy-spinning; a
// Volunteer worker never calls it.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	d.cond.Wait()
	d.mu.Unlock()
}

// WakeAll wakes every worker blocked in Wait, e.g. during shutdown so
// a Primary worker can observe its stop signal promptly.
func (d *Dispatcher) WakeAll() {
	d.mu.Lock()
	d.cond.Broadcast()
	d.mu.Unlock()
}

// QueueDepth reports the current backlog per job type, for
// introspection and metrics — not used by any routing decision.
func (d *Dispatcher) QueueDepth() map[string]int {
	return d.queues.DepthByType()
}
