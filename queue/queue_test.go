package queue_test

import (
	"testing"

	"github.com/jacobmcleman/JobBot/job"
	"github.com/jacobmcleman/JobBot/queue"
)

func TestQueuePushPopOrdering(t *testing.T) {
	q := queue.NewQueue(4)
	pool := job.NewPool(8)

	a := pool.Create(func(job.Handle) {})
	b := pool.Create(func(job.Handle) {})

	if !q.Push(a) || !q.Push(b) {
		t.Fatal("push should succeed while under capacity")
	}
	if q.Len() != 2 {
		t.Fatalf("expected length 2, got %d", q.Len())
	}

	first, ok := q.Pop()
	if !ok || first != a {
		t.Fatal("expected FIFO order: a before b")
	}
	second, ok := q.Pop()
	if !ok || second != b {
		t.Fatal("expected FIFO order: b after a")
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected empty queue to report ok=false")
	}
}

func TestQueueRejectsPushWhenFull(t *testing.T) {
	q := queue.NewQueue(1)
	pool := job.NewPool(8)
	h := pool.Create(func(job.Handle) {})

	if !q.Push(h) {
		t.Fatal("first push should succeed")
	}
	if q.Push(h) {
		t.Fatal("push into a full queue should fail")
	}
}

func TestSetRoutesByType(t *testing.T) {
	s := queue.NewSet(4)
	pool := job.NewPool(8)

	ioJob := pool.Create(func(job.Handle) {}, job.WithType(job.IO))
	s.For(job.IO).Push(ioJob)

	if s.For(job.IO).Len() != 1 {
		t.Fatal("expected IO queue to hold the pushed job")
	}
	if s.For(job.Misc).Len() != 0 {
		t.Fatal("Misc queue should be untouched")
	}

	depths := s.DepthByType()
	if depths["IO"] != 1 {
		t.Fatalf("expected DepthByType[\"IO\"] == 1, got %d", depths["IO"])
	}
}
