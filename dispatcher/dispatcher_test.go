package dispatcher_test

import (
	"testing"
	"time"

	"github.com/jacobmcleman/JobBot/dispatcher"
	"github.com/jacobmcleman/JobBot/job"
)

func TestSubmitRejectsNullHandle(t *testing.T) {
	d := dispatcher.New(4)
	if err := d.Submit(job.Handle{}); err != job.ErrNullJob {
		t.Fatalf("expected ErrNullJob, got %v", err)
	}
}

func TestImportantAlwaysServicedFirst(t *testing.T) {
	d := dispatcher.New(4)
	pool := job.NewPool(8)

	tiny := pool.Create(func(job.Handle) {}, job.WithType(job.Tiny))
	important := pool.Create(func(job.Handle) {}, job.WithType(job.Important))

	if err := d.Submit(tiny); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Submit(important); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := d.RequestJob(job.SpecNone)
	if !ok || got != important {
		t.Fatal("expected the Important job to be serviced before anything else")
	}
}

func TestRequestJobFollowsSpecializationOrder(t *testing.T) {
	d := dispatcher.New(4)
	pool := job.NewPool(8)

	huge := pool.Create(func(job.Handle) {}, job.WithType(job.Huge))
	tiny := pool.Create(func(job.Handle) {}, job.WithType(job.Tiny))

	if err := d.Submit(tiny); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Submit(huge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// SpecNone prefers Huge over Tiny.
	got, ok := d.RequestJob(job.SpecNone)
	if !ok || got != huge {
		t.Fatal("expected SpecNone to prefer the Huge job over the Tiny job")
	}
}

func TestRequestJobEmpty(t *testing.T) {
	d := dispatcher.New(4)
	if _, ok := d.RequestJob(job.SpecRealTime); ok {
		t.Fatal("expected no job to be available")
	}
}

func TestQueueFullReturnsError(t *testing.T) {
	d := dispatcher.New(1)
	pool := job.NewPool(8)

	first := pool.Create(func(job.Handle) {}, job.WithType(job.Tiny))
	second := pool.Create(func(job.Handle) {}, job.WithType(job.Tiny))

	if err := d.Submit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Submit(second); err != job.ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestWaitWakesOnSubmit(t *testing.T) {
	d := dispatcher.New(4)
	pool := job.NewPool(8)
	woke := make(chan struct{})

	go func() {
		d.Wait()
		close(woke)
	}()

	time.Sleep(10 * time.Millisecond) // let the goroutine reach Wait
	h := pool.Create(func(job.Handle) {})
	if err := d.Submit(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake up after Submit")
	}
}
