package manager_test

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jacobmcleman/JobBot/job"
	"github.com/jacobmcleman/JobBot/manager"
)

func TestDefaultWorkersFewJobs(t *testing.T) {
	m := manager.New(0, manager.WithNumWorkers(0))
	defer m.Stop()

	var ran1, ran2, ran3 atomic.Bool
	job1 := m.Create(func(job.Handle) { ran1.Store(true) })
	job2 := m.CreateChild(func(job.Handle) { ran2.Store(true) }, job1)
	job3 := m.CreateChild(func(job.Handle) { ran3.Store(true) }, job1)

	if err := m.Submit(job1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Submit(job2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Submit(job3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Wait(context.Background(), job1)

	if !job1.Is().Finished() || !job2.Is().Finished() || !job3.Is().Finished() {
		t.Fatal("expected all jobs finished after Wait returns")
	}
	if !ran1.Load() || !ran2.Load() || !ran3.Load() {
		t.Fatal("expected every job function to have run")
	}
}

func TestMultiWorkerStartStop(t *testing.T) {
	m := manager.New(4)
	time.Sleep(3 * time.Millisecond)
	m.Stop()

	if len(m.Workers()) != 4 {
		t.Fatalf("expected 4 primary workers, got %d", len(m.Workers()))
	}
}

func TestMultiWorkerManyJobs(t *testing.T) {
	const jobCount = 2048

	m := manager.New(4)
	defer m.Stop()

	parent := m.Create(func(job.Handle) {})
	release := parent.Block()

	children := make([]job.Handle, jobCount)
	for i := range children {
		children[i] = m.CreateChild(func(job.Handle) {}, parent)
		if err := m.Submit(children[i]); err != nil {
			t.Fatalf("unexpected error submitting child %d: %v", i, err)
		}
	}
	if err := m.Submit(parent); err != nil {
		t.Fatalf("unexpected error submitting parent: %v", err)
	}
	release()

	m.Wait(context.Background(), parent)

	if !parent.Is().Finished() {
		t.Fatal("parent did not finish")
	}
	for i, c := range children {
		if !c.Is().Finished() {
			t.Fatalf("child %d did not finish", i)
		}
	}
}

func TestDefaultWorkersTakeAnyJob(t *testing.T) {
	m := manager.New(0, manager.WithNumWorkers(0))
	defer m.Stop()

	var ranSleepy, ranOther atomic.Bool
	sleepy, err := job.CreateWithDataIn(m.Pool(), func(h job.Handle) {
		time.Sleep(time.Duration(job.GetData[int](h)) * time.Millisecond)
		ranSleepy.Store(true)
	}, 1, job.WithType(job.IO))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := m.Create(func(job.Handle) { ranOther.Store(true) })

	if err := m.Submit(other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Submit(sleepy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Wait(context.Background(), other)
	m.Wait(context.Background(), sleepy)

	if !ranSleepy.Load() || !ranOther.Load() {
		t.Fatal("expected both jobs to run with the default worker set")
	}
}

// TestSplittingJobs forks into two children per level until depth reaches 0,
// exercising the same recursive-splitting shape as the original's
// "tribble test".
func TestSplittingJobs(t *testing.T) {
	const maxDepth = 4

	m := manager.New(0, manager.WithNumWorkers(0))
	defer m.Stop()

	var leavesReached atomic.Int64
	var split job.Func
	split = func(h job.Handle) {
		depth := job.GetData[int](h)
		if depth == 0 {
			leavesReached.Add(1)
			return
		}
		release := h.Block()
		defer release()

		left, err := job.CreateChildWithDataIn(m.Pool(), split, h, depth-1)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		right, err := job.CreateChildWithDataIn(m.Pool(), split, h, depth-1)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if submitErr := m.Submit(left); submitErr != nil {
			t.Errorf("unexpected error: %v", submitErr)
		}
		if submitErr := m.Submit(right); submitErr != nil {
			t.Errorf("unexpected error: %v", submitErr)
		}
	}

	top, err := job.CreateWithDataIn(m.Pool(), split, maxDepth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Submit(top); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Wait(context.Background(), top)

	if got, want := leavesReached.Load(), int64(1<<maxDepth); got != want {
		t.Errorf("expected %d leaves reached, got %d", want, got)
	}
}

// TestRealTimeVolunteerExcludesIO pins a single Primary worker's
// background goroutine down right after it starts (before it can steal
// any work), leaving the Volunteer — RealTime-specialized, since a
// Primary is present — as the only worker actually servicing the
// dispatcher. A RealTime worker never requests IO, so an IO job stays
// queued forever while a Tiny job submitted alongside it completes.
func TestRealTimeVolunteerExcludesIO(t *testing.T) {
	m := manager.New(1)
	for _, w := range m.Workers() {
		w.Stop() // stop the lone Primary before it can pick anything up
	}
	defer m.Stop()

	var ranTiny, ranIO atomic.Bool
	tiny := m.Create(func(job.Handle) { ranTiny.Store(true) }, job.WithType(job.Tiny))
	io := m.Create(func(job.Handle) { ranIO.Store(true) }, job.WithType(job.IO))

	if err := m.Submit(io); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Submit(tiny); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Wait(context.Background(), tiny)
	if !ranTiny.Load() || !tiny.Is().Finished() {
		t.Fatal("expected the tiny job to finish")
	}

	time.Sleep(100 * time.Millisecond)
	if ranIO.Load() || io.Is().Finished() {
		t.Fatal("expected the IO job to stay unfinished: a RealTime volunteer must never take it")
	}
}

// TestStressManyChildren mirrors the original implementation's
// StressTest: a parent job held open across the submission of 1<<16
// children, submitted with a retry-on-full backoff since the
// dispatcher's per-type queue is far smaller than the child count.
func TestStressManyChildren(t *testing.T) {
	const childCount = 1 << 16

	m := manager.New(8, manager.WithPoolSize(1<<17))
	defer m.Stop()

	parent := m.Create(func(job.Handle) {})
	release := parent.Block()

	children := make([]job.Handle, childCount)
	for i := range children {
		children[i] = m.CreateChild(func(job.Handle) {}, parent)
		for {
			err := m.Submit(children[i])
			if err == nil {
				break
			}
			if err != job.ErrQueueFull {
				t.Fatalf("unexpected error submitting child %d: %v", i, err)
			}
			runtime.Gosched()
		}
	}
	release()
	if err := m.Submit(parent); err != nil {
		t.Fatalf("unexpected error submitting parent: %v", err)
	}

	m.Wait(context.Background(), parent)

	if !parent.Is().Finished() {
		t.Fatal("parent did not finish")
	}
	for i, c := range children {
		if !c.Is().Finished() {
			t.Fatalf("child %d did not finish", i)
		}
	}
	if got := m.Pool().UnfinishedJobCount(); got != 0 {
		t.Fatalf("expected UnfinishedJobCount 0 at quiescence, got %d", got)
	}
}

func TestInstanceIsASingleton(t *testing.T) {
	first := manager.Instance()
	second := manager.Instance()
	if first != second {
		t.Fatal("expected Instance() to return the same Manager across calls")
	}
}
