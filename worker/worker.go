package worker

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jacobmcleman/JobBot/dispatcher"
	"github.com/jacobmcleman/JobBot/ext"
	"github.com/jacobmcleman/JobBot/id"
	"github.com/jacobmcleman/JobBot/job"
)

// Mode decides what a worker does when it finds no work to run.
type Mode int

const (
	// Primary workers own a background goroutine that blocks on the
	// dispatcher between polls.
	Primary Mode = iota
	// Volunteer workers never block and never own a goroutine; they
	// are driven explicitly by RunOne calls from whatever is
	// cooperatively waiting.
	Volunteer
)

func (m Mode) String() string {
	if m == Volunteer {
		return "Volunteer"
	}
	return "Primary"
}

// Worker pulls jobs matching its specialization from a dispatcher and
// runs them. It implements [job.Runner], so a running job's function
// can borrow it (via [job.Handle.WaitFor]) to keep doing useful work
// while cooperatively waiting on something else.
type Worker struct {
	id         id.WorkerID
	mode       Mode
	spec       job.Specialization
	dispatcher *dispatcher.Dispatcher
	extensions *ext.Registry
	logger     *slog.Logger

	keepWorking atomic.Bool
	stopCh      chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// Option configures a Worker at construction time.
type Option func(*Worker)

// WithLogger overrides the worker's logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) { w.logger = l }
}

// WithExtensions attaches a lifecycle hook registry.
func WithExtensions(r *ext.Registry) Option {
	return func(w *Worker) { w.extensions = r }
}

// New creates a Worker with the given specialization and mode, pulling
// work from d. The worker is not started until [Worker.Start] is
// called (Primary mode only — a Volunteer worker has nothing to start).
func New(d *dispatcher.Dispatcher, spec job.Specialization, mode Mode, opts ...Option) *Worker {
	w := &Worker{
		id:         id.NewWorkerID(),
		mode:       mode,
		spec:       spec,
		dispatcher: d,
		logger:     slog.Default(),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the worker's debug identifier.
func (w *Worker) ID() id.WorkerID { return w.id }

// Mode reports whether this is a Primary or Volunteer worker.
func (w *Worker) Mode() Mode { return w.mode }

// Start launches the worker's background polling goroutine. It is a
// no-op for a Volunteer worker, which has no goroutine of its own.
func (w *Worker) Start() {
	if w.mode == Volunteer {
		return
	}
	if !w.keepWorking.CompareAndSwap(false, true) {
		return // already running
	}
	w.logger.Info("worker starting",
		slog.String("worker_id", w.id.String()),
		slog.String("mode", w.mode.String()),
	)
	w.wg.Add(1)
	go w.mainLoop()
}

// Stop signals the worker's main loop to exit and waits for it to do
// so. It is a no-op for a Volunteer worker.
func (w *Worker) Stop() {
	if w.mode == Volunteer {
		return
	}
	if !w.keepWorking.CompareAndSwap(true, false) {
		return // already stopped, or never started
	}
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.dispatcher.WakeAll() // release a goroutine blocked in dispatcher.Wait
	w.wg.Wait()
	w.logger.Info("worker stopped", slog.String("worker_id", w.id.String()))
}

// StopAfterCurrentTask is identical to Stop for this implementation:
// the main loop only ever checks for a stop signal between jobs, so a
// job already running always finishes before the worker exits. It is
// named separately to match the two distinct stop semantics the
// original implementation offers (abort immediately was never a real
// option there either, since jobs aren't preemptible).
func (w *Worker) StopAfterCurrentTask() { w.Stop() }

func (w *Worker) mainLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		if w.RunOne() {
			continue
		}

		w.dispatcher.Wait()

		select {
		case <-w.stopCh:
			return
		default:
		}
	}
}

// RunOne fetches one job matching this worker's specialization and
// runs it synchronously, reporting whether a job was found. It
// implements [job.Runner], letting a running job's WaitFor borrow this
// worker instead of blocking the goroutine outright.
func (w *Worker) RunOne() bool {
	h, ok := w.dispatcher.RequestJob(w.spec)
	if !ok {
		return false
	}
	w.runJob(h)
	return true
}

func (w *Worker) runJob(h job.Handle) {
	ctx := context.Background()
	start := time.Now()

	if w.extensions != nil {
		w.extensions.EmitJobStarted(ctx, h)
	}

	h.BindRunner(w)
	panicked := w.runRecovered(ctx, h)
	h.ReleaseRunner()

	if w.extensions != nil && !panicked {
		w.extensions.EmitJobCompleted(ctx, h, time.Since(start))
	}
}

// runRecovered runs h and converts a panic in the job's function into
// a logged, reported event rather than crashing the worker goroutine.
// h.Run still completes the finalize protocol exactly as if the
// function had returned normally. It reports whether the function
// panicked.
func (w *Worker) runRecovered(ctx context.Context, h job.Handle) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			stack := string(debug.Stack())
			w.logger.Error("job panicked",
				slog.String("worker_id", w.id.String()),
				slog.String("job_id", h.TraceID().String()),
				slog.Any("panic", r),
				slog.String("stack", stack),
			)
			if w.extensions != nil {
				w.extensions.EmitJobPanicked(ctx, h, r)
			}
		}
	}()
	h.Run()
}
