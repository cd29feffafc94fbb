package manager

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jacobmcleman/JobBot/dispatcher"
	"github.com/jacobmcleman/JobBot/ext"
	"github.com/jacobmcleman/JobBot/job"
	"github.com/jacobmcleman/JobBot/jobmetrics"
	"github.com/jacobmcleman/JobBot/jobtrace"
	"github.com/jacobmcleman/JobBot/worker"
)

// DefaultQueueCapacity is the per-type queue capacity a Manager uses
// when WithQueueCapacity is not given, matching the original
// implementation's sMaxWorkerQueueLength_.
const DefaultQueueCapacity = 4096

// primarySpecs is the round-robin table [Manager.StartWorkers] assigns
// to Primary workers, ported directly from the original's
// StartNewWorker: None appears twice so half the primary pool stays
// generalist.
var primarySpecs = [...]job.Specialization{
	job.SpecNone, job.SpecNone, job.SpecGraphics, job.SpecIO,
}

// Manager owns a job pool, a dispatcher, and the workers draining it.
// Build one with [New]; most programs need exactly one per process.
type Manager struct {
	pool       *job.Pool
	dispatcher *dispatcher.Dispatcher
	extensions *ext.Registry
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *jobmetrics.Collector

	numPrimary int

	mu      sync.Mutex
	workers []*worker.Worker

	volunteer *worker.Worker

	started bool
}

// Option configures a Manager at construction time.
type Option func(*config)

type config struct {
	numWorkers    int
	poolSize      uint32
	queueCapacity int
	logger        *slog.Logger
	metrics       *jobmetrics.Collector
	tracer        trace.Tracer
}

// WithNumWorkers sets the number of Primary workers to start, in
// addition to the single Volunteer worker every Manager gets for its
// owning goroutine. 0 (the default) means runtime.NumCPU().
func WithNumWorkers(n int) Option {
	return func(c *config) { c.numWorkers = n }
}

// WithPoolSize overrides the job pool's capacity. Must be a power of
// two; see [job.NewPool].
func WithPoolSize(size uint32) Option {
	return func(c *config) { c.poolSize = size }
}

// WithQueueCapacity overrides the per-type dispatcher queue capacity.
func WithQueueCapacity(capacity int) Option {
	return func(c *config) { c.queueCapacity = capacity }
}

// WithLogger sets the Manager's structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches a Prometheus collector as a lifecycle
// extension, recording job completions and panics by type.
func WithMetrics(m *jobmetrics.Collector) Option {
	return func(c *config) { c.metrics = m }
}

// WithTracer enables per-job OpenTelemetry spans via package jobtrace.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// New builds a Manager and immediately starts its workers: one
// Volunteer worker for the calling goroutine plus numWorkers Primary
// workers, matching the original's constructor-starts-workers
// behavior. Call [Manager.Stop] to shut it down.
func New(numWorkers int, opts ...Option) *Manager {
	c := &config{
		numWorkers:    numWorkers,
		poolSize:      job.DefaultPoolSize,
		queueCapacity: DefaultQueueCapacity,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.numWorkers <= 0 {
		c.numWorkers = runtime.NumCPU()
	}

	m := &Manager{
		pool:       job.NewPool(c.poolSize),
		dispatcher: dispatcher.New(c.queueCapacity),
		extensions: ext.NewRegistry(c.logger),
		logger:     c.logger,
		tracer:     c.tracer,
		metrics:    c.metrics,
		numPrimary: c.numWorkers,
	}
	if c.metrics != nil {
		m.extensions.Register(c.metrics)
	}

	m.StartWorkers()
	return m
}

var (
	instance     *Manager
	instanceOnce sync.Once
)

// Instance returns the process-wide singleton Manager, constructing it
// with defaults on first access. It mirrors the original's static
// Manager::GetInstance/RunJob/WaitForJob — most code should prefer an
// explicit [New] instead.
func Instance() *Manager {
	instanceOnce.Do(func() {
		instance = New(0)
	})
	return instance
}

// Pool returns the job pool this Manager's workers draw from.
func (m *Manager) Pool() *job.Pool { return m.pool }

// Extensions returns the Manager's lifecycle-hook registry.
func (m *Manager) Extensions() *ext.Registry { return m.extensions }

// Workers returns the Manager's Primary workers (not including its
// Volunteer worker), for introspection — e.g. queue depth metrics.
// Mirrors the original's GetBusiestWorker/GetRandomWorker purpose
// without committing to a specific scheduling use for the list.
func (m *Manager) Workers() []*worker.Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*worker.Worker, len(m.workers))
	copy(out, m.workers)
	return out
}

// Volunteer returns the Manager's Volunteer worker: the one with no
// goroutine of its own, meant to be driven by the calling goroutine
// via [Manager.Wait] or direct RunOne calls.
func (m *Manager) Volunteer() *worker.Worker { return m.volunteer }

// Submit routes h to the dispatcher for the first available worker
// matching its type to pick up. It returns [job.ErrNullJob] for a null
// handle and [job.ErrQueueFull] if the target queue is saturated.
func (m *Manager) Submit(h job.Handle) error {
	return m.dispatcher.Submit(h)
}

// Wait cooperatively waits for target to finish, driving the Manager's
// Volunteer worker so the calling goroutine keeps doing useful work
// (running other queued jobs) instead of blocking outright. It mirrors
// the original's static Manager::WaitForJob.
func (m *Manager) Wait(ctx context.Context, target job.Handle) {
	for !target.Is().Finished() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !m.volunteer.RunOne() {
			runtime.Gosched()
		}
	}
}

// wrapFunc wraps fn in a tracing span when a tracer is configured, per
// job type t.
func (m *Manager) wrapFunc(fn job.Func, t job.Type) job.Func {
	if m.tracer == nil {
		return fn
	}
	return jobtrace.Wrap(m.tracer, t)(fn)
}

// Create allocates a new top-level job in the Manager's pool. When a
// tracer was configured via [WithTracer], fn runs inside a span that
// carries the job's classified type as an attribute.
func (m *Manager) Create(fn job.Func, opts ...job.Option) job.Handle {
	return m.pool.Create(m.wrapFunc(fn, job.Classify(opts...)), opts...)
}

// CreateChild allocates a new job as a child of parent in the
// Manager's pool, with the same tracing behavior as [Manager.Create].
func (m *Manager) CreateChild(fn job.Func, parent job.Handle, opts ...job.Option) job.Handle {
	return m.pool.CreateChild(m.wrapFunc(fn, job.Classify(opts...)), parent, opts...)
}

// StartWorkers starts the Manager's Volunteer worker and its Primary
// worker pool. It is a no-op if workers are already running. Mirrors
// the original's Manager::StartWorkers; [New] calls it once up front,
// so most callers never call it directly (it exists mainly to pair
// with [Manager.StopWorkers] for a Manager that outlives one run of
// workers).
func (m *Manager) StartWorkers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}

	// A lone volunteer (no primary workers at all) has to be willing to
	// take anything; with primaries running, the volunteer stays
	// real-time-only so it never gets stuck on a slow job while the
	// calling goroutine is waiting on something specific. Ported from
	// the original's StartNewWorker single-core special case. New maps
	// a worker count of 0 to runtime.NumCPU(), so a Manager built by New
	// always has at least one primary and its volunteer is always
	// real-time-only.
	volunteerSpec := job.SpecRealTime
	if m.numPrimary == 0 {
		volunteerSpec = job.SpecNone
	}
	m.volunteer = worker.New(m.dispatcher, volunteerSpec, worker.Volunteer,
		worker.WithLogger(m.logger), worker.WithExtensions(m.extensions))

	m.workers = make([]*worker.Worker, 0, m.numPrimary)
	for i := 0; i < m.numPrimary; i++ {
		spec := primarySpecs[i%len(primarySpecs)]
		w := worker.New(m.dispatcher, spec, worker.Primary,
			worker.WithLogger(m.logger), worker.WithExtensions(m.extensions))
		m.workers = append(m.workers, w)
		w.Start()
	}

	m.started = true
}

// StopWorkers asks every Primary worker to finish its current job and
// exit, then joins them all concurrently via an errgroup (replacing
// the teacher's bespoke WaitGroup+select shutdown dance with the same
// fan-in idiom used elsewhere in the broader module surface this
// implementation draws from). It is a no-op if workers are not
// running.
func (m *Manager) StopWorkers() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	workers := make([]*worker.Worker, len(m.workers))
	copy(workers, m.workers)
	m.started = false
	m.mu.Unlock()

	var g errgroup.Group
	for _, w := range workers {
		w := w
		g.Go(func() error {
			w.Stop()
			return nil
		})
	}
	_ = g.Wait()

	m.extensions.EmitShutdown(context.Background())
}

// Stop is an alias for StopWorkers, matching the Manager/Dispatcher
// lifecycle naming used elsewhere (Start/Stop) rather than the
// original's WorkersWorking-specific naming.
func (m *Manager) Stop() { m.StopWorkers() }
