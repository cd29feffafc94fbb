package jobbot

import (
	"log/slog"

	"github.com/jacobmcleman/JobBot/jobmetrics"
	"github.com/jacobmcleman/JobBot/manager"
	"go.opentelemetry.io/otel/trace"
)

// Manager is the top-level scheduler: a job pool, a dispatcher, and the
// workers draining it. See package manager for the full API.
type Manager = manager.Manager

// Option configures a Manager at construction time.
type Option = manager.Option

// New builds a Manager with numWorkers primary (goroutine-backed)
// workers. numWorkers <= 0 defaults to runtime.NumCPU(). The creating
// goroutine always additionally gets a Volunteer worker, driven only
// by explicit RunOne/Wait calls.
func New(numWorkers int, opts ...Option) *Manager {
	return manager.New(numWorkers, opts...)
}

// Instance returns the process-wide default Manager, constructing it
// on first use with runtime.NumCPU() primary workers.
func Instance() *Manager {
	return manager.Instance()
}

// WithNumWorkers overrides the primary worker count passed to New.
func WithNumWorkers(n int) Option { return manager.WithNumWorkers(n) }

// WithPoolSize sets the job pool's slot capacity.
func WithPoolSize(size uint32) Option { return manager.WithPoolSize(size) }

// WithQueueCapacity sets the per-type dispatch queue capacity.
func WithQueueCapacity(n int) Option { return manager.WithQueueCapacity(n) }

// WithLogger sets the structured logger used for worker and dispatch
// diagnostics.
func WithLogger(l *slog.Logger) Option { return manager.WithLogger(l) }

// WithMetrics registers a Prometheus collector for pool occupancy and
// per-type job counts.
func WithMetrics(m *jobmetrics.Collector) Option { return manager.WithMetrics(m) }

// WithTracer wraps every job function in an OpenTelemetry span.
func WithTracer(t trace.Tracer) Option { return manager.WithTracer(t) }
