package ext

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacobmcleman/JobBot/job"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type jobStartedEntry struct {
	name string
	hook JobStarted
}

type jobCompletedEntry struct {
	name string
	hook JobCompleted
}

type jobPanickedEntry struct {
	name string
	hook JobPanicked
}

type jobFinalizedEntry struct {
	name string
	hook JobFinalized
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	jobStarted   []jobStartedEntry
	jobCompleted []jobCompletedEntry
	jobPanicked  []jobPanickedEntry
	jobFinalized []jobFinalizedEntry
	shutdown     []shutdownEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(JobStarted); ok {
		r.jobStarted = append(r.jobStarted, jobStartedEntry{name, h})
	}
	if h, ok := e.(JobCompleted); ok {
		r.jobCompleted = append(r.jobCompleted, jobCompletedEntry{name, h})
	}
	if h, ok := e.(JobPanicked); ok {
		r.jobPanicked = append(r.jobPanicked, jobPanickedEntry{name, h})
	}
	if h, ok := e.(JobFinalized); ok {
		r.jobFinalized = append(r.jobFinalized, jobFinalizedEntry{name, h})
	}
	if h, ok := e.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitJobStarted notifies all extensions that implement JobStarted.
func (r *Registry) EmitJobStarted(ctx context.Context, h job.Handle) {
	for _, e := range r.jobStarted {
		if err := e.hook.OnJobStarted(ctx, h); err != nil {
			r.logHookError("OnJobStarted", e.name, err)
		}
	}
}

// EmitJobCompleted notifies all extensions that implement JobCompleted.
func (r *Registry) EmitJobCompleted(ctx context.Context, h job.Handle, elapsed time.Duration) {
	for _, e := range r.jobCompleted {
		if err := e.hook.OnJobCompleted(ctx, h, elapsed); err != nil {
			r.logHookError("OnJobCompleted", e.name, err)
		}
	}
}

// EmitJobPanicked notifies all extensions that implement JobPanicked.
func (r *Registry) EmitJobPanicked(ctx context.Context, h job.Handle, recovered any) {
	for _, e := range r.jobPanicked {
		if err := e.hook.OnJobPanicked(ctx, h, recovered); err != nil {
			r.logHookError("OnJobPanicked", e.name, err)
		}
	}
}

// EmitJobFinalized notifies all extensions that implement JobFinalized.
func (r *Registry) EmitJobFinalized(ctx context.Context, h job.Handle) {
	for _, e := range r.jobFinalized {
		if err := e.hook.OnJobFinalized(ctx, h); err != nil {
			r.logHookError("OnJobFinalized", e.name, err)
		}
	}
}

// EmitShutdown notifies all extensions that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block a worker.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
