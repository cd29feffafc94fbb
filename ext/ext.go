package ext

import (
	"context"
	"time"

	"github.com/jacobmcleman/JobBot/job"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Job lifecycle hooks
// ──────────────────────────────────────────────────

// JobStarted is called when a worker begins running a job's function.
type JobStarted interface {
	OnJobStarted(ctx context.Context, h job.Handle) error
}

// JobCompleted is called after a job's function returns normally.
type JobCompleted interface {
	OnJobCompleted(ctx context.Context, h job.Handle, elapsed time.Duration) error
}

// JobPanicked is called when a job's function panics. The panic has
// already been recovered by the time this fires.
type JobPanicked interface {
	OnJobPanicked(ctx context.Context, h job.Handle, recovered any) error
}

// JobFinalized is the hook for the moment a job and every one of its
// children and holds have completed. Nothing in this module emits it:
// finalization runs inside package job, which holds no Registry, so
// only a direct [Registry.EmitJobFinalized] call reaches it.
type JobFinalized interface {
	OnJobFinalized(ctx context.Context, h job.Handle) error
}

// Shutdown is called during manager shutdown, once every Primary
// worker has stopped and been joined.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
