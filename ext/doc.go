// Package ext defines the extension system used to observe job
// lifecycle events without coupling the job/worker/manager packages
// to any particular logging, metrics, or tracing backend.
//
// Extensions are notified of lifecycle events and can react to them —
// recording metrics, emitting traces, writing audit logs, etc. Each
// lifecycle hook is a separate interface so extensions opt in only to
// the events they care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	func (e *MyExtension) OnJobCompleted(ctx context.Context, h job.Handle, elapsed time.Duration) error {
//	    log.Printf("job completed in %s", elapsed)
//	    return nil
//	}
//
// # Job Lifecycle Hooks
//
//   - [JobStarted] — a worker began running the job's function
//   - [JobCompleted] — the job's function returned normally
//   - [JobPanicked] — the job's function panicked and was recovered
//   - [JobFinalized] — the job (and all its children) fully completed;
//     no package in this module emits it
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
