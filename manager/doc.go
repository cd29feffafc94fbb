// Package manager wires a [job.Pool], a [dispatcher.Dispatcher], and a
// set of [worker.Worker]s together into a running fork-join system. It
// is the Go port of the original implementation's Manager class: the
// thing that owns worker lifecycle and exposes the handful of
// top-level operations (Submit, Wait, Volunteer) application code
// actually calls.
//
// # Worker topology
//
// The calling goroutine that builds the Manager is always handed a
// Volunteer worker (so the "main thread" in the original never sits
// idle — it does useful work while waiting on anything). Every other
// worker is a Primary worker with its own goroutine, cycling through
// the same four specializations the original's StartNewWorker table
// assigns: None, None, Graphics, IO (None appearing twice so half of
// the primary pool stays generalist).
//
// # Singleton
//
// [Instance] mirrors the original's process-wide GetInstance/RunJob/
// WaitForJob statics, constructed once on first access. Most programs
// should prefer an explicit [New] instead; the singleton exists for
// parity with call sites that have no natural place to thread a
// *Manager through.
package manager
