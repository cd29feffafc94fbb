// Package worker runs job functions pulled from a dispatcher. A
// [Worker] is the Go port of the original implementation's Worker
// class: it carries a [job.Specialization] (an ordered list of job
// types it prefers) and a [Mode] that decides how it behaves when no
// work is available.
//
// # Modes
//
// A Primary worker owns a background goroutine that blocks on the
// dispatcher's condition variable when idle, waking whenever new work
// is submitted. A Volunteer worker has no goroutine of its own: it's
// handed to [Handle.WaitFor]-style cooperative waits and to
// [manager.Manager.Volunteer], letting the calling goroutine do useful
// work (via [Worker.RunOne]) instead of blocking outright.
//
// # Panics
//
// A job function panicking is recovered, logged, and reported through
// the [ext.Registry] as [ext.JobPanicked]; it does not crash the
// worker or leave the job's slot unfinalized — the panic is treated as
// if the job's function simply returned.
package worker
