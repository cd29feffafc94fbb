// Package queue holds the per-type job queues a dispatcher routes work
// through. Each job type (Tiny, Huge, IO, Graphics, Important, plus
// Misc) gets its own bounded, FIFO [Queue]; package dispatcher owns
// classification and dequeue order, this package only owns storage.
//
// The original implementation backed each queue with a lock-free MPMC
// ring (moodycamel::ConcurrentQueue). This port uses a mutex-guarded
// ring instead: the fork-join workload here is dominated by job
// execution time, not queue contention. [Queue] is a concrete type,
// not an interface, so a lock-free ring would replace it inside this
// package; nothing outside this package depends on the locking
// strategy.
package queue
