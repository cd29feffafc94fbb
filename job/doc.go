// Package job implements the fork-join unit of work at the center of
// JobBot: a fixed-size job record, a lock-free ring pool that recycles
// records, and the Handle façade client code uses to create, run, and
// query jobs.
//
// # Job Records
//
// A job record lives in a preallocated [Pool] ring, exactly
// [TargetRecordSize] bytes, and is never allocated directly by client
// code. Creating a job ([Create], [CreateChild]) returns a [Handle] —
// a small, copyable value that references a slot in the pool. A job's
// `remaining` counter starts at 1 (itself) and gains one for every
// child created against it; the job reports finished once that
// counter reaches zero. Outstanding holds (see
// [Handle.BlockCompletion]) delay its finalization — callback, parent
// propagation, slot release — but not its finished report.
//
// # Finalize
//
// [Handle.Run] executes the job's function and then finalizes it. The
// last child (or last hold release) to bring `remaining` to zero fires
// the job's callback, propagates completion to its parent, and frees
// the slot for reuse: remaining is set to -1 only after the callback
// and parent propagation have both happened, so a slot never looks
// free while its callback is still running.
//
// # Types and Specialization
//
// Every job carries zero or more [Type] flags (Important, IO, Huge,
// Graphics, Tiny); a job with none of them set matches [Misc]. Workers
// request work by an ordered list of types; see package worker and
// package dispatcher for how that routing happens.
package job
