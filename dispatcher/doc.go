// Package dispatcher classifies submitted jobs into the right queue
// and lets workers request work back out by specialization. It is the
// Go port of the original implementation's Manager::SubmitJob /
// Manager::TryGetJob pair, split out of the worker-lifecycle code that
// now lives in package manager.
//
// # Classification
//
// A job is routed to exactly one queue, checked in this fixed order
// regardless of which [job.Type] flags it carries: Important, IO,
// Huge, Graphics, Tiny, Misc. A job matching none of the real type
// flags lands in Misc.
//
// # Dequeue
//
// A worker asks for work with an ordered [job.Specialization]. The
// dispatcher always checks Important first — an important job
// preempts a worker's own specialization — then walks the
// specialization's list in order until a queue yields a job or the
// list is exhausted (terminated by [job.Null]).
package dispatcher
