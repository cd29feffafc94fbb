package job

import (
	"sync/atomic"

	"github.com/jacobmcleman/JobBot/id"
)

// Handle is a small, copyable reference to a job record. The zero
// Handle is the null handle: it names no job, and every operation on
// it is a safe no-op (mirroring spec.md's "null job handle" rather
// than requiring callers to nil-check a pointer).
type Handle struct {
	pool       *Pool
	slot       uint32
	generation uint32
}

// Properties is the predicate view of a Handle returned by [Handle.Is]
// and [Handle.IsNot] — mirroring the original's JobHandle::Properties,
// right down to sharing one implementation between the positive and
// negated form via a single negated flag.
type Properties struct {
	h       Handle
	negated bool
}

// Is returns the predicate view of h.
func (h Handle) Is() Properties { return Properties{h: h} }

// IsNot returns the negated predicate view of h; h.IsNot().Finished()
// reads naturally at call sites that want the positive case to be
// "still has work to do".
func (h Handle) IsNot() Properties { return Properties{h: h, negated: true} }

func (p Properties) negate(v bool) bool {
	if p.negated {
		return !v
	}
	return v
}

// Null reports whether the handle names no job.
func (p Properties) Null() bool { return p.negate(p.h.pool == nil) }

// Finished reports whether the job's own work and all of its children
// are done (or the handle names no job at all). An outstanding hold
// delays finalization, not this report.
func (p Properties) Finished() bool { return p.negate(p.h.finished()) }

// Running reports whether the job's function has started running but
// not yet finalized.
func (p Properties) Running() bool { return p.negate(p.h.inProgress()) }

// Type reports whether the job carries t's flag, or, for [Misc],
// whether it carries none of the real type flags.
func (p Properties) Type(t Type) bool { return p.negate(p.h.matchesType(t)) }

// Type reports the type flags this job was created with.
func (h Handle) Type() uint32 {
	r := h.record()
	if r == nil {
		return 0
	}
	return r.flags & flagTypeMask
}

// matchesType reports whether h carries t's flag, or, for [Misc],
// whether h carries none of the real type flags.
func (h Handle) matchesType(t Type) bool {
	flags := h.Type()
	if t == Misc {
		return flags == 0
	}
	return flags&typeFlag(t) != 0
}

// inProgress reports whether the job's function has started running
// but not yet finalized.
func (h Handle) inProgress() bool {
	r := h.record()
	if r == nil {
		return false
	}
	return atomic.LoadUint32(&r.flags)&flagInProgress != 0
}

// TraceID returns h's debug correlation ID, generating it on first
// access. The ID lives in the pool's out-of-line traceIDs slice, not
// the hot record, so jobs that are never logged or traced never pay
// for it. Returns [id.Nil] for a null or recycled handle.
func (h Handle) TraceID() id.ID {
	if h.record() == nil {
		return id.Nil
	}
	slot := &h.pool.traceIDs[h.slot]
	if p := slot.Load(); p != nil {
		return *p
	}
	generated := id.NewJobID()
	slot.CompareAndSwap(nil, &generated)
	return *slot.Load()
}

// Parent returns the job's parent handle, or the null handle if it
// has none.
func (h Handle) Parent() Handle {
	r := h.record()
	if r == nil {
		return Handle{}
	}
	return h.pool.unpackParent(r.parent)
}

// addChild increments the job's remaining count by one, for a child
// about to be created against it. Called before the child is
// published so the parent can never observe a spurious completion.
func (h Handle) addChild() {
	r := h.record()
	if r == nil {
		return
	}
	atomic.AddInt32(&r.remaining, 1)
}

// SetCallback attaches a function to run after the job (and all of
// its children) have completed, immediately before completion
// propagates to the parent. It reports whether the callback was
// attached; it is a no-op returning false for a null or already
// finished handle, and it is not safe to call concurrently with Run.
func (h Handle) SetCallback(fn Func) bool {
	if h.Is().Null() || h.Is().Finished() {
		return false
	}
	r := h.record()
	if r == nil {
		return false
	}
	r.callbackFn = fn
	return true
}

// Run executes the job's function synchronously on the calling
// goroutine, then finalizes it (decrementing its own contribution to
// `remaining`). It reports whether the job actually ran: a null or
// already finished handle is left untouched and Run returns false,
// guarding against a second Run on the same handle decrementing
// `remaining` past the pool's -1 free-slot sentinel and leaking the
// slot permanently.
//
// Finalization happens in a deferred block so that a panicking job
// function still finalizes the job — its `remaining` count still
// drops to zero and its parent still gets notified — before the panic
// continues propagating to Run's caller. A caller that wants to
// recover from job panics (see package worker) should do so around
// its call to Run, not rely on Run to swallow them.
func (h Handle) Run() bool {
	if h.Is().Null() || h.Is().Finished() {
		return false
	}
	r := h.record()
	if r == nil {
		return false
	}
	atomic.AddUint32(&r.flags, flagInProgress)
	defer func() {
		atomic.AddUint32(&r.flags, ^flagInProgress+1) // clear the bit we just set
		h.pool.finish(h.slot, h.generation)
	}()
	if r.workFn != nil {
		r.workFn(h)
	}
	return true
}

// Runner returns the Runner currently executing h, if any. It is only
// meaningful from inside h's own job function, and is how
// [Handle.WaitFor] borrows the calling worker to do other work while
// it waits.
func (h Handle) Runner() (Runner, bool) {
	if h.pool == nil {
		return nil, false
	}
	r := h.pool.runners[h.slot]
	return r, r != nil
}

// BindRunner attaches r as the runner executing h, for the duration of
// a job function invocation. Called by package worker immediately
// before invoking the job's function; must be paired with
// [Handle.ReleaseRunner] once the function returns. Only ever touched
// from the single goroutine executing that slot's job, so no
// synchronization is needed (see Pool.runners).
func (h Handle) BindRunner(r Runner) {
	if h.pool != nil {
		h.pool.runners[h.slot] = r
	}
}

// ReleaseRunner clears the runner previously attached with
// [Handle.BindRunner].
func (h Handle) ReleaseRunner() {
	if h.pool != nil {
		h.pool.runners[h.slot] = nil
	}
}

// WaitFor cooperatively waits for target to finish. If h has a runner
// attached (i.e. this is being called from inside a running job
// function), it borrows that runner to execute other work while
// waiting instead of blocking the goroutine outright; otherwise it
// falls back to Wait.
func (h Handle) WaitFor(target Handle) {
	if r, ok := h.Runner(); ok {
		target.waitUsing(r)
		return
	}
	target.Wait()
}

// waitUsing drives r.RunOne in a loop until target finishes. When
// RunOne reports no work was available it yields briefly instead of
// busy-spinning.
func (h Handle) waitUsing(r Runner) {
	for !h.finished() {
		if !r.RunOne() {
			yieldBriefly()
		}
	}
}

// Wait blocks the calling goroutine until h finishes, without running
// any other work meanwhile. Prefer [Handle.WaitFor] from inside a job
// function so the calling worker stays productive.
func (h Handle) Wait() {
	for !h.finished() {
		yieldBriefly()
	}
}

// finished reports whether h has completed (or names no job at all).
func (h Handle) finished() bool {
	r := h.record()
	if r == nil {
		return true
	}
	return atomic.LoadInt32(&r.remaining) <= 0
}

// BlockCompletion registers a hold against h, preventing it from
// finalizing even once its work and all known children finish. Every
// call must be matched by exactly one [Handle.UnblockCompletion].
// Useful for jobs that hand out asynchronous callbacks (e.g. to a
// network response) whose completion the pool can't otherwise see.
func (h Handle) BlockCompletion() {
	r := h.record()
	if r == nil {
		return
	}
	atomic.AddInt32(&r.holds, 1)
}

// UnblockCompletion releases one hold previously taken with
// [Handle.BlockCompletion]. If this was the last hold and the job's
// own work and children have already finished, this finalizes h —
// exactly as if a child had just completed.
func (h Handle) UnblockCompletion() {
	r := h.record()
	if r == nil {
		return
	}
	if atomic.AddInt32(&r.holds, -1) == 0 && atomic.LoadInt32(&r.remaining) <= 0 {
		h.pool.finalizeIfReady(h.slot, h.generation)
	}
}

// Block registers a hold and returns a closure that releases it
// exactly once. Calling the closure more than once is a no-op after
// the first call. This is the Go-native replacement for the original
// RAII blocking-proxy object (whose copy/move semantics this
// implementation doesn't need): a returned closure can be captured by
// any callback without introducing a cyclic reference back into the
// job graph.
func (h Handle) Block() func() {
	h.BlockCompletion()
	var released atomic.Bool
	return func() {
		if released.CompareAndSwap(false, true) {
			h.UnblockCompletion()
		}
	}
}
