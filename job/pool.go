package job

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/jacobmcleman/JobBot/backoff"
	"github.com/jacobmcleman/JobBot/id"
)

// TargetRecordSize is the size, in bytes, each job record is designed
// to fit: one cache line on most 64-bit hardware.
const TargetRecordSize = 128

// payloadSize is the remainder of TargetRecordSize after the fixed
// bookkeeping fields (two function pointers, a packed parent
// reference, and three int32/uint32 counters): 8+8+8+4+4+4 = 36.
const payloadSize = TargetRecordSize - 36

// PayloadSize is the number of bytes of inline storage available to
// client data via [CreateWithData]/[GetData]/[SetData].
const PayloadSize = payloadSize

// Func is a job's executable body. It receives the handle of the job
// being run so it can read its own payload and attach children.
type Func func(h Handle)

// Runner lets a job body fetch and run one more job from the
// dispatcher while it cooperatively waits on something else. It is
// implemented by *worker.Worker; declaring it here (rather than
// importing package worker) avoids an import cycle, matching the
// reason package engine sits above job/worker in the teacher this
// module is built from.
type Runner interface {
	// RunOne fetches a single job appropriate for this runner and
	// executes it synchronously. It reports whether a job was found.
	RunOne() bool
}

// record is the fixed-size job record stored inline in the pool ring.
// Its layout is deliberately kept to exactly TargetRecordSize bytes:
// two 8-byte function values, an 8-byte packed parent reference, three
// 4-byte counters, and the payload filling the rest.
type record struct {
	workFn     Func
	callbackFn Func
	parent     uint64 // packed slot<<32|generation; 0 means no parent
	remaining  int32  // atomic: unfinished sub-work, incl. self
	holds      int32  // atomic: outstanding keep-alive holds
	flags      uint32 // written once at construction, before publication
	payload    [payloadSize]byte
}

// Pool is a fixed-capacity, power-of-two ring of job records. Slots
// are recycled in place once their record reaches the terminal
// remaining==-1 && holds==0 state; the pool never grows and never
// compacts (spec Non-goal: dynamic resizing).
type Pool struct {
	records []record
	// generations is bumped each time a slot is (re)allocated, and
	// starts at 0 for a never-yet-used slot. Generation 0 is reserved
	// so that a packed parent reference of 0 unambiguously means "no
	// parent" rather than colliding with a real slot 0/generation 0 job.
	generations []uint32
	// runners holds, per slot, the Runner currently executing that
	// slot's job, for the duration of that job's own Run call only.
	// Access is always from the single goroutine running that job, so
	// no synchronization is needed — see [Handle.Runner].
	runners []Runner

	// traceIDs holds, per slot, a lazily-generated debug ID for log
	// correlation and span naming. It is out-of-line from record so the
	// hot record stays TargetRecordSize bytes; see [Handle.TraceID].
	traceIDs []atomic.Pointer[id.ID]

	mask   uint32
	cursor atomic.Uint64

	added     atomic.Uint64
	completed atomic.Uint64
}

// NewPool creates a pool with room for size job records. size must be
// a power of two; NewPool panics otherwise (a misconfigured pool size
// is a programming error, not a runtime condition to recover from).
func NewPool(size uint32) *Pool {
	if size == 0 || size&(size-1) != 0 {
		panic(fmt.Sprintf("job: pool size %d is not a power of two", size))
	}
	p := &Pool{
		records:     make([]record, size),
		generations: make([]uint32, size),
		runners:     make([]Runner, size),
		traceIDs:    make([]atomic.Pointer[id.ID], size),
		mask:        size - 1,
	}
	for i := range p.records {
		p.records[i].remaining = -1
	}
	return p
}

// Len returns the pool's fixed capacity.
func (p *Pool) Len() int { return len(p.records) }

// Added returns the number of jobs created since the pool was built.
func (p *Pool) Added() uint64 { return p.added.Load() }

// Completed returns the number of jobs finalized since the pool was built.
func (p *Pool) Completed() uint64 { return p.completed.Load() }

// UnfinishedJobCount returns Added - Completed, the debug invariant
// that should read zero at quiescence.
func (p *Pool) UnfinishedJobCount() uint64 {
	return p.Added() - p.Completed()
}

// packParent encodes a handle as a parent reference. The zero Handle
// (pool == nil) encodes as 0, matching the "no parent" sentinel.
func packParent(h Handle) uint64 {
	if h.pool == nil {
		return 0
	}
	return uint64(h.slot)<<32 | uint64(h.generation)
}

func (p *Pool) unpackParent(packed uint64) Handle {
	if packed == 0 {
		return Handle{}
	}
	return Handle{pool: p, slot: uint32(packed >> 32), generation: uint32(packed)}
}

// allocSpin is the short retry delay used while scanning for a free
// slot. A saturated pool is a configuration error (per spec), so this
// never blocks indefinitely — it just avoids pinning a P solid while
// it waits for slots to free up.
var allocSpin = backoff.NewExponentialWithJitter(50*time.Nanosecond, 50*time.Microsecond)

// allocate finds the next free slot, initializes it, and links it to
// parent if one is given. It never fails; it spins until a slot frees.
func (p *Pool) allocate(fn Func, parent Handle, flags uint32) Handle {
	if parent.pool != nil {
		parent.addChild()
	}

	attempt := 0
	for {
		idx := uint32(p.cursor.Add(1)-1) & p.mask
		r := &p.records[idx]

		remaining := atomic.LoadInt32(&r.remaining)
		holds := atomic.LoadInt32(&r.holds)
		if remaining == -1 && holds == 0 {
			gen := atomic.AddUint32(&p.generations[idx], 1)
			if gen == 0 {
				// Wrapped back to the reserved sentinel; skip ahead.
				gen = atomic.AddUint32(&p.generations[idx], 1)
			}

			r.workFn = fn
			r.callbackFn = nil
			r.parent = packParent(parent)
			atomic.StoreInt32(&r.holds, 0)
			r.flags = flags &^ flagInProgress
			atomic.StoreInt32(&r.remaining, 1)
			p.traceIDs[idx].Store(nil)

			p.added.Add(1)
			return Handle{pool: p, slot: idx, generation: gen}
		}

		attempt++
		if attempt%8 == 0 {
			time.Sleep(allocSpin.Delay(attempt / 8))
		} else {
			runtime.Gosched()
		}
	}
}

// finish accounts for one unit of work completing against slot
// (either the job's own function returning, or a child of it
// finishing). If this was the last unit, it hands off to
// finalizeIfReady.
func (p *Pool) finish(slot, generation uint32) {
	r := &p.records[slot]
	if atomic.AddInt32(&r.remaining, -1) == 0 {
		p.finalizeIfReady(slot, generation)
	}
}

// finalizeIfReady runs the callback, propagates completion to the
// parent, and frees the slot — but only if remaining is exactly 0 and
// no holds are outstanding. It uses a compare-and-swap on remaining
// (0 -> -1) so that a concurrent call arriving from the other trigger
// (a child finishing vs. the last hold releasing) can never finalize
// the same slot twice.
func (p *Pool) finalizeIfReady(slot, generation uint32) {
	r := &p.records[slot]
	if atomic.LoadInt32(&r.holds) != 0 {
		return
	}
	if !atomic.CompareAndSwapInt32(&r.remaining, 0, -1) {
		return
	}

	h := Handle{pool: p, slot: slot, generation: generation}
	if r.callbackFn != nil {
		r.callbackFn(h)
	}
	parent := p.unpackParent(r.parent)
	r.workFn = nil
	r.callbackFn = nil
	p.completed.Add(1)

	if parent.pool != nil {
		p.finish(parent.slot, parent.generation)
	}
}

// record returns the slot's record if h is still the current
// occupant, or nil if the slot has since been recycled to a different
// generation. This is the best-effort debug aid spec.md §9 allows
// (not a hard guarantee — retaining a handle past recycle is still
// undefined behavior by contract).
func (h Handle) record() *record {
	if h.pool == nil {
		return nil
	}
	if atomic.LoadUint32(&h.pool.generations[h.slot]) != h.generation {
		return nil
	}
	return &h.pool.records[h.slot]
}
