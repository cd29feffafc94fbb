package job

// Type identifies the specialization a job belongs to. A job may carry
// several of the named type flags (the dispatcher routes it under the
// first one in its classification order); a job with none of them set
// matches [Misc].
type Type int

const (
	// Tiny jobs are small, fast, and never block.
	Tiny Type = iota
	// Huge jobs are large but non-blocking.
	Huge
	// IO jobs may block on disk, network, or other slow operations.
	IO
	// Graphics jobs are rendering-related work.
	Graphics
	// Important jobs are always serviced before any other type.
	Important
	// Misc is the absence of every other type flag, not a flag itself.
	Misc
	// numJobTypes is the count of job types, Misc included.
	numJobTypes
	// Null terminates a specialization's priority list.
	Null Type = -1
)

func (t Type) String() string {
	switch t {
	case Tiny:
		return "Tiny"
	case Huge:
		return "Huge"
	case IO:
		return "IO"
	case Graphics:
		return "Graphics"
	case Important:
		return "Important"
	case Misc:
		return "Misc"
	case Null:
		return "Null"
	default:
		return "Type(?)"
	}
}

// flag bits, one per real type. Misc is the absence of all of them.
const (
	flagTiny      uint32 = 1 << uint(Tiny)
	flagHuge      uint32 = 1 << uint(Huge)
	flagIO        uint32 = 1 << uint(IO)
	flagGraphics  uint32 = 1 << uint(Graphics)
	flagImportant uint32 = 1 << uint(Important)

	flagTypeMask = flagTiny | flagHuge | flagIO | flagGraphics | flagImportant

	// flagInProgress is the status bit, stored above the type bits.
	flagInProgress uint32 = flagImportant << 1
)

func typeFlag(t Type) uint32 {
	switch t {
	case Tiny:
		return flagTiny
	case Huge:
		return flagHuge
	case IO:
		return flagIO
	case Graphics:
		return flagGraphics
	case Important:
		return flagImportant
	default:
		return 0
	}
}

// Specialization is an ordered list of job types a worker is willing
// to request, terminated by [Null]. Important is always tried first
// by the dispatcher regardless of what a specialization names.
type Specialization [5]Type

// Predefined specializations, matching the priority tables a worker
// may be assigned (see package worker for how they're handed out).
var (
	// SpecNone will take any work, preferring large non-blocking jobs.
	SpecNone = Specialization{Huge, Graphics, Misc, IO, Tiny}
	// SpecIO takes blocking/IO jobs first so other workers don't have to.
	SpecIO = Specialization{IO, Huge, Misc, Graphics, Tiny}
	// SpecGraphics prefers graphics work, then Tiny and Misc; it never
	// takes IO or Huge jobs.
	SpecGraphics = Specialization{Graphics, Tiny, Misc, Null, Null}
	// SpecRealTime prefers Tiny work, then Misc and Graphics; it never
	// takes IO or Huge jobs.
	SpecRealTime = Specialization{Tiny, Misc, Graphics, Null, Null}
)
