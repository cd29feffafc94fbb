package job

// DefaultPoolSize is the capacity of the package-level default pool,
// matching the original implementation's preallocated job array.
const DefaultPoolSize = 1 << 16

var defaultPool = NewPool(DefaultPoolSize)

// DefaultPool returns the package-level pool that Create, CreateChild,
// and their typed-payload variants allocate from. A Manager always
// builds its own pool (see its Pool method), so jobs created directly
// against the package do not share a ring with jobs created by a
// manager.
func DefaultPool() *Pool { return defaultPool }

// Option configures a job at creation time.
type Option func(*createOpts)

type createOpts struct {
	flags uint32
}

// WithType marks the job as belonging to t. Calling WithType more than
// once ORs the flags together; a job with no WithType call at all
// matches [Misc].
func WithType(t Type) Option {
	return func(o *createOpts) { o.flags |= typeFlag(t) }
}

func applyOptions(opts []Option) uint32 {
	var o createOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o.flags
}

// Classify reports the single [Type] a job created with opts would be
// routed under — the same precedence the dispatcher uses when
// classifying an already-created handle. Useful to callers (e.g.
// package manager's tracing wrapper) that need a job's type before
// the handle exists yet.
func Classify(opts ...Option) Type {
	flags := applyOptions(opts)
	for _, t := range [...]Type{Important, IO, Huge, Graphics, Tiny} {
		if flags&typeFlag(t) != 0 {
			return t
		}
	}
	return Misc
}

// Create allocates a new top-level job in the default pool.
func Create(fn Func, opts ...Option) Handle {
	return defaultPool.Create(fn, opts...)
}

// CreateChild allocates a new job as a child of parent in the default
// pool. parent will not be considered finished until the child is.
// CreateChild panics if parent was not allocated from the default pool.
func CreateChild(fn Func, parent Handle, opts ...Option) Handle {
	return defaultPool.CreateChild(fn, parent, opts...)
}

// Create allocates a new top-level job in p.
func (p *Pool) Create(fn Func, opts ...Option) Handle {
	return p.allocate(fn, Handle{}, applyOptions(opts))
}

// CreateChild allocates a new job as a child of parent in p. parent
// must have been allocated from p.
func (p *Pool) CreateChild(fn Func, parent Handle, opts ...Option) Handle {
	if parent.pool != nil && parent.pool != p {
		panic("job: CreateChild called with a parent from a different pool")
	}
	return p.allocate(fn, parent, applyOptions(opts))
}
