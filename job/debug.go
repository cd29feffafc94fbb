package job

// DebugInvariants reports the pool's bookkeeping counters for use in
// tests and health checks. At quiescence (no jobs in flight) Added
// should equal Completed.
type DebugInvariants struct {
	Added     uint64
	Completed uint64
	Capacity  int
}

// DebugInvariants snapshots p's bookkeeping counters.
func (p *Pool) DebugInvariants() DebugInvariants {
	return DebugInvariants{
		Added:     p.Added(),
		Completed: p.Completed(),
		Capacity:  p.Len(),
	}
}
