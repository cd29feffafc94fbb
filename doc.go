// Package jobbot provides a fork-join job scheduler: fixed-size job
// records pooled in a lock-free ring, parent/child completion
// tracking, typed work queues, and a small pool of goroutine workers
// that drain them.
//
// JobBot is designed as a library, not a service. Import it, build a
// [Manager], and create jobs as ordinary Go functions.
//
// # Quick Start
//
//	m := jobbot.New(0) // 0 primary workers -> runtime.NumCPU()
//	defer m.Stop()
//
//	h := m.Create(func(h job.Handle) {
//	    fmt.Println("hello from a job")
//	})
//	if err := m.Submit(h); err != nil {
//	    log.Fatal(err)
//	}
//	m.Wait(context.Background(), h)
//
// # Architecture
//
// A [job.Pool] holds every job record; a [job.Handle] is a small,
// copyable reference into it. Jobs are created with an optional
// parent — the parent isn't considered finished until every child
// (and every child of every child) is. A [Manager] owns one pool, one
// dispatcher, and the workers draining it; Submit routes a job to its
// typed queue and Wait cooperatively waits for one to finish, keeping
// the calling goroutine productive in the meantime.
//
// Every entity this package logs or traces (jobs, workers) carries a
// TypeID — type-prefixed, K-sortable, UUIDv7-based identifier — for
// correlation across log lines and spans; see package id.
package jobbot
