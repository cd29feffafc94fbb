// Package jobmetrics exposes Prometheus instrumentation for a running
// [job.Pool] and the workers draining it: pool occupancy, jobs whose
// function returned (or panicked) per type, and job run time. It plays the
// same role the original implementation's debug HUD did (a live view
// of queue depths and throughput), re-expressed as a scrapeable
// Prometheus registry instead of an in-process overlay.
//
// A [Collector] owns its own [prometheus.Registry] rather than
// registering against the global default, so a process can run more
// than one [job.Pool] (and therefore more than one Collector) without
// metric name collisions.
package jobmetrics
