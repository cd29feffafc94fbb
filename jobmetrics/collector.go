package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jacobmcleman/JobBot/job"
)

// Collector holds the Prometheus instruments tracking one pool's
// occupancy, completed and panicked job counts, and job run time.
type Collector struct {
	registry *prometheus.Registry

	occupancy prometheus.GaugeFunc
	finalized *prometheus.CounterVec
	panicked  *prometheus.CounterVec
	latency   prometheus.Histogram
}

// NewCollector creates a Collector instrumenting p, registered against
// its own Prometheus registry (so multiple pools in one process never
// collide on metric names).
func NewCollector(p *job.Pool) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		occupancy: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "jobbot",
			Name:      "pool_unfinished_jobs",
			Help:      "Jobs created but not yet finalized in the pool.",
		}, func() float64 { return float64(p.UnfinishedJobCount()) }),
		finalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobbot",
			Name:      "jobs_finalized_total",
			Help:      "Jobs whose function returned normally, labeled by job type.",
		}, []string{"type"}),
		panicked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobbot",
			Name:      "jobs_panicked_total",
			Help:      "Jobs whose function panicked, labeled by job type.",
		}, []string{"type"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jobbot",
			Name:      "job_run_seconds",
			Help:      "Wall time a job's function spent running.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.occupancy, c.finalized, c.panicked, c.latency)
	return c
}

// Registry returns the Collector's own Prometheus registry, for
// wiring into an HTTP handler (promhttp.HandlerFor) or a push gateway.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveCompleted records one job of the given type completing
// normally after elapsed time running.
func (c *Collector) ObserveCompleted(t job.Type, elapsed time.Duration) {
	c.finalized.WithLabelValues(t.String()).Inc()
	c.latency.Observe(elapsed.Seconds())
}

// ObservePanicked records one job of the given type whose function
// panicked.
func (c *Collector) ObservePanicked(t job.Type) {
	c.panicked.WithLabelValues(t.String()).Inc()
}
