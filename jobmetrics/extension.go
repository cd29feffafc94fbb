package jobmetrics

import (
	"context"
	"time"

	"github.com/jacobmcleman/JobBot/ext"
	"github.com/jacobmcleman/JobBot/job"
)

// typeOrder mirrors the dispatcher's fixed classification order: the
// first flag a handle carries, in this priority, names its metric
// label. A handle with none of them set is Misc.
var typeOrder = [...]job.Type{
	job.Important, job.IO, job.Huge, job.Graphics, job.Tiny,
}

func classify(h job.Handle) job.Type {
	for _, t := range typeOrder {
		if h.Is().Type(t) {
			return t
		}
	}
	return job.Misc
}

// Name satisfies ext.Extension.
func (c *Collector) Name() string { return "jobmetrics" }

// OnJobCompleted satisfies ext.JobCompleted, recording a successful
// run's type and duration.
func (c *Collector) OnJobCompleted(_ context.Context, h job.Handle, elapsed time.Duration) error {
	c.ObserveCompleted(classify(h), elapsed)
	return nil
}

// OnJobPanicked satisfies ext.JobPanicked, recording which type of job
// panicked.
func (c *Collector) OnJobPanicked(_ context.Context, h job.Handle, _ any) error {
	c.ObservePanicked(classify(h))
	return nil
}

var (
	_ ext.Extension    = (*Collector)(nil)
	_ ext.JobCompleted = (*Collector)(nil)
	_ ext.JobPanicked  = (*Collector)(nil)
)
