package jobbot

import "github.com/jacobmcleman/JobBot/job"

// Sentinel errors re-exported from package job, for callers that only
// import the top-level package. Check them with errors.Is, same as
// the underlying job.Err* values.
var (
	ErrNullJob         = job.ErrNullJob
	ErrQueueFull       = job.ErrQueueFull
	ErrPayloadTooLarge = job.ErrPayloadTooLarge
	ErrUnknown         = job.ErrUnknown
)
