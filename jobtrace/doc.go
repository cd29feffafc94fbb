// Package jobtrace wraps a job's function in an OpenTelemetry span,
// following the same instrumentation-scope convention the teacher's
// middleware package uses for its own tracing middleware. Unlike that
// middleware (which wraps a durable job's retry loop), [Wrap] wraps a
// single [job.Func] invocation directly, since fork-join jobs have no
// retry concept to span across.
package jobtrace
