package job

import (
	"runtime"
	"time"
)

// yieldBriefly gives other goroutines a chance to run without parking
// the calling goroutine. Used by the blocking fallbacks in Wait and
// WaitFor; a worker's main loop (package worker) uses a condition
// variable instead and never calls this.
func yieldBriefly() {
	runtime.Gosched()
	time.Sleep(time.Microsecond)
}
