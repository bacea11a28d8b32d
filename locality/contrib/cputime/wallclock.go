package cputime

import "time"

var epoch = time.Now()

// wallClock returns monotonic time since package initialisation.
func wallClock() time.Duration {
	return time.Since(epoch)
}
