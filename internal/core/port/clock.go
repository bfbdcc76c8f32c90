package port

import "time"

// Clock is injected wherever the core reads time, so completion
// timestamps and streak checks are testable against a pinned clock.
type Clock interface {
	Now() time.Time
	// Today returns the day-start of the current local day.
	Today() time.Time
}
