package uniqueport

import "errors"

var (
	// ErrNoFreePort is returned when a scan exhausts its port range
	// without finding a bindable port. Errors returned by FindFreePort
	// and GetUniqueFreePort wrap this sentinel, so callers match it
	// with errors.Is. Recovery is up to the caller: rewind the cursor
	// with SetPortIndex, or treat the host as saturated.
	ErrNoFreePort = errors.New("no free port in range")

	// ErrLockPoisoned is returned when the allocator's cursor lock is
	// unusable because a previous critical section panicked. The
	// allocator never recovers on its own; callers see the failure on
	// every subsequent operation instead of a hang or a crash.
	ErrLockPoisoned = errors.New("port cursor lock poisoned")
)
