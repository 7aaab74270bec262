package uniqueport

import "sync"

// Allocator hands out unique free ports by walking a cursor through the
// port space. All state is one uint16 cursor guarded by one mutex; every
// allocation is a single critical section that reads the cursor, scans
// forward for a free port, and advances the cursor past the result.
//
// The uniqueness guarantee is per-Allocator and per-call-sequence: the
// cursor never revisits a returned port, so two Allocate calls can never
// return the same value, even if the first port has since been released.
// The guarantee says nothing about other processes — a returned port is
// free at probe time, not reserved.
//
// A panic inside the critical section (a misbehaving Prober) marks the
// allocator poisoned before the panic propagates. Every later call fails
// with ErrLockPoisoned instead of operating on half-updated state.
type Allocator struct {
	mu       sync.Mutex
	poisoned bool
	next     uint16
	prober   Prober
}

// NewAllocator creates an Allocator with its cursor at DefaultStartPort.
// A nil prober selects the default Scanner, which probes 127.0.0.1 over
// TCP.
func NewAllocator(prober Prober) *Allocator {
	if prober == nil {
		prober = NewScanner()
	}
	return &Allocator{
		next:   DefaultStartPort,
		prober: prober,
	}
}

// SetPortIndex overwrites the cursor unconditionally. Subsequent
// allocations scan from port upward. Rewinding below a previously
// returned port deliberately forfeits the uniqueness guarantee for
// values between the new index and the old cursor.
//
// Returns ErrLockPoisoned if a previous critical section panicked.
func (a *Allocator) SetPortIndex(port uint16) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.poisoned {
		return ErrLockPoisoned
	}
	a.next = port
	return nil
}

// Allocate returns the next unique free port at or above the cursor.
//
// It scans [cursor, MaxPort) for the first bindable port. On success the
// cursor moves to port+1, so no later call can return the same value. On
// exhaustion the cursor is left unmodified and the returned error wraps
// ErrNoFreePort; the caller may rewind with SetPortIndex and retry.
//
// Calls are serialized by the cursor lock: concurrent callers observe a
// strict total order and receive pairwise distinct ports. A SetPortIndex
// racing an in-flight Allocate is ordered either before or after it by
// the same lock.
func (a *Allocator) Allocate() (uint16, error) {
	a.mu.Lock()
	if a.poisoned {
		a.mu.Unlock()
		return 0, ErrLockPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			// The prober panicked mid-critical-section. Mark the
			// allocator unusable, release the lock so callers fail
			// fast instead of blocking forever, and let the panic
			// continue unwinding.
			a.poisoned = true
			a.mu.Unlock()
			panic(r)
		}
	}()

	port, err := a.prober.FindFree(a.next, MaxPort)
	if err != nil {
		a.mu.Unlock()
		return 0, err
	}
	a.next = port + 1
	a.mu.Unlock()
	return port, nil
}

// defaultAllocator backs the package-level functions. It plays the role
// of the process-wide cursor that test suites share; code that needs an
// isolated cursor creates its own Allocator instead.
var defaultAllocator = NewAllocator(nil)

// SetPortIndex overwrites the shared cursor, so the next
// GetUniqueFreePort call starts scanning from port. Typically seeded
// once per test binary with GenerateStartPort.
func SetPortIndex(port uint16) error {
	return defaultAllocator.SetPortIndex(port)
}

// GetUniqueFreePort returns a free local TCP port that no previous call
// in this process has returned (absent an intervening SetPortIndex).
func GetUniqueFreePort() (uint16, error) {
	return defaultAllocator.Allocate()
}
