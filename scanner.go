package uniqueport

import (
	"fmt"
	"net"
	"strconv"
)

const (
	// DefaultStartPort is the cursor value a fresh allocator starts at.
	// Ports below 1000 are left alone by convention: most of them are
	// privileged or claimed by well-known services.
	DefaultStartPort = 1000

	// MaxPort is the exclusive upper bound of every scan. Port numbers
	// are 16-bit, so 65535 is the last representable port and the scan
	// range [start, MaxPort) never includes it.
	MaxPort = 65535
)

// Prober finds a bindable port inside a half-open range. The Allocator
// depends on this interface rather than on a concrete scanner so tests
// can substitute deterministic or failing implementations.
type Prober interface {
	// FindFree returns the first bindable port in [start, end), or an
	// error wrapping ErrNoFreePort if the range contains none.
	FindFree(start, end uint16) (uint16, error)
}

// Scanner is the default Prober. It asks the operating system directly:
// a port is considered free iff a TCP listen-bind on 127.0.0.1 succeeds.
// This is more reliable than parsing /proc/net/tcp or shelling out to
// lsof/ss, and needs no elevated permissions.
//
// Scanner is stateless and safe for concurrent use. It is a struct
// rather than bare functions so it can be injected as a dependency and
// extended (bind address, dial timeout) without breaking the API.
type Scanner struct{}

// NewScanner creates a Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsFree reports whether a TCP listener can currently be bound to
// 127.0.0.1:port. The probe listener is closed before returning, so a
// true result means the port was free at probe time, not that it is
// reserved for the caller.
func (s *Scanner) IsFree(port uint16) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port))))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

// FindFree scans [start, end) in ascending order and returns the first
// port for which the bind probe succeeds.
//
// The scan is strictly sequential first-fit: no candidate is skipped,
// reordered, or probed in parallel. Given the same set of already-bound
// ports, the same start always yields the same result, which keeps
// allocation deterministic and debuggable.
//
// Returns an error wrapping ErrNoFreePort when the range is empty or
// every candidate is in use.
func (s *Scanner) FindFree(start, end uint16) (uint16, error) {
	for port := start; port < end; port++ {
		if s.IsFree(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("%w [%d, %d)", ErrNoFreePort, start, end)
}

// FindFreePort scans [start, end) on 127.0.0.1 and returns the first
// bindable TCP port. It is the package-level form of Scanner.FindFree
// and shares no state with the allocator cursor.
func FindFreePort(start, end uint16) (uint16, error) {
	return NewScanner().FindFree(start, end)
}
