package uniqueport

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsFree_FreePort verifies that IsFree returns true for a port no
// process is using. The port is discovered with FindFree rather than
// hardcoded, so the test does not depend on what happens to be running
// on the CI machine.
func TestIsFree_FreePort(t *testing.T) {
	scanner := NewScanner()

	port, err := scanner.FindFree(52000, 52100)
	require.NoError(t, err, "should find at least one free port in [52000, 52100)")

	assert.True(t, scanner.IsFree(port), "port %d should be free", port)
}

// TestIsFree_UsedPort verifies that IsFree returns false while another
// listener holds the port. The test binds its own listener on an
// OS-assigned loopback port, simulating an external process that got
// there first.
func TestIsFree_UsedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "failed to start test listener")
	defer func() { _ = ln.Close() }()

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	require.True(t, ok)
	port := uint16(tcpAddr.Port)

	scanner := NewScanner()
	assert.False(t, scanner.IsFree(port), "port %d has an active listener and should not be free", port)
}

// TestFindFree_FirstFit verifies the ascending first-fit policy: with a
// run of consecutive ports pre-bound, FindFree must return exactly the
// first port past the occupied run, not any later free port.
func TestFindFree_FirstFit(t *testing.T) {
	scanner := NewScanner()
	base, listeners := occupyConsecutivePorts(t, 3)
	defer func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}()

	port, err := scanner.FindFree(base, MaxPort)
	require.NoError(t, err)
	assert.Equal(t, base+3, port, "scan starting at %d should step over the three bound ports", base)
}

// TestFindFree_Exhausted verifies that a scan confined to fully occupied
// ports fails with an error wrapping ErrNoFreePort.
func TestFindFree_Exhausted(t *testing.T) {
	scanner := NewScanner()
	base, listeners := occupyConsecutivePorts(t, 3)
	defer func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}()

	_, err := scanner.FindFree(base, base+3)
	require.Error(t, err, "every port in [%d, %d) is bound", base, base+3)
	assert.ErrorIs(t, err, ErrNoFreePort)
}

// TestFindFree_EmptyRange verifies that an empty half-open range fails
// immediately with ErrNoFreePort. This is the shape of the range the
// allocator passes once the cursor reaches MaxPort.
func TestFindFree_EmptyRange(t *testing.T) {
	scanner := NewScanner()

	_, err := scanner.FindFree(5000, 5000)
	assert.ErrorIs(t, err, ErrNoFreePort)

	_, err = scanner.FindFree(MaxPort, MaxPort)
	assert.ErrorIs(t, err, ErrNoFreePort)
}

// TestFindFreePort verifies the package-level finder returns a port
// inside the requested range that is actually bindable.
func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort(53000, 53100)
	require.NoError(t, err, "should find an available port in [53000, 53100)")

	assert.GreaterOrEqual(t, port, uint16(53000))
	assert.Less(t, port, uint16(53100))
	assert.True(t, NewScanner().IsFree(port))
}

// occupyConsecutivePorts binds listeners on n consecutive loopback ports
// and returns the first port of the run plus the listeners (the caller
// closes them). It searches upward from a high base until it finds a run
// where n consecutive binds succeed and the following port is free, so
// the run has a known boundary for first-fit assertions.
func occupyConsecutivePorts(t *testing.T, n int) (uint16, []net.Listener) {
	t.Helper()
	scanner := NewScanner()

	for base := uint16(54000); base < 58000; base += uint16(n) + 1 {
		listeners := make([]net.Listener, 0, n)
		ok := true
		for i := 0; i < n; i++ {
			ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", base+uint16(i)))
			if err != nil {
				ok = false
				break
			}
			listeners = append(listeners, ln)
		}
		if ok && scanner.IsFree(base+uint16(n)) {
			return base, listeners
		}
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}

	t.Skip("could not find a run of consecutive free ports")
	return 0, nil
}

// TestFindFree_ErrorWrapsSentinel pins the wrapping contract: the error
// FindFree builds with fmt.Errorf must still match the sentinel and
// name the scanned range.
func TestFindFree_ErrorWrapsSentinel(t *testing.T) {
	scanner := NewScanner()

	_, err := scanner.FindFree(100, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFreePort))
	assert.Contains(t, err.Error(), "[100, 100)")
}
