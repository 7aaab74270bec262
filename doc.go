// Package uniqueport allocates unique, currently-unbound TCP port numbers
// on the loopback interface. It is intended for test suites that start
// multiple network listeners in one process and must not hand the same
// port to two of them.
//
// The package keeps a mutex-guarded cursor pointing at the next candidate
// port. Every successful allocation scans ascending from the cursor for
// the first port that accepts a TCP listen-bind probe on 127.0.0.1, then
// advances the cursor past the returned port. Because the cursor strictly
// advances, the values returned by successive GetUniqueFreePort calls are
// pairwise distinct and strictly increasing for the lifetime of the
// process (until SetPortIndex rewinds it).
//
// The probe listener is closed before the port is returned, so the port is
// free but not reserved: another process may bind it between discovery and
// use. Callers that need a hard reservation should bind the listener
// themselves and keep it open.
//
// GenerateStartPort derives a deterministic per-call-site starting offset
// from the fully-qualified name of the calling function, so independent
// test binaries that each seed the cursor once start scanning from
// different, stable regions of the port space:
//
//	func TestMain(m *testing.M) {
//		uniqueport.SetPortIndex(uniqueport.GenerateStartPort())
//		os.Exit(m.Run())
//	}
//
// Only TCP on 127.0.0.1 is probed. IPv6, UDP, and non-loopback addresses
// are out of scope, as is any uniqueness guarantee across processes.
package uniqueport
