package uniqueport

import (
	"runtime"

	"github.com/cespare/xxhash/v2"
)

// offsetFloor is the lowest offset GenerateStartPort can produce. It
// matches DefaultStartPort so a generated offset never points into the
// privileged/well-known region the cursor avoids.
const offsetFloor = 1000

// StartPortFor maps a stable identifier to a starting port in
// [1000, 65535). The same identifier always yields the same port within
// one build; distinct identifiers land on distinct ports with high
// probability (64-bit xxHash, collision-tolerant by contract).
//
// Use it when the implicit call-site identity of GenerateStartPort is
// not wanted — for example, to pin a CI suite to an offset by name:
//
//	uniqueport.SetPortIndex(uniqueport.StartPortFor("integration/gateway"))
func StartPortFor(id string) uint16 {
	h := xxhash.Sum64String(id)
	return uint16(offsetFloor + h%(MaxPort-offsetFloor))
}

// GenerateStartPort returns a starting port in [1000, 65535) derived
// from the fully-qualified name of the calling function. Two calls from
// the same function return the same value; calls from different
// functions spread across the port space, so independent test binaries
// that each seed their cursor once rarely start scanning from the same
// region.
//
// The offset is computed from the call site alone: no allocator state is
// read or written. Compose it with SetPortIndex to seed the cursor.
func GenerateStartPort() uint16 {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return offsetFloor
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return offsetFloor
	}
	return StartPortFor(fn.Name())
}
