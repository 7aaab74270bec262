package uniqueport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offsetFromHelperA and offsetFromHelperB exist only to give
// GenerateStartPort two distinct enclosing functions to identify.
func offsetFromHelperA() uint16 { return GenerateStartPort() }
func offsetFromHelperB() uint16 { return GenerateStartPort() }

// TestStartPortFor_Deterministic verifies that the same identifier maps
// to the same starting port on every call.
func TestStartPortFor_Deterministic(t *testing.T) {
	first := StartPortFor("integration/gateway")
	second := StartPortFor("integration/gateway")
	assert.Equal(t, first, second)
}

// TestStartPortFor_Range verifies the [1000, 65535) bounds for a spread
// of identifiers: never below the floor, never at or above MaxPort.
func TestStartPortFor_Range(t *testing.T) {
	ids := []string{
		"",
		"a",
		"integration/gateway",
		"github.com/mmr-tortoise/uniqueport.TestStartPortFor_Range",
		"some very long identifier with spaces and unicode: héllo wörld",
	}
	for _, id := range ids {
		port := StartPortFor(id)
		assert.GreaterOrEqual(t, port, uint16(1000), "identifier %q mapped below the floor", id)
		assert.Less(t, port, uint16(MaxPort), "identifier %q mapped outside the port space", id)
	}
}

// TestStartPortFor_DistinctIdentifiers verifies that different
// identifiers land on different offsets. The hash is collision-tolerant
// by contract, but these fixed inputs are known not to collide.
func TestStartPortFor_DistinctIdentifiers(t *testing.T) {
	a := StartPortFor("suite/alpha")
	b := StartPortFor("suite/beta")
	assert.NotEqual(t, a, b)
}

// TestGenerateStartPort_StableWithinCallSite verifies that two calls
// from the same enclosing function return the same offset.
func TestGenerateStartPort_StableWithinCallSite(t *testing.T) {
	first := offsetFromHelperA()
	second := offsetFromHelperA()
	assert.Equal(t, first, second)
}

// TestGenerateStartPort_DistinctCallSites verifies that two different
// enclosing functions produce different offsets. Not guaranteed in
// general, but stable for these two fixed helpers within one build.
func TestGenerateStartPort_DistinctCallSites(t *testing.T) {
	a := offsetFromHelperA()
	b := offsetFromHelperB()
	assert.NotEqual(t, a, b)
}

// TestGenerateStartPort_Range verifies the generated offset respects
// the same [1000, 65535) bounds as the explicit-identifier form.
func TestGenerateStartPort_Range(t *testing.T) {
	port := GenerateStartPort()
	assert.GreaterOrEqual(t, port, uint16(1000))
	assert.Less(t, port, uint16(MaxPort))
}

// TestGenerateStartPort_SeedsCursor exercises the intended composition:
// generate an offset, install it with SetPortIndex, and allocate. The
// returned port must be at or above the offset.
func TestGenerateStartPort_SeedsCursor(t *testing.T) {
	offset := GenerateStartPort()

	a := NewAllocator(nil)
	require.NoError(t, a.SetPortIndex(offset))

	port, err := a.Allocate()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, offset)
}
