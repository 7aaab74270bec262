package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// TestEmit_Text verifies that the text format prints exactly the
// pre-rendered text, one trailing newline, nothing else.
func TestEmit_Text(t *testing.T) {
	var buf bytes.Buffer
	report := model.AllocationReport{StartIndex: 20000, Ports: []uint16{20000, 20001}}

	require.NoError(t, emit(&buf, model.FormatText, report, "20000\n20001"))
	assert.Equal(t, "20000\n20001\n", buf.String())
}

// TestEmit_JSON verifies the JSON format round-trips: the emitted
// document unmarshals back into an equal report.
func TestEmit_JSON(t *testing.T) {
	var buf bytes.Buffer
	report := model.AllocationReport{StartIndex: 20000, Ports: []uint16{20000, 20001}}

	require.NoError(t, emit(&buf, model.FormatJSON, report, ""))

	var decoded model.AllocationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report, decoded)
}

// TestEmit_YAML verifies the YAML format round-trips and uses the
// camelCase field names declared in the struct tags, so the output can
// be pasted into CI configuration as-is.
func TestEmit_YAML(t *testing.T) {
	var buf bytes.Buffer
	report := model.ScanReport{From: 8000, To: 8010, Used: []uint16{8003}}

	require.NoError(t, emit(&buf, model.FormatYAML, report, ""))
	assert.Contains(t, buf.String(), "from: 8000")
	assert.Contains(t, buf.String(), "used:")

	var decoded model.ScanReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report, decoded)
}

// TestNewRootCommand_Subcommands verifies all four subcommands are
// registered on the root command.
func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"get", "scan", "probe", "offset"} {
		assert.True(t, names[want], "subcommand %q should be registered", want)
	}
}
