package model

import (
	"fmt"
	"strconv"
	"strings"
)

// OutputFormat selects how CLI results are rendered.
type OutputFormat string

const (
	// FormatText renders human-readable lines (the default).
	FormatText OutputFormat = "text"

	// FormatJSON renders a single JSON document for machine consumption.
	FormatJSON OutputFormat = "json"

	// FormatYAML renders a YAML document, convenient for pasting into
	// compose files and CI configuration.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat is one of the predefined
// formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a string to an OutputFormat.
// Returns an error if the string does not match any known format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// ParsePort converts a string to a 16-bit port number. It rejects
// anything outside [0, 65535], including negative numbers and non-digit
// input, with an error naming the offending value.
func ParsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: must be an integer in 0-65535", s)
	}
	return uint16(n), nil
}

// AllocationReport is the result of the "get" command: the ports handed
// out by the allocator, plus the cursor index the scan started from.
type AllocationReport struct {
	// StartIndex is the cursor value allocation began at.
	StartIndex uint16 `json:"startIndex" yaml:"startIndex"`

	// Ports are the allocated port numbers, in allocation order.
	// They are strictly increasing.
	Ports []uint16 `json:"ports" yaml:"ports"`
}

// ProbeReport is the result of the "probe" command for one port.
type ProbeReport struct {
	// Port is the probed port number.
	Port uint16 `json:"port" yaml:"port"`

	// Free reports whether a TCP listen-bind on 127.0.0.1 succeeded.
	Free bool `json:"free" yaml:"free"`
}

// String renders the probe result as a single human-readable line.
func (r ProbeReport) String() string {
	state := "in use"
	if r.Free {
		state = "free"
	}
	return fmt.Sprintf("%d: %s", r.Port, state)
}

// ScanReport is the result of the "scan" command: which ports inside
// the half-open range [From, To) are currently in use.
type ScanReport struct {
	// From is the inclusive lower bound of the scanned range.
	From uint16 `json:"from" yaml:"from"`

	// To is the exclusive upper bound of the scanned range.
	To uint16 `json:"to" yaml:"to"`

	// Used lists the ports in the range that failed the bind probe,
	// in ascending order. Empty when the whole range is free.
	Used []uint16 `json:"used" yaml:"used"`
}

// OffsetReport is the result of the "offset" command: the deterministic
// starting port derived from a stable identifier.
type OffsetReport struct {
	// Identifier is the string the offset was derived from.
	Identifier string `json:"identifier" yaml:"identifier"`

	// StartPort is the derived offset in [1000, 65535).
	StartPort uint16 `json:"startPort" yaml:"startPort"`
}

// ExitCode defines the CLI exit codes. Scripts and CI systems use them
// to distinguish failure modes without parsing error text.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNoFreePort indicates the scan exhausted its port range
	// without finding a bindable port.
	ExitNoFreePort ExitCode = 2

	// ExitPortInUse indicates a probed port is already bound. Used by
	// "probe" so scripts can branch on the result directly.
	ExitPortInUse ExitCode = 3

	// ExitBadConfig indicates the configuration file could not be
	// read or parsed.
	ExitBadConfig ExitCode = 4
)

// CLIError is an error that carries an exit code from a failing
// subcommand to the process boundary, where Execute translates it
// into os.Exit.
type CLIError struct {
	// Code is the process exit code for this failure.
	Code ExitCode

	// Message is the human-readable description shown to the user.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, enabling errors.Is/errors.As
// matching through the CLIError wrapper.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
