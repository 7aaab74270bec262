// Package model defines the shared types for the uniqueport CLI:
// output formats, report structures serialized by the cli package,
// exit codes, and the CLIError type that carries an exit code from a
// failing subcommand to the process boundary.
//
// The library itself (the root uniqueport package) does not depend on
// this package; model exists so the CLI layers agree on one vocabulary
// for results and failures.
package model
