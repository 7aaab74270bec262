// Package cli implements the cobra-based CLI commands for uniqueport.
//
// Each subcommand (get, scan, probe, offset) is defined in its own file
// within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/uniqueport/internal/config"
	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command, available to every subcommand.
var (
	// configPath is an explicit config file path. When empty, the
	// default uniqueport.jsonc in the working directory is used if it
	// exists.
	configPath string

	// outputFlag overrides the configured output format when set.
	outputFlag string

	// verbose enables detailed logging to stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only
// provides help text and global flags. Actual functionality lives in
// the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uniqueport",
		Short: "Allocate unique free TCP ports on the loopback interface",
		Long: `uniqueport finds TCP ports on 127.0.0.1 that are currently unbound.

Ports are discovered with a listen-bind probe and handed out in ascending
order from a configurable start index, so repeated invocations with the
same start scan deterministically. A port is free at probe time, not
reserved: bind it promptly.`,

		// SilenceUsage prevents cobra from printing usage on every
		// error; SilenceErrors leaves error output to Execute, which
		// formats it per the selected output format.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a uniqueport.jsonc config file")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "",
		"Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewProbeCommand())
	rootCmd.AddCommand(NewOffsetCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Error())
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error())
		os.Exit(int(model.ExitGeneralError))
	}
}

// loadSettings resolves the effective configuration for a subcommand:
// config file and environment first, then the --output flag on top.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if outputFlag != "" {
		format, err := model.ParseOutputFormat(outputFlag)
		if err != nil {
			return config.Config{}, model.WrapCLIError(model.ExitGeneralError, "invalid --output flag", err)
		}
		cfg.Output = format
	}
	return cfg, nil
}

// printError writes an error message to stderr. Machine-readable
// formats get a JSON object so consumers never have to parse prose.
func printError(message string) {
	if outputFlag == string(model.FormatJSON) {
		fmt.Fprintf(os.Stderr, "{\"error\": %q}\n", message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// VerboseLog prints a formatted message to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
