// Package cli — get.go implements the "uniqueport get" command.
//
// The get command allocates one or more unique free ports starting from
// the configured start index. Each invocation uses a fresh allocator
// seeded from config/flags: the cursor is process-scoped, so uniqueness
// holds within one invocation, and determinism across invocations comes
// from seeding the same start index.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/uniqueport"
	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// getFlags holds the flag values for the get command.
type getFlags struct {
	// start overrides the configured start index for this invocation.
	start uint16
}

// NewGetCommand creates the "get" cobra command.
func NewGetCommand() *cobra.Command {
	flags := &getFlags{}

	cmd := &cobra.Command{
		Use:   "get [count]",
		Short: "Allocate unique free ports",
		Long: `Allocate one or more unique free TCP ports on 127.0.0.1.

Ports are scanned ascending from the start index (config file,
UNIQUEPORT_START_PORT, or --start) and each allocated port advances the
scan, so the returned ports are strictly increasing.

Examples:
  uniqueport get
  uniqueport get 3
  uniqueport get --start 20000 --output json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, flags, args)
		},
	}

	cmd.Flags().Uint16Var(&flags.start, "start", 0,
		"Start index to scan from (overrides config)")

	return cmd
}

// runGet is the main logic function for the get command.
func runGet(cmd *cobra.Command, flags *getFlags, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	count := cfg.Count
	if len(args) == 1 {
		count, err = strconv.Atoi(args[0])
		if err != nil || count < 1 {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("invalid count %q: must be a positive integer", args[0]))
		}
	}

	start := cfg.StartPort
	if cmd.Flags().Changed("start") {
		start = flags.start
	}
	VerboseLog("Allocating %d port(s) starting at %d", count, start)

	allocator := uniqueport.NewAllocator(nil)
	if err := allocator.SetPortIndex(start); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "seeding port cursor", err)
	}

	report := model.AllocationReport{
		StartIndex: start,
		Ports:      make([]uint16, 0, count),
	}
	for i := 0; i < count; i++ {
		port, err := allocator.Allocate()
		if err != nil {
			if errors.Is(err, uniqueport.ErrNoFreePort) {
				return model.WrapCLIError(model.ExitNoFreePort,
					fmt.Sprintf("allocated %d of %d port(s)", i, count), err)
			}
			return model.WrapCLIError(model.ExitGeneralError, "allocating port", err)
		}
		VerboseLog("Allocated port %d", port)
		report.Ports = append(report.Ports, port)
	}

	lines := make([]string, len(report.Ports))
	for i, port := range report.Ports {
		lines[i] = strconv.Itoa(int(port))
	}
	return emit(os.Stdout, cfg.Output, report, strings.Join(lines, "\n"))
}
