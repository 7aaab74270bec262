// Package cli — offset.go implements the "uniqueport offset" command.
//
// The offset command maps a stable identifier (a suite name, a job
// name) to a deterministic starting port in [1000, 65535). CI scripts
// use it to give each suite its own scan region:
//
//	uniqueport get --start "$(uniqueport offset integration/gateway)"
package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/uniqueport"
	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// NewOffsetCommand creates the "offset" cobra command.
func NewOffsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "offset <identifier>",
		Short: "Derive a deterministic start port from an identifier",
		Long: `Hash a stable identifier into a starting port in [1000, 65535).

The same identifier always yields the same port, so independent test
suites that each derive their start from their own name scan different,
stable regions of the port space.

Examples:
  uniqueport offset integration/gateway
  uniqueport offset "$CI_JOB_NAME" --output json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runOffset(args[0])
		},
	}
}

// runOffset is the main logic function for the offset command.
func runOffset(identifier string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	report := model.OffsetReport{
		Identifier: identifier,
		StartPort:  uniqueport.StartPortFor(identifier),
	}
	VerboseLog("Identifier %q maps to start port %d", report.Identifier, report.StartPort)

	return emit(os.Stdout, cfg.Output, report, strconv.Itoa(int(report.StartPort)))
}
