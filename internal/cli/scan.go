// Package cli — scan.go implements the "uniqueport scan" command.
//
// The scan command probes every port in a half-open range and reports
// the ones currently in use. It exists for inspecting the neighborhood
// a test suite is about to allocate from; narrow ranges keep it fast,
// since every port costs one bind attempt.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/uniqueport"
	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// scanFlags holds the flag values for the scan command.
type scanFlags struct {
	// from is the inclusive lower bound of the scan.
	from uint16

	// to is the exclusive upper bound of the scan.
	to uint16
}

// NewScanCommand creates the "scan" cobra command.
func NewScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report ports in use within a range",
		Long: `Probe every TCP port in the half-open range [--from, --to) on 127.0.0.1
and report the ones that are currently bound.

Each port costs one bind attempt, so prefer narrow ranges.

Examples:
  uniqueport scan --from 8000 --to 8100
  uniqueport scan --from 5000 --to 5010 --output yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(flags)
		},
	}

	cmd.Flags().Uint16Var(&flags.from, "from", 1000, "Inclusive lower bound of the scan")
	cmd.Flags().Uint16Var(&flags.to, "to", 1100, "Exclusive upper bound of the scan")

	return cmd
}

// runScan is the main logic function for the scan command.
func runScan(flags *scanFlags) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	if flags.from >= flags.to {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("empty range: --from %d must be below --to %d", flags.from, flags.to))
	}
	VerboseLog("Scanning [%d, %d)", flags.from, flags.to)

	scanner := uniqueport.NewScanner()
	report := model.ScanReport{From: flags.from, To: flags.to}
	for port := flags.from; port < flags.to; port++ {
		if !scanner.IsFree(port) {
			report.Used = append(report.Used, port)
		}
	}

	var text string
	if len(report.Used) == 0 {
		text = fmt.Sprintf("no ports in use in [%d, %d)", report.From, report.To)
	} else {
		lines := make([]string, len(report.Used))
		for i, port := range report.Used {
			lines[i] = fmt.Sprintf("%d: in use", port)
		}
		text = strings.Join(lines, "\n")
	}
	return emit(os.Stdout, cfg.Output, report, text)
}
