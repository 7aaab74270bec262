// Package cli — probe.go implements the "uniqueport probe" command.
//
// The probe command checks a single port and reflects the result in the
// process exit code: 0 when the port is free, ExitPortInUse when it is
// bound. Shell scripts branch on the code without parsing output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/uniqueport"
	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// NewProbeCommand creates the "probe" cobra command.
func NewProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <port>",
		Short: "Check whether a single port is free",
		Long: `Attempt a TCP listen-bind on 127.0.0.1:<port> and report the result.

Exits 0 when the port is free and 3 when it is in use, so the command
composes with shell conditionals:

  uniqueport probe 8080 && ./serve --port 8080`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(args[0])
		},
	}
}

// runProbe is the main logic function for the probe command.
func runProbe(arg string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	port, err := model.ParsePort(arg)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid argument", err)
	}

	report := model.ProbeReport{
		Port: port,
		Free: uniqueport.NewScanner().IsFree(port),
	}
	if err := emit(os.Stdout, cfg.Output, report, report.String()); err != nil {
		return err
	}

	if !report.Free {
		return model.NewCLIError(model.ExitPortInUse,
			fmt.Sprintf("port %d is in use", port))
	}
	return nil
}
