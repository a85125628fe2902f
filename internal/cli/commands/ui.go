package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/tui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	File   string
	Select string
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui [source]",
		Short: "Browse calculation results in an interactive viewer",
		Long: `Calculate element lengths and browse the results in a full-screen
viewer. Cycle the display unit with u, copy the report with c, export
a workbook with e, and quit with q.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runUI(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", tui.DefaultExportPath, "Workbook path for in-viewer export")
	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

func runUI(cmd *cobra.Command, arg string, opts *UIOptions) error {
	cmdCtx := NewCommandContext(cmd)

	result, model, src, err := runCalculation(cmd, cmdCtx, arg, opts.Select)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No elements selected. Check the source content or the --select filter.")
			return nil
		}
		return err
	}

	maybeRecordRun(cmdCtx, src, result)

	return tui.Run(tui.Config{
		Result:     result,
		Source:     sourceLabel(src),
		Project:    model.ProjectName,
		ExportPath: opts.File,
	})
}
