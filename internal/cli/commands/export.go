package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/export"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	File   string
	Select string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [source]",
		Short: "Export element lengths to an Excel workbook",
		Long: `Calculate element lengths and write them to an .xlsx workbook.

The workbook has one row per element with name, size, length, the
resolved parameter name, and whether it came from the instance or the
type. A totals row converts the project total to millimeters and
meters.`,
		Example: `  # Export to the default element_lengths.xlsx
  lengthcalc export model.json

  # Export to a chosen file
  lengthcalc export model.json --file lengths.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runExport(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "element_lengths.xlsx", "Output workbook path")
	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

func runExport(cmd *cobra.Command, arg string, opts *ExportOptions) error {
	cmdCtx := NewCommandContext(cmd)

	result, _, src, err := runCalculation(cmd, cmdCtx, arg, opts.Select)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No elements selected. Check the source content or the --select filter.")
			return nil
		}
		return err
	}

	if err := export.WriteXLSX(opts.File, result); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d elements to %s\n", result.Summary.TotalElements, opts.File)

	maybeRecordRun(cmdCtx, src, result)
	return nil
}
