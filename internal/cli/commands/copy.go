package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/export"
)

// CopyOptions holds options for the copy command.
type CopyOptions struct {
	Select string
}

// NewCopyCommand creates the copy command.
func NewCopyCommand() *cobra.Command {
	opts := &CopyOptions{}

	cmd := &cobra.Command{
		Use:   "copy [source]",
		Short: "Copy element lengths to the clipboard",
		Long: `Calculate element lengths and copy a plain-text report to the
system clipboard. The report starts with the summary lines followed by
one line per element.

If no clipboard is available the report is printed to stdout instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runCopy(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

func runCopy(cmd *cobra.Command, arg string, opts *CopyOptions) error {
	cmdCtx := NewCommandContext(cmd)

	result, _, src, err := runCalculation(cmd, cmdCtx, arg, opts.Select)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No elements selected. Check the source content or the --select filter.")
			return nil
		}
		return err
	}

	if err := export.CopyToClipboard(result); err != nil {
		cmdCtx.Logger.Warn("clipboard unavailable, printing instead", "error", err)
		fmt.Fprint(cmd.OutOrStdout(), export.FormatClipboard(result))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %d elements to clipboard\n", result.Summary.TotalElements)
	}

	maybeRecordRun(cmdCtx, src, result)
	return nil
}
