package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
)

// CalcOptions holds options for the calc command.
type CalcOptions struct {
	Select string
}

// NewCalcCommand creates the calc command.
func NewCalcCommand() *cobra.Command {
	opts := &CalcOptions{}

	cmd := &cobra.Command{
		Use:     "calc [source]",
		Aliases: []string{"run"},
		Short:   "Calculate element lengths from a model source",
		Long: `Calculate the length of every element in a model source.

Each element's length parameter is resolved (instance parameters first,
then type parameters), converted to the display unit, and reported with
a project total. Elements without a resolvable length are listed with a
NO LENGTH PARAM marker and excluded from the total.

The source can be given as an argument or configured in lengthcalc.yaml.
The provider type is inferred from the file extension when not set.`,
		Example: `  # Calculate from a model export
  lengthcalc calc model.json

  # Calculate from a schedule export in meters
  lengthcalc calc schedule.csv --unit m

  # Only pipes, as JSON
  lengthcalc calc model.json --select Pipe --output json

  # Use the configured source
  lengthcalc calc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runCalc(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

func runCalc(cmd *cobra.Command, arg string, opts *CalcOptions) error {
	cmdCtx := NewCommandContext(cmd)

	result, _, src, err := runCalculation(cmd, cmdCtx, arg, opts.Select)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No elements selected. Check the source content or the --select filter.")
			return nil
		}
		return err
	}

	format := resolveFormat(cmdCtx.Cfg, cmd.OutOrStdout())
	if err := renderResult(cmd.OutOrStdout(), result, format); err != nil {
		return err
	}

	maybeRecordRun(cmdCtx, src, result)
	return nil
}
