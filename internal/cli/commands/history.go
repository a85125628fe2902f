package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded calculation runs",
		Long: `List recent calculation runs from the local state database,
newest first. Runs are recorded automatically unless history is
disabled with --no-history or history: false in lengthcalc.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)

	statePath := cmdCtx.Cfg.StatePath
	if statePath == "" {
		statePath = config.DefaultStateFile
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil
	}

	store := state.NewSQLiteStore(cmdCtx.Logger)
	if err := store.Open(statePath); err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate state database: %w", err)
	}

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil
	}

	format := resolveFormat(cmdCtx.Cfg, cmd.OutOrStdout())
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Source,
			run.Unit,
			strconv.Itoa(run.TotalElements),
			strconv.Itoa(run.WithLength),
			fmt.Sprintf("%.4f %s", run.TotalDisplay, run.Unit),
		})
	}
	return renderGrid(cmd.OutOrStdout(), []string{"Run", "Started", "Source", "Unit", "Elements", "With Length", "Total"}, rows, format)
}
