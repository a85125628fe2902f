package commands

import (
	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// hostDescriptions maps provider names to a short usage hint.
var hostDescriptions = map[string]string{
	"sqlite":    "SQLite model database (.db, .sqlite, .sqlite3)",
	"duckdb":    "DuckDB model database (.duckdb, .ddb)",
	"postgres":  "PostgreSQL model database (postgres:// DSN)",
	"modelfile": "Model export file (.json, .yaml, .yml)",
	"schedule":  "Schedule export (.csv, .tsv, .txt)",
}

// NewHostsCommand creates the hosts command.
func NewHostsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "List available model source hosts",
		Long: `List the registered host providers and the source formats they
read. The source type is normally inferred from the file extension or
DSN; set source.type in lengthcalc.yaml to pick one explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHosts(cmd)
		},
	}
}

func runHosts(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	rows := make([][]string, 0)
	for _, name := range host.ListProviders() {
		rows = append(rows, []string{name, hostDescriptions[name]})
	}

	format := resolveFormat(cmdCtx.Cfg, cmd.OutOrStdout())
	return renderGrid(cmd.OutOrStdout(), []string{"Host", "Description"}, rows, format)
}
