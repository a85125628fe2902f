// Package cli provides the command-line interface for LengthCalculator.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/cli/commands"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"

	// Register host providers.
	_ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/duckdb"
	_ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/modelfile"
	_ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/postgres"
	_ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/schedule"
	_ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/sqlite"
)

var (
	cfgFile     string
	profileFlag string
	cfg         *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lengthcalc",
		Short: "LengthCalculator - element length extraction for building models",
		Long: `LengthCalculator reads building model elements from an exported source,
resolves each element's length parameter, and reports per-element lengths
with a project total in your preferred display unit.

Sources can be model exports (JSON/YAML), schedule exports (CSV/TSV),
or model databases (SQLite, DuckDB, PostgreSQL).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			// Load configuration with optional profile override and CLI flags
			var err error
			cfg, err = config.LoadConfigWithProfile(cfgFile, profileFlag, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Store config in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

			// Create and store logger, level driven by verbose
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
				if cfg.Profile != "" {
					fmt.Fprintf(os.Stderr, "Using profile: %s\n", cfg.Profile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Element length extraction for building models
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./lengthcalc.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Named profile to use (e.g., site-a)")
	rootCmd.PersistentFlags().String("source", "", "Source type (sqlite, duckdb, postgres, modelfile, schedule)")
	rootCmd.PersistentFlags().StringP("unit", "u", "", "Display unit (mm, cm, m, ft, in)")
	rootCmd.PersistentFlags().String("state", "", "Path to run history database")
	rootCmd.PersistentFlags().Bool("no-history", false, "Disable run history recording")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|json|csv|md)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "json", "csv", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for unit flag
	_ = rootCmd.RegisterFlagCompletionFunc("unit", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mm", "cm", "m", "ft", "in"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for source flag
	_ = rootCmd.RegisterFlagCompletionFunc("source", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sqlite", "duckdb", "postgres", "modelfile", "schedule"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewCalcCommand())
	rootCmd.AddCommand(commands.NewElementsCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewHostsCommand())
	rootCmd.AddCommand(commands.NewConsoleCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewUICommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		StatePath:    config.DefaultStateFile,
		OutputFormat: config.DefaultOutput,
	}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lengthcalc.

To load completions:

Bash:
  $ source <(lengthcalc completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ lengthcalc completion bash > /etc/bash_completion.d/lengthcalc
  # macOS:
  $ lengthcalc completion bash > $(brew --prefix)/etc/bash_completion.d/lengthcalc

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ lengthcalc completion zsh > "${fpath[1]}/_lengthcalc"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ lengthcalc completion fish | source

  # To load completions for each session, execute once:
  $ lengthcalc completion fish > ~/.config/fish/completions/lengthcalc.fish

PowerShell:
  PS> lengthcalc completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> lengthcalc completion powershell > lengthcalc.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
