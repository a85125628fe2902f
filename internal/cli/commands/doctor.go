package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/state"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment and configuration",
		Long: `Check that LengthCalculator is ready to run.

The doctor command verifies the configuration file, the configured
source, the state database, and the presentation environment, and
reports anything that would degrade a calculation run.`,
		Example: `  # Run the health check
  lengthcalc doctor

  # Output as JSON
  lengthcalc doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name   string `json:"name"`
	Group  string `json:"group"`
	Status string `json:"status"` // "pass", "warn", "error"
	Detail string `json:"detail,omitempty"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks   []HealthCheck `json:"checks"`
	Passed   int           `json:"passed"`
	Warnings int           `json:"warnings"`
	Errors   int           `json:"errors"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	checks := []HealthCheck{}
	checks = append(checks, configChecks(cfg)...)
	checks = append(checks, sourceChecks(cfg)...)
	checks = append(checks, stateChecks(cmdCtx)...)
	checks = append(checks, presentationChecks()...)

	out := &DoctorOutput{Checks: checks}
	for _, check := range checks {
		switch check.Status {
		case "pass":
			out.Passed++
		case "warn":
			out.Warnings++
		case "error":
			out.Errors++
		}
	}

	format := opts.Format
	if format == "" && cfg.OutputFormat == "json" {
		format = "json"
	}
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderDoctorText(cmd.OutOrStdout(), out)
	return nil
}

func configChecks(cfg *config.Config) []HealthCheck {
	checks := []HealthCheck{}

	if used := config.GetConfigFileUsed(); used != "" {
		checks = append(checks, HealthCheck{
			Name: "Config file", Group: "configuration", Status: "pass",
			Detail: "using " + used,
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Config file", Group: "configuration", Status: "warn",
			Detail: "no lengthcalc.yaml found, using defaults",
		})
	}

	if cfg.Unit == "" {
		checks = append(checks, HealthCheck{
			Name: "Display unit", Group: "configuration", Status: "pass",
			Detail: "not set, feet will be used",
		})
	} else if u, ok := core.ParseUnit(cfg.Unit); ok {
		checks = append(checks, HealthCheck{
			Name: "Display unit", Group: "configuration", Status: "pass",
			Detail: u.Symbol(),
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Display unit", Group: "configuration", Status: "warn",
			Detail: fmt.Sprintf("unrecognized unit %q, feet will be used", cfg.Unit),
		})
	}

	knownFormats := []string{"", "auto", "table", "json", "csv", "md", "markdown"}
	if slices.Contains(knownFormats, cfg.OutputFormat) {
		checks = append(checks, HealthCheck{
			Name: "Output format", Group: "configuration", Status: "pass",
			Detail: cfg.OutputFormat,
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Output format", Group: "configuration", Status: "warn",
			Detail: fmt.Sprintf("unknown format %q, tables will be used", cfg.OutputFormat),
		})
	}

	return checks
}

func sourceChecks(cfg *config.Config) []HealthCheck {
	checks := []HealthCheck{}
	src := cfg.Source

	if src == nil || (src.Type == "" && src.Path == "" && src.DSN == "") {
		checks = append(checks, HealthCheck{
			Name: "Source", Group: "source", Status: "warn",
			Detail: "no source configured (pass a model file as an argument)",
		})
		return checks
	}

	srcType := src.Type
	if srcType == "" {
		srcType = config.InferSourceType(src.Path)
	}
	if srcType == "" {
		checks = append(checks, HealthCheck{
			Name: "Source type", Group: "source", Status: "error",
			Detail: fmt.Sprintf("cannot infer type for %s, set source.type", src.Path),
		})
	} else if slices.Contains(host.ListProviders(), srcType) {
		checks = append(checks, HealthCheck{
			Name: "Source type", Group: "source", Status: "pass",
			Detail: srcType,
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Source type", Group: "source", Status: "error",
			Detail: fmt.Sprintf("no host registered for %q", srcType),
		})
	}

	switch {
	case src.Path != "":
		if info, err := os.Stat(src.Path); err != nil {
			checks = append(checks, HealthCheck{
				Name: "Source file", Group: "source", Status: "error",
				Detail: fmt.Sprintf("%s not found", src.Path),
			})
		} else {
			checks = append(checks, HealthCheck{
				Name: "Source file", Group: "source", Status: "pass",
				Detail: fmt.Sprintf("%s (%d bytes)", src.Path, info.Size()),
			})
		}
	case src.DSN != "":
		checks = append(checks, HealthCheck{
			Name: "Source DSN", Group: "source", Status: "pass",
			Detail: "configured",
		})
	}

	return checks
}

func stateChecks(cmdCtx *CommandContext) []HealthCheck {
	checks := []HealthCheck{}
	cfg := cmdCtx.Cfg

	if !cfg.HistoryEnabled() {
		checks = append(checks, HealthCheck{
			Name: "Run history", Group: "state", Status: "warn",
			Detail: "disabled, runs will not be recorded",
		})
		return checks
	}
	checks = append(checks, HealthCheck{
		Name: "Run history", Group: "state", Status: "pass",
		Detail: "enabled",
	})

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = config.DefaultStateFile
	}

	stateDir := filepath.Dir(statePath)
	if _, err := os.Stat(stateDir); os.IsNotExist(err) {
		checks = append(checks, HealthCheck{
			Name: "State directory", Group: "state", Status: "pass",
			Detail: stateDir + " will be created on first run",
		})
		return checks
	}

	probe, err := os.CreateTemp(stateDir, ".lengthcalc-doctor-*")
	if err != nil {
		checks = append(checks, HealthCheck{
			Name: "State directory", Group: "state", Status: "error",
			Detail: stateDir + " is not writable",
		})
		return checks
	}
	probeName := probe.Name()
	_ = probe.Close()
	_ = os.Remove(probeName)
	checks = append(checks, HealthCheck{
		Name: "State directory", Group: "state", Status: "pass",
		Detail: stateDir,
	})

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		checks = append(checks, HealthCheck{
			Name: "State database", Group: "state", Status: "pass",
			Detail: "not created yet",
		})
		return checks
	}

	store := state.NewSQLiteStore(cmdCtx.Logger)
	if err := store.Open(statePath); err != nil {
		checks = append(checks, HealthCheck{
			Name: "State database", Group: "state", Status: "error",
			Detail: err.Error(),
		})
		return checks
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		checks = append(checks, HealthCheck{
			Name: "State database", Group: "state", Status: "error",
			Detail: err.Error(),
		})
		return checks
	}

	detail := "reachable, no runs recorded"
	if run, err := store.LatestRun(); err == nil && run != nil {
		detail = "reachable, last run " + run.StartedAt.Format("2006-01-02 15:04:05")
	}
	checks = append(checks, HealthCheck{
		Name: "State database", Group: "state", Status: "pass",
		Detail: detail,
	})

	return checks
}

func presentationChecks() []HealthCheck {
	checks := []HealthCheck{}

	if clipboard.Unsupported {
		checks = append(checks, HealthCheck{
			Name: "Clipboard", Group: "presentation", Status: "warn",
			Detail: "unavailable on this platform, copy will print instead",
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Clipboard", Group: "presentation", Status: "pass",
			Detail: "available",
		})
	}

	if isTerminal(os.Stdout) {
		checks = append(checks, HealthCheck{
			Name: "Terminal", Group: "presentation", Status: "pass",
			Detail: "interactive, tables will be styled",
		})
	} else {
		checks = append(checks, HealthCheck{
			Name: "Terminal", Group: "presentation", Status: "pass",
			Detail: "not interactive, markdown output will be used",
		})
	}

	return checks
}

func renderDoctorText(w io.Writer, out *DoctorOutput) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LengthCalculator Health Report")
	fmt.Fprintln(w, strings.Repeat("=", 55))
	fmt.Fprintln(w)

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				fmt.Fprintln(w)
			}
			currentGroup = check.Group
			fmt.Fprintln(w, "   "+titleCaser.String(currentGroup))
			fmt.Fprintln(w, "   "+strings.Repeat("-", 40))
		}

		icon := "+"
		switch check.Status {
		case "warn":
			icon = "!"
		case "error":
			icon = "x"
		}

		line := fmt.Sprintf("   %s %s", icon, check.Name)
		if check.Detail != "" {
			line += ": " + check.Detail
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 55))
	fmt.Fprintf(w, "   %d passed, %d warnings, %d errors\n", out.Passed, out.Warnings, out.Errors)
	fmt.Fprintln(w)
}
