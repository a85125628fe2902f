// Package commands implements the lengthcalc subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/state"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	statePath := getEnvOrDefault("LENGTHCALC_STATE_PATH", config.DefaultStateFile)
	unit := os.Getenv("LENGTHCALC_UNIT")
	verbose := os.Getenv("LENGTHCALC_VERBOSE") == "true"
	outputFormat := getEnvOrDefault("LENGTHCALC_OUTPUT", config.DefaultOutput)

	return &config.Config{
		Source:       &config.SourceConfig{},
		Unit:         unit,
		StatePath:    statePath,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// resolveSource decides where elements come from: a positional argument
// overrides the configured source, and the provider type is inferred
// from the argument when not set explicitly.
func resolveSource(cfg *config.Config, arg string) (*config.SourceConfig, error) {
	src := &config.SourceConfig{}
	if cfg.Source != nil {
		clone := *cfg.Source
		src = &clone
	}

	if arg != "" {
		if strings.HasPrefix(arg, "postgres://") || strings.HasPrefix(arg, "postgresql://") {
			src.DSN = arg
			src.Path = ""
		} else {
			src.Path = arg
			src.DSN = ""
		}
		if t := config.InferSourceType(arg); t != "" {
			src.Type = t
		}
	}

	if src.Type == "" && src.Path != "" {
		if t := config.InferSourceType(src.Path); t != "" {
			src.Type = t
		}
	}

	if src.Type == "" {
		return nil, errors.New("no source specified (pass a model file or set source in lengthcalc.yaml)")
	}

	config.ApplySourceDefaults(src)
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}

// sourceLabel is the short human-readable name of a source, used in
// headers and run history.
func sourceLabel(src *config.SourceConfig) string {
	switch {
	case src.Path != "":
		return src.Path
	case src.Database != "":
		return src.Type + ":" + src.Database
	case src.DSN != "":
		return src.Type
	default:
		return src.Type
	}
}

// loadModel connects a provider and loads one model snapshot. The
// provider is closed before returning; the snapshot stays valid.
func loadModel(ctx context.Context, src *config.SourceConfig, logger *slog.Logger) (*host.Model, error) {
	hostCfg := src.ToHostConfig()

	provider, err := host.NewProvider(hostCfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = provider.Close() }()

	if err := provider.Connect(ctx, hostCfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", sourceLabel(src), err)
	}
	return provider.Load(ctx)
}

// resolveUnit picks the display unit. An explicit --unit flag wins over
// the model's own unit, which wins over the configured one; everything
// else falls back to feet. Unparsable values fall through with a warning
// so a bad unit never aborts a calculation.
func resolveUnit(cmd *cobra.Command, cfg *config.Config, model *host.Model, logger *slog.Logger) core.Unit {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("unit") {
		s, _ := flags.GetString("unit")
		if u, ok := core.ParseUnit(s); ok {
			return u
		}
		logger.Warn("unrecognized unit flag, using fallback", "unit", s)
	}

	if model != nil && model.HasUnit {
		return model.Unit
	}

	if cfg.Unit != "" {
		if u, ok := core.ParseUnit(cfg.Unit); ok {
			return u
		}
		logger.Warn("unrecognized configured unit, using feet", "unit", cfg.Unit)
	}

	return core.UnitFeet
}

// filterElements keeps the elements whose display name contains the
// filter, case-insensitively. An empty filter keeps everything.
func filterElements(elements []core.Element, filter string) []core.Element {
	if filter == "" {
		return elements
	}
	needle := strings.ToLower(filter)
	var out []core.Element
	for _, el := range elements {
		if strings.Contains(strings.ToLower(engine.DisplayName(el)), needle) {
			out = append(out, el)
		}
	}
	return out
}

// runCalculation is the shared load-and-calculate pipeline behind calc,
// export, copy, ui and watch.
func runCalculation(cmd *cobra.Command, cmdCtx *CommandContext, arg, selectFilter string) (*core.Result, *host.Model, *config.SourceConfig, error) {
	src, err := resolveSource(cmdCtx.Cfg, arg)
	if err != nil {
		return nil, nil, nil, err
	}

	model, err := loadModel(cmd.Context(), src, cmdCtx.Logger)
	if err != nil {
		return nil, nil, nil, err
	}

	unit := resolveUnit(cmd, cmdCtx.Cfg, model, cmdCtx.Logger)
	elements := filterElements(model.Elements, selectFilter)

	eng := engine.New(engine.Config{Logger: cmdCtx.Logger})
	result, err := eng.Calculate(elements, unit)
	if err != nil {
		return nil, model, src, err
	}
	return result, model, src, nil
}

// recordRun appends the run to the history database. Failures are the
// caller's to log; history must never fail a calculation.
func recordRun(cmdCtx *CommandContext, src *config.SourceConfig, result *core.Result) error {
	statePath := cmdCtx.Cfg.StatePath
	if statePath == "" {
		statePath = config.DefaultStateFile
	}

	// Ensure state directory exists
	stateDir := filepath.Dir(statePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(cmdCtx.Logger)
	if err := store.Open(statePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return err
	}

	return store.RecordRun(&state.Run{
		Source:        sourceLabel(src),
		Unit:          result.Summary.UnitSymbol,
		TotalElements: result.Summary.TotalElements,
		WithLength:    result.Summary.WithLength,
		TotalFeet:     result.Summary.TotalFeet,
		TotalDisplay:  result.Summary.DisplayTotal,
	})
}

// maybeRecordRun records the run when history is enabled, logging
// failures instead of surfacing them.
func maybeRecordRun(cmdCtx *CommandContext, src *config.SourceConfig, result *core.Result) {
	if !cmdCtx.Cfg.HistoryEnabled() {
		return
	}
	if err := recordRun(cmdCtx, src, result); err != nil {
		cmdCtx.Logger.Warn("failed to record run history", "error", err)
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
