package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Select string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [source]",
		Short: "Recalculate lengths whenever the source file changes",
		Long: `Watch a file-backed model source and rerun the calculation each
time the file is written. Useful while a model export is being worked
on in another tool.

Only file-backed sources can be watched; a database DSN cannot.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runWatch(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

func runWatch(cmd *cobra.Command, arg string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)

	src, err := resolveSource(cmdCtx.Cfg, arg)
	if err != nil {
		return err
	}
	if src.Path == "" {
		return errors.New("watch requires a file-backed source")
	}

	absPath, err := filepath.Abs(src.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", src.Path, err)
	}

	if err := watchCalculate(cmd, cmdCtx, src, opts.Select); err != nil {
		reportWatchError(cmd, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself; many editors
	// replace the file on save, which would drop a file-level watch.
	watchDir := filepath.Dir(absPath)
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", src.Path)

	watchedBase := filepath.Base(absPath)
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watchTriggers(event, watchedBase) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(200*time.Millisecond, func() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", time.Now().Format("15:04:05"))
				if err := watchCalculate(cmd, cmdCtx, src, opts.Select); err != nil {
					reportWatchError(cmd, err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err)
		}
	}
}

// watchTriggers reports whether an event is a write or create touching
// the watched file.
func watchTriggers(event fsnotify.Event, watchedBase string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Base(event.Name) == watchedBase
}

// watchCalculate runs one load-and-calculate pass against the source.
func watchCalculate(cmd *cobra.Command, cmdCtx *CommandContext, src *config.SourceConfig, filter string) error {
	model, err := loadModel(cmd.Context(), src, cmdCtx.Logger)
	if err != nil {
		return err
	}

	elements := filterElements(model.Elements, filter)
	eng := engine.New(engine.Config{Logger: cmdCtx.Logger})
	result, err := eng.Calculate(elements, resolveUnit(cmd, cmdCtx.Cfg, model, cmdCtx.Logger))
	if err != nil {
		return err
	}

	format := resolveFormat(cmdCtx.Cfg, cmd.OutOrStdout())
	if err := renderResult(cmd.OutOrStdout(), result, format); err != nil {
		return err
	}

	maybeRecordRun(cmdCtx, src, result)
	return nil
}

func reportWatchError(cmd *cobra.Command, err error) {
	if errors.Is(err, engine.ErrNoSelection) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No elements selected. Waiting for changes...")
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
