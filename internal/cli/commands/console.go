package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/internal/export"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// NewConsoleCommand creates the console command.
func NewConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "console [source]",
		Aliases: []string{"repl"},
		Short:   "Interactive length calculation console",
		Long: `Start an interactive console for exploring a model source.

Load a source once and run repeated calculations against it with
different filters and units, without reloading between runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runConsole(cmd, arg)
		},
	}
}

// consoleSession holds the state of one console run.
type consoleSession struct {
	cmdCtx     *CommandContext
	model      *host.Model
	src        *config.SourceConfig
	unit       core.Unit
	lastResult *core.Result
}

func runConsole(cmd *cobra.Command, arg string) error {
	cmdCtx := NewCommandContext(cmd)

	sess := &consoleSession{
		cmdCtx: cmdCtx,
		unit:   core.UnitFeet,
	}
	if sym, ok := core.ParseUnit(cmdCtx.Cfg.Unit); ok {
		sess.unit = sym
	}

	// Preload the configured or given source, if any. Failures are
	// reported but do not abort the session.
	configured := cmdCtx.Cfg.Source != nil &&
		(cmdCtx.Cfg.Source.Type != "" || cmdCtx.Cfg.Source.Path != "" || cmdCtx.Cfg.Source.DSN != "")
	if arg != "" || configured {
		if err := sess.load(cmd, arg); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	// History file lives next to the state database.
	statePath := cmdCtx.Cfg.StatePath
	if statePath == "" {
		statePath = config.DefaultStateFile
	}
	historyFile := filepath.Join(filepath.Dir(statePath), "console_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lengthcalc> ",
		HistoryFile:     historyFile,
		AutoComplete:    newConsoleCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "LengthCalculator Console (unit: %s)\n", sess.unit.Symbol())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands, quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if quit := sess.handle(cmd, line); quit {
			break
		}
	}

	return nil
}

// handle dispatches one console line. It returns true when the session
// should end.
func (s *consoleSession) handle(cmd *cobra.Command, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case "quit", "exit":
		return true

	case "help":
		printConsoleHelp(cmd.OutOrStdout())

	case "load":
		if rest == "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: load <path>")
			break
		}
		if err := s.load(cmd, rest); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case "unit":
		if rest == "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current unit: %s\n", s.unit.Symbol())
			break
		}
		u, ok := core.ParseUnit(rest)
		if !ok {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown unit: %s (use mm, cm, m, ft, or in)\n", rest)
			break
		}
		s.unit = u
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unit set to %s\n", u.Symbol())

	case "calc":
		if err := s.calc(cmd, rest); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case "elements":
		if err := s.listElements(cmd, rest); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case "summary":
		if s.lastResult == nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No calculation yet. Use: calc")
			break
		}
		renderSummary(cmd.OutOrStdout(), s.lastResult.Summary)

	case "copy":
		if s.lastResult == nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No calculation yet. Use: calc")
			break
		}
		if err := export.CopyToClipboard(s.lastResult); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			break
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %d elements to clipboard\n", s.lastResult.Summary.TotalElements)

	case "export":
		if s.lastResult == nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No calculation yet. Use: calc")
			break
		}
		file := rest
		if file == "" {
			file = "element_lengths.xlsx"
		}
		if err := export.WriteXLSX(file, s.lastResult); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			break
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d elements to %s\n", s.lastResult.Summary.TotalElements, file)

	case "clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type help for commands)\n", command)
	}

	return false
}

func (s *consoleSession) load(cmd *cobra.Command, arg string) error {
	src, err := resolveSource(s.cmdCtx.Cfg, arg)
	if err != nil {
		return err
	}

	model, err := loadModel(cmd.Context(), src, s.cmdCtx.Logger)
	if err != nil {
		return err
	}

	s.model = model
	s.src = src
	s.lastResult = nil
	if model.HasUnit {
		s.unit = model.Unit
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d elements from %s\n", len(model.Elements), sourceLabel(src))
	return nil
}

func (s *consoleSession) calc(cmd *cobra.Command, filter string) error {
	if s.model == nil {
		return errors.New("no model loaded (use: load <path>)")
	}

	elements := filterElements(s.model.Elements, filter)
	eng := engine.New(engine.Config{Logger: s.cmdCtx.Logger})
	result, err := eng.Calculate(elements, s.unit)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			return errors.New("no elements selected")
		}
		return err
	}

	s.lastResult = result
	if err := renderResult(cmd.OutOrStdout(), result, "table"); err != nil {
		return err
	}

	maybeRecordRun(s.cmdCtx, s.src, result)
	return nil
}

func (s *consoleSession) listElements(cmd *cobra.Command, filter string) error {
	if s.model == nil {
		return errors.New("no model loaded (use: load <path>)")
	}

	elements := filterElements(s.model.Elements, filter)
	for _, el := range elements {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), engine.DisplayName(el))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d elements)\n", len(elements))
	return nil
}

func printConsoleHelp(w io.Writer) {
	help := `
Commands:
  load <path>      Load a model source
  unit [symbol]    Show or set the display unit (mm, cm, m, ft, in)
  calc [filter]    Calculate lengths, optionally filtered by name
  elements [filter] List element names, optionally filtered
  summary          Reprint the last calculation summary
  copy             Copy the last calculation to the clipboard
  export [file]    Export the last calculation to a workbook
  clear            Clear the screen
  help             Show this help message
  quit / exit      Exit the console

Tips:
  - Use arrow keys to navigate history
  - Tab completion works for command names
`
	_, _ = fmt.Fprintln(w, help)
}

// newConsoleCompleter creates a readline completer for console commands.
func newConsoleCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("unit",
			readline.PcItem("mm"),
			readline.PcItem("cm"),
			readline.PcItem("m"),
			readline.PcItem("ft"),
			readline.PcItem("in"),
		),
		readline.PcItem("calc"),
		readline.PcItem("elements"),
		readline.PcItem("summary"),
		readline.PcItem("copy"),
		readline.PcItem("export"),
		readline.PcItem("clear"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}
