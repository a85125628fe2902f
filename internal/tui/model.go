// Package tui provides the interactive results viewer for calculation runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/export"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// copyResult is a package-level variable to allow mocking in tests.
var copyResult = export.CopyToClipboard

// DefaultExportPath is where the e key writes the workbook when no
// explicit path is configured.
const DefaultExportPath = "element_lengths.xlsx"

// Config holds configuration for the results viewer.
type Config struct {
	// Result is the completed calculation to display.
	Result *core.Result
	// Source names the model the result came from, shown in the header.
	Source string
	// Project is the model's project name, empty if unknown.
	Project string
	// ExportPath is the target for the xlsx export key.
	ExportPath string
}

// Model is the results viewer. It renders the records of one
// calculation in a scrollable table with a summary footer, and lets
// the user cycle the display unit, copy the results, or export them
// without leaving the terminal.
type Model struct {
	table      table.Model
	result     *core.Result
	source     string
	project    string
	exportPath string

	// unitIdx indexes core.Units(); the u key advances it.
	unitIdx int

	status string
	width  int
	height int
	styles styles
}

type styles struct {
	header  lipgloss.Style
	muted   lipgloss.Style
	status  lipgloss.Style
	errText lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("229")),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
	}
}

// New creates a results viewer for a completed calculation.
func New(cfg Config) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Element Name", Width: 38},
			{Title: "Size", Width: 10},
			{Title: "Length", Width: 18},
			{Title: "Parameter", Width: 16},
			{Title: "Source", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	exportPath := cfg.ExportPath
	if exportPath == "" {
		exportPath = DefaultExportPath
	}

	m := Model{
		table:      t,
		result:     cfg.Result,
		source:     cfg.Source,
		project:    cfg.Project,
		exportPath: exportPath,
		styles:     newStyles(),
	}
	for i, u := range core.Units() {
		if u == cfg.Result.Unit {
			m.unitIdx = i
			break
		}
	}
	m.setRows()
	return m
}

// Run starts the viewer and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "u":
			m.unitIdx = (m.unitIdx + 1) % len(core.Units())
			m.reformat()
			m.status = ""
			return m, nil
		case "c":
			if err := copyResult(m.result); err != nil {
				m.status = m.styles.errText.Render("Copy failed: " + err.Error())
			} else {
				m.status = m.styles.status.Render("Copied to clipboard")
			}
			return m, nil
		case "e":
			if err := export.WriteXLSX(m.exportPath, m.result); err != nil {
				m.status = m.styles.errText.Render("Export failed: " + err.Error())
			} else {
				m.status = m.styles.status.Render("Exported to " + m.exportPath)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.header.Render(" Element Lengths ") + "\n")

	if m.source != "" || m.project != "" {
		line := "Source: " + m.source
		if m.project != "" {
			line += "  Project: " + m.project
		}
		sb.WriteString(m.styles.muted.Render(line) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.table.View() + "\n\n")

	s := m.result.Summary
	sb.WriteString(fmt.Sprintf("Total Elements: %d    With Length: %d    Total: %.4f %s (%s)\n",
		s.TotalElements, s.WithLength, s.DisplayTotal, s.UnitSymbol, core.FormatDual(s.TotalFeet)))

	if m.status != "" {
		sb.WriteString(m.status + "\n")
	}

	help := fmt.Sprintf("[u] Unit: %s  [c] Copy  [e] Export  [q] Quit", s.UnitSymbol)
	sb.WriteString(m.styles.muted.Render(help))

	return sb.String()
}

// setSize updates the layout for a new terminal size.
func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(w - 4)
	if h > 10 {
		m.table.SetHeight(h - 8)
	}
}

// reformat rebuilds the display strings for the active unit. The raw
// feet values never change; only their rendering does.
func (m *Model) reformat() {
	unit := core.Units()[m.unitIdx]

	recs := make([]core.LengthRecord, len(m.result.Records))
	copy(recs, m.result.Records)
	for i := range recs {
		if recs[i].HasLength {
			recs[i].LengthDisplay = core.FormatFeetIn(recs[i].LengthFeet, unit)
		}
	}

	sum := m.result.Summary
	sum.DisplayTotal, sum.UnitSymbol = core.ConvertFromFeet(sum.TotalFeet, unit)

	m.result = &core.Result{Records: recs, Summary: sum, Unit: unit}
	m.setRows()
}

// setRows fills the table from the current result.
func (m *Model) setRows() {
	rows := make([]table.Row, 0, len(m.result.Records))
	for _, rec := range m.result.Records {
		rows = append(rows, table.Row{
			rec.ElementName,
			rec.Size,
			rec.LengthDisplay,
			rec.ParameterName,
			rec.Source.String(),
		})
	}
	m.table.SetRows(rows)
}
