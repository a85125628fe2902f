package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/config"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// resultHeaders are the columns of a rendered calculation.
var resultHeaders = []string{"Element Name", "Size", "Length", "Parameter", "Source"}

// resolveFormat maps the configured output format to a concrete one.
// "auto" renders a table on a terminal and markdown when piped.
func resolveFormat(cfg *config.Config, w io.Writer) string {
	format := cfg.OutputFormat
	if format == "" || format == "auto" {
		if f, ok := w.(*os.File); ok && isTerminal(f) {
			return "table"
		}
		return "md"
	}
	return format
}

// renderResult writes a calculation in the requested format.
func renderResult(w io.Writer, result *core.Result, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return renderResultJSON(w, result)
	case "csv":
		return renderResultCSV(w, result)
	case "md", "markdown":
		return renderResultMarkdown(w, result)
	default:
		return renderResultTable(w, result)
	}
}

func resultRow(rec core.LengthRecord) []string {
	return []string{
		rec.ElementName,
		rec.Size,
		rec.LengthDisplay,
		rec.ParameterName,
		rec.Source.String(),
	}
}

// renderSummary writes the run summary lines shared by the table and
// markdown formats. The total carries the fixed meters/feet
// cross-reference alongside the display unit.
func renderSummary(w io.Writer, s core.Summary) {
	fmt.Fprintf(w, "Total Elements: %d\n", s.TotalElements)
	fmt.Fprintf(w, "Elements with Length: %d\n", s.WithLength)
	fmt.Fprintf(w, "Total Length: %.4f %s (%s)\n", s.DisplayTotal, s.UnitSymbol, core.FormatDual(s.TotalFeet))
}

func renderResultTable(w io.Writer, result *core.Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(resultHeaders))
	for i, h := range resultHeaders {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, rec := range result.Records {
		row := make(table.Row, 0, len(resultHeaders))
		for _, cell := range resultRow(rec) {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintln(w)
	renderSummary(w, result.Summary)
	return nil
}

func renderResultJSON(w io.Writer, result *core.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func renderResultCSV(w io.Writer, result *core.Result) error {
	fmt.Fprintln(w, strings.Join(escapeCSVRow(resultHeaders), ","))
	for _, rec := range result.Records {
		fmt.Fprintln(w, strings.Join(escapeCSVRow(resultRow(rec)), ","))
	}
	return nil
}

func renderResultMarkdown(w io.Writer, result *core.Result) error {
	fmt.Fprintf(w, "| %s |\n", strings.Join(resultHeaders, " | "))

	separators := make([]string, len(resultHeaders))
	for i := range separators {
		separators[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(separators, " | "))

	for _, rec := range result.Records {
		fmt.Fprintf(w, "| %s |\n", strings.Join(resultRow(rec), " | "))
	}

	fmt.Fprintln(w)
	renderSummary(w, result.Summary)
	return nil
}

// renderGrid writes a generic header/rows listing in the requested
// format. JSON callers encode their own structures instead.
func renderGrid(w io.Writer, headers []string, rows [][]string, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		fmt.Fprintln(w, strings.Join(escapeCSVRow(headers), ","))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(escapeCSVRow(row), ","))
		}
		return nil

	case "md", "markdown":
		fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | "))
		separators := make([]string, len(headers))
		for i := range separators {
			separators[i] = "---"
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(separators, " | "))
		for _, row := range rows {
			fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
		}
		return nil

	default:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)

		headerRow := make(table.Row, len(headers))
		for i, h := range headers {
			headerRow[i] = h
		}
		t.AppendHeader(headerRow)

		for _, row := range rows {
			r := make(table.Row, 0, len(row))
			for _, cell := range row {
				r = append(r, cell)
			}
			t.AppendRow(r)
		}

		t.Render()
		fmt.Fprintf(w, "(%d rows)\n", len(rows))
		return nil
	}
}

func escapeCSVRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = escapeCSV(cell)
	}
	return out
}

// escapeCSV escapes a value for CSV output.
func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
