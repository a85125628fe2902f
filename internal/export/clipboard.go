package export

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// FormatClipboard renders the plain-text block copied to the clipboard:
// summary lines followed by one line per record.
func FormatClipboard(result *core.Result) string {
	var b strings.Builder

	s := result.Summary
	fmt.Fprintf(&b, "Total Elements: %d\n", s.TotalElements)
	fmt.Fprintf(&b, "Elements with Length: %d\n", s.WithLength)
	fmt.Fprintf(&b, "Total Length: %.4f %s\n", s.DisplayTotal, s.UnitSymbol)
	b.WriteString("\n")

	for _, rec := range result.Records {
		fmt.Fprintf(&b, "%s (Size: %s) : %s\n", rec.ElementName, rec.Size, rec.LengthDisplay)
	}

	return b.String()
}

// CopyToClipboard writes the result text block to the system clipboard.
// Callers decide how to degrade when no clipboard is available.
func CopyToClipboard(result *core.Result) error {
	if err := clipboardWriteAll(FormatClipboard(result)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
