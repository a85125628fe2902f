// Package schedule provides a host provider for tabular schedule
// exports (CSV or TSV).
//
// Schedule exports carry no storage kinds: every column becomes a text
// parameter on every row's element, and the length resolution policy
// digs the numbers out of the text. Exports from Windows hosts are
// frequently UTF-16 with a BOM, so the provider sniffs the BOM before
// parsing and accepts an explicit encoding override.
package schedule

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// nameColumnCandidates are tried in order when no name column is
// configured; the first header present wins, else column 0 is used.
var nameColumnCandidates = []string{"Family and Type", "Name", "Mark", "Type Mark"}

// Provider implements the host.Provider interface for schedule exports.
type Provider struct {
	path   string
	cfg    host.Config
	logger *slog.Logger
}

// New creates a new schedule provider instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{logger: logger}
}

// Connect checks that the schedule file exists and remembers its path.
func (p *Provider) Connect(ctx context.Context, cfg host.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("schedule host requires a path")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return fmt.Errorf("failed to stat schedule file: %w", err)
	}

	p.path = cfg.Path
	p.cfg = cfg
	return nil
}

// Load re-reads and parses the schedule file.
func (p *Provider) Load(ctx context.Context) (*host.Model, error) {
	if p.path == "" {
		return nil, fmt.Errorf("schedule file not configured")
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoded, err := decodingReader(f, p.cfg.Encoding)
	if err != nil {
		return nil, err
	}

	content, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schedule file: %w", err)
	}

	return p.parse(string(content))
}

// Close releases nothing; the file is re-read on every Load.
func (p *Provider) Close() error { return nil }

// parse turns decoded schedule text into a model snapshot.
func (p *Provider) parse(content string) (*host.Model, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("schedule file is empty")
	}

	delim := parseDelimiter(p.cfg.Delimiter)
	if delim == 0 {
		delim = sniffDelimiter(firstLine(content))
		p.logger.Debug("sniffed schedule delimiter", slog.String("delimiter", string(delim)))
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("schedule file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	nameIdx, err := resolveNameColumn(headers, p.cfg.NameColumn)
	if err != nil {
		return nil, err
	}

	model := &host.Model{
		ProjectName: strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path)),
	}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		el := &host.ModelElement{ElementName: cellAt(row, nameIdx)}
		for i, header := range headers {
			if header == "" {
				continue
			}
			if value := cellAt(row, i); value != "" {
				el.Params = append(el.Params, core.NewTextParameter(header, value))
			} else {
				el.Params = append(el.Params, core.NewEmptyParameter(header, core.StorageText))
			}
		}
		model.Elements = append(model.Elements, el)
	}

	return model, nil
}

// decodingReader wraps the raw file in the configured character
// decoder. Without an explicit encoding the BOM decides, and BOM-less
// input is assumed to be UTF-8.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())), nil
	case "utf-8", "utf8":
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case "utf-16le", "utf16le":
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case "utf-16be", "utf16be":
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported schedule encoding %q", name)
	}
}

// parseDelimiter maps the configured delimiter to a rune, 0 meaning
// "sniff it".
func parseDelimiter(s string) rune {
	switch s {
	case "":
		return 0
	case "tab", "\\t", "\t":
		return '\t'
	default:
		return []rune(s)[0]
	}
}

// sniffDelimiter picks the most frequent candidate delimiter in the
// header line. Ties keep the earlier candidate; no hits default to a
// comma.
func sniffDelimiter(line string) rune {
	best := ','
	bestCount := 0
	for _, d := range []rune{'\t', ';', ','} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// resolveNameColumn returns the index of the element-name column. An
// explicitly configured column must exist; otherwise the well-known
// candidates are tried before falling back to the first column.
func resolveNameColumn(headers []string, configured string) (int, error) {
	if configured != "" {
		for i, h := range headers {
			if strings.EqualFold(h, configured) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("schedule has no column named %q", configured)
	}

	for _, candidate := range nameColumnCandidates {
		for i, h := range headers {
			if strings.EqualFold(h, candidate) {
				return i, nil
			}
		}
	}
	return 0, nil
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Ensure Provider implements host.Provider interface
var _ host.Provider = (*Provider)(nil)
