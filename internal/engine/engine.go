// Package engine turns model elements into length records.
// It owns the per-element pipeline: resolve a length parameter, format
// the raw feet value in the requested unit, and accumulate the run
// summary. The engine performs no I/O; hosts load elements and the CLI
// renders results.
package engine

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// ErrNoSelection is returned by Calculate when no elements were given.
// Callers should treat it as a prompt to select elements, not as a
// failed run.
var ErrNoSelection = errors.New("no elements selected")

const (
	// unknownName labels elements whose name cannot be read.
	unknownName = "Unknown"
	// sizeParamName is the instance parameter consulted for the Size column.
	sizeParamName = "Size"
)

// Engine orchestrates length extraction over a set of elements.
type Engine struct {
	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Calculate resolves a length for every element and returns one record
// per element, in input order. An empty selection returns ErrNoSelection
// so callers can tell "nothing chosen" apart from "nothing had a length".
func (e *Engine) Calculate(elements []core.Element, unit core.Unit) (*core.Result, error) {
	if len(elements) == 0 {
		return nil, ErrNoSelection
	}

	e.logger.Debug("calculating lengths", "elements", len(elements), "unit", unit.Symbol())

	records := make([]core.LengthRecord, 0, len(elements))
	withLength := 0
	totalFeet := 0.0

	for _, el := range elements {
		rec := core.LengthRecord{
			ElementName: displayName(el),
			Size:        sizeOf(el),
		}

		if res, ok := core.ResolveLength(el); ok {
			rec.HasLength = true
			rec.LengthFeet = res.Value
			rec.ParameterName = res.Parameter
			rec.Source = res.Source
			rec.LengthDisplay = core.FormatFeetIn(res.Value, unit)
			withLength++
			totalFeet += res.Value
			e.logger.Debug("resolved length",
				"element", rec.ElementName,
				"parameter", res.Parameter,
				"source", res.Source.String(),
				"feet", res.Value)
		} else {
			rec.LengthDisplay = core.NoLengthSentinel
			e.logger.Debug("no length parameter", "element", rec.ElementName)
		}

		records = append(records, rec)
	}

	displayTotal, symbol := core.ConvertFromFeet(totalFeet, unit)

	result := &core.Result{
		Records: records,
		Summary: core.Summary{
			TotalElements: len(elements),
			WithLength:    withLength,
			TotalFeet:     totalFeet,
			DisplayTotal:  displayTotal,
			UnitSymbol:    symbol,
		},
		Unit: unit,
	}

	e.logger.Info("calculation complete",
		"elements", result.Summary.TotalElements,
		"with_length", result.Summary.WithLength,
		"total_feet", result.Summary.TotalFeet)

	return result, nil
}

// DisplayName returns the label a record would carry for the element.
// Selection filters match against it so that what the user sees is what
// the filter tests.
func DisplayName(el core.Element) string {
	return displayName(el)
}

// displayName builds the label shown for an element. Family elements
// render as "<Family> : <Name>"; an unreadable or empty name falls
// back to "Unknown".
func displayName(el core.Element) string {
	name, err := el.Name()
	if err != nil || name == "" {
		return unknownName
	}
	if family, ok := el.Family(); ok && family != "" {
		return family + " : " + name
	}
	return name
}

// sizeOf returns the text of the element's first Size parameter, or ""
// when the parameter is absent or unset. Numeric sizes render without
// trailing zeros.
func sizeOf(el core.Element) string {
	for _, p := range el.Parameters() {
		if p.Name() != sizeParamName {
			continue
		}
		switch p.Kind() {
		case core.StorageText:
			if s, ok := p.Text(); ok {
				return s
			}
		case core.StorageNumeric:
			if v, ok := p.Numeric(); ok {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		case core.StorageInteger:
			if n, ok := p.Integer(); ok {
				return strconv.FormatInt(n, 10)
			}
		}
		return ""
	}
	return ""
}
