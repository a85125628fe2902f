package core

import (
	"encoding/json"
	"strings"
)

// canonicalLengthName is the preferred parameter name, tried exactly
// before any fuzzy matching.
const canonicalLengthName = "Length"

// Source identifies where a resolved length value was found.
type Source int

const (
	// SourceNone means no length was resolved for the element.
	SourceNone Source = iota
	// SourceInstance means the value came from the element's own parameters.
	SourceInstance
	// SourceType means the value came from the element's type parameters.
	SourceType
)

// String returns the display form of the source. SourceNone renders as
// an empty string so absent sources leave blank table cells.
func (s Source) String() string {
	switch s {
	case SourceInstance:
		return "Instance"
	case SourceType:
		return "Type"
	default:
		return ""
	}
}

// MarshalJSON renders the source as its display string so JSON output
// carries the same values as the table and CSV columns.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Resolution is the outcome of a successful length lookup.
type Resolution struct {
	// Value is the resolved length in feet.
	Value float64
	// Parameter is the name of the parameter that supplied the value.
	Parameter string
	// Source is where the parameter lives.
	Source Source
}

// ResolveLength picks one length value for an element, trying progressively
// looser criteria and stopping at the first parameter whose value extracts:
//
//  1. The instance parameter named exactly "Length".
//  2. Any other instance parameter whose name contains "length"
//     (case-insensitive), scanned in enumeration order.
//  3. The type parameter named exactly "Length".
//  4. Any other type parameter whose name contains "length", same scan.
//
// A parameter that matches by name but yields no extractable value does not
// stop the search. ok is false when no step produced a value; the search
// itself never fails.
func ResolveLength(el Element) (Resolution, bool) {
	if res, ok := resolveIn(el.Parameters(), SourceInstance); ok {
		return res, true
	}
	if typ, ok := el.Type(); ok {
		if res, ok := resolveIn(typ.Parameters(), SourceType); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// resolveIn runs the exact-name pass and then the substring pass over one
// parameter list. The exact pass considers only the first parameter named
// "Length"; the substring pass skips exact matches so a parameter is never
// tried twice.
func resolveIn(params []Parameter, src Source) (Resolution, bool) {
	for _, p := range params {
		if p.Name() != canonicalLengthName {
			continue
		}
		if v, ok := ExtractValue(p); ok {
			return Resolution{Value: v, Parameter: p.Name(), Source: src}, true
		}
		break
	}
	for _, p := range params {
		if p.Name() == canonicalLengthName {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name()), "length") {
			continue
		}
		if v, ok := ExtractValue(p); ok {
			return Resolution{Value: v, Parameter: p.Name(), Source: src}, true
		}
	}
	return Resolution{}, false
}
