package core

// LengthRecord is the per-element outcome of a calculation run.
// It is owned by the caller after return; nothing inside the core
// retains or mutates it.
//
// Invariant: HasLength, a non-empty ParameterName, and a Source other
// than SourceNone are all set together or not at all. LengthDisplay is
// always populated; for unresolved elements it carries NoLengthSentinel.
type LengthRecord struct {
	// ElementName is the display name, "<Family> : <Name>" for typed
	// elements, or "Unknown" when the name could not be read.
	ElementName string `json:"element_name"`
	// Size is the element's free-text "Size" parameter, empty if absent.
	Size string `json:"size,omitempty"`
	// LengthFeet is the resolved length in feet. Only meaningful when
	// HasLength is true.
	LengthFeet float64 `json:"length_feet"`
	// HasLength reports whether a length was resolved for the element.
	HasLength bool `json:"has_length"`
	// LengthDisplay is the formatted length in the active display unit,
	// or NoLengthSentinel when HasLength is false.
	LengthDisplay string `json:"length_display"`
	// ParameterName names the parameter that supplied the value.
	ParameterName string `json:"parameter_name,omitempty"`
	// Source is where the parameter was found.
	Source Source `json:"source,omitempty"`
}

// Summary aggregates one calculation run. It is recomputed fully on
// every run, never updated incrementally.
type Summary struct {
	// TotalElements is the number of input elements.
	TotalElements int `json:"total_elements"`
	// WithLength is the number of elements with a resolved length.
	WithLength int `json:"with_length"`
	// TotalFeet is the sum of resolved lengths in feet.
	TotalFeet float64 `json:"total_feet"`
	// DisplayTotal is TotalFeet converted to the display unit.
	DisplayTotal float64 `json:"display_total"`
	// UnitSymbol is the display unit's symbol.
	UnitSymbol string `json:"unit_symbol"`
}

// Result is a complete calculation: ordered records plus the summary.
// Records preserve the input element order and cardinality.
type Result struct {
	Records []LengthRecord `json:"records"`
	Summary Summary        `json:"summary"`
	// Unit is the display unit the run was formatted in.
	Unit Unit `json:"-"`
}
