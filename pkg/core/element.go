package core

import "strings"

// StorageKind identifies how a parameter stores its value.
// It is a closed tagged variant: resolution code switches on the kind
// instead of inspecting runtime types.
type StorageKind int

// Storage kinds for parameters.
const (
	// StorageUnsupported marks kinds the calculator cannot extract from.
	StorageUnsupported StorageKind = iota
	// StorageNumeric holds a floating-point value in internal units (feet).
	StorageNumeric
	// StorageInteger holds a whole number.
	StorageInteger
	// StorageText holds free-form text that may embed a number.
	StorageText
)

// String returns the string representation of the storage kind.
func (k StorageKind) String() string {
	switch k {
	case StorageNumeric:
		return "numeric"
	case StorageInteger:
		return "integer"
	case StorageText:
		return "text"
	default:
		return "unsupported"
	}
}

// ParseStorageKind converts a string to a StorageKind.
// Unknown strings map to StorageUnsupported, which extraction treats
// as "no value" rather than an error.
func ParseStorageKind(s string) StorageKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "double":
		return StorageNumeric
	case "integer", "int":
		return StorageInteger
	case "text", "string":
		return StorageText
	default:
		return StorageUnsupported
	}
}

// Parameter is a single named value attached to an element or its type.
// Parameters are read-only snapshots; a parameter may carry no value at
// all ("no value set" in the host application). Accessors return ok=false
// on kind mismatch or when no value is set, so every lookup failure is an
// explicit result instead of a panic or a swallowed exception.
type Parameter struct {
	name     string
	kind     StorageKind
	hasValue bool
	numeric  float64
	integer  int64
	text     string
}

// NewNumericParameter returns a numeric parameter with a value set.
func NewNumericParameter(name string, value float64) Parameter {
	return Parameter{name: name, kind: StorageNumeric, hasValue: true, numeric: value}
}

// NewIntegerParameter returns an integer parameter with a value set.
func NewIntegerParameter(name string, value int64) Parameter {
	return Parameter{name: name, kind: StorageInteger, hasValue: true, integer: value}
}

// NewTextParameter returns a text parameter with a value set.
func NewTextParameter(name, value string) Parameter {
	return Parameter{name: name, kind: StorageText, hasValue: true, text: value}
}

// NewEmptyParameter returns a parameter of the given kind with no value set.
func NewEmptyParameter(name string, kind StorageKind) Parameter {
	return Parameter{name: name, kind: kind}
}

// Name returns the parameter name.
func (p Parameter) Name() string { return p.name }

// Kind returns the storage kind.
func (p Parameter) Kind() StorageKind { return p.kind }

// HasValue reports whether a value is set.
func (p Parameter) HasValue() bool { return p.hasValue }

// Numeric returns the numeric value. ok is false if the parameter is not
// numeric storage or has no value set.
func (p Parameter) Numeric() (float64, bool) {
	if p.kind != StorageNumeric || !p.hasValue {
		return 0, false
	}
	return p.numeric, true
}

// Integer returns the integer value. ok is false if the parameter is not
// integer storage or has no value set.
func (p Parameter) Integer() (int64, bool) {
	if p.kind != StorageInteger || !p.hasValue {
		return 0, false
	}
	return p.integer, true
}

// Text returns the text value. ok is false if the parameter is not text
// storage or has no value set.
func (p Parameter) Text() (string, bool) {
	if p.kind != StorageText || !p.hasValue {
		return "", false
	}
	return p.text, true
}

// Element is one occurrence in the host model. Implementations are
// supplied by host providers and are read-only; the core only reads.
//
// Parameters() returns the element's own (instance) parameters in the
// host's natural enumeration order; the resolution policy depends on
// that order being stable.
type Element interface {
	// Name returns the element's own name. An error means the name could
	// not be read; callers degrade to a fallback display name.
	Name() (string, error)

	// Family returns the family name for elements that are instances of a
	// family type. ok is false for elements without one.
	Family() (string, bool)

	// Parameters returns the instance parameters in natural order.
	Parameters() []Parameter

	// Type returns the element's shared type for fallback lookups.
	// ok is false when the element has no type or the lookup failed;
	// both degrade the same way.
	Type() (ElementType, bool)
}

// ElementType is the shared type/family an element may reference.
// Type parameters act as fallbacks when no instance value exists.
type ElementType interface {
	// Parameters returns the type parameters in natural order.
	Parameters() []Parameter
}
