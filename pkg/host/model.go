package host

import "github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"

// ModelType is the shared type referenced by one or more elements.
type ModelType struct {
	// Name is the type name.
	Name string
	// Family is the family the type belongs to, if any.
	Family string
	// Params are the type parameters in source order.
	Params []core.Parameter
}

// Parameters returns the type parameters in source order.
func (t *ModelType) Parameters() []core.Parameter { return t.Params }

// ModelElement is one element in a loaded snapshot.
type ModelElement struct {
	// ElementName is the element's own name.
	ElementName string
	// FamilyName is the element-level family, if the source carries one.
	FamilyName string
	// Params are the instance parameters in source order.
	Params []core.Parameter
	// ElementType is the element's shared type, nil when untyped.
	ElementType *ModelType
}

// Name returns the element name. Snapshot-backed elements never fail
// the read; the error return satisfies the element contract for hosts
// that resolve names lazily.
func (e *ModelElement) Name() (string, error) { return e.ElementName, nil }

// Family returns the family name, preferring the element-level value
// and falling back to the type's family.
func (e *ModelElement) Family() (string, bool) {
	if e.FamilyName != "" {
		return e.FamilyName, true
	}
	if e.ElementType != nil && e.ElementType.Family != "" {
		return e.ElementType.Family, true
	}
	return "", false
}

// Parameters returns the instance parameters in source order.
func (e *ModelElement) Parameters() []core.Parameter { return e.Params }

// Type returns the element's shared type, ok=false when untyped.
func (e *ModelElement) Type() (core.ElementType, bool) {
	if e.ElementType == nil {
		return nil, false
	}
	return e.ElementType, true
}

// Ensure the snapshot types satisfy the core element contracts
var (
	_ core.Element     = (*ModelElement)(nil)
	_ core.ElementType = (*ModelType)(nil)
)
