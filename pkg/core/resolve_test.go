package core_test

import (
	"testing"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// stubType is a minimal ElementType for resolver tests.
type stubType struct {
	params []core.Parameter
}

func (t stubType) Parameters() []core.Parameter { return t.params }

// stubElement is a minimal Element for resolver tests. The resolver
// never reads names, so those accessors return fixed values.
type stubElement struct {
	params []core.Parameter
	typ    core.ElementType
}

func (e stubElement) Name() (string, error)        { return "element", nil }
func (e stubElement) Family() (string, bool)       { return "", false }
func (e stubElement) Parameters() []core.Parameter { return e.params }

func (e stubElement) Type() (core.ElementType, bool) {
	if e.typ == nil {
		return nil, false
	}
	return e.typ, true
}

func TestResolveLength_SearchOrder(t *testing.T) {
	tests := []struct {
		name       string
		instance   []core.Parameter
		typeParams []core.Parameter
		noType     bool
		wantOK     bool
		wantValue  float64
		wantParam  string
		wantSource core.Source
	}{
		{
			name: "exact instance Length wins",
			instance: []core.Parameter{
				core.NewNumericParameter("Width", 2.0),
				core.NewNumericParameter("Length", 12.0),
				core.NewNumericParameter("Overall Length", 99.0),
			},
			wantOK:     true,
			wantValue:  12.0,
			wantParam:  "Length",
			wantSource: core.SourceInstance,
		},
		{
			name: "substring instance match when no exact name",
			instance: []core.Parameter{
				core.NewNumericParameter("Width", 2.0),
				core.NewNumericParameter("Overall Length", 10.5),
			},
			wantOK:     true,
			wantValue:  10.5,
			wantParam:  "Overall Length",
			wantSource: core.SourceInstance,
		},
		{
			name: "substring match is case-insensitive",
			instance: []core.Parameter{
				core.NewNumericParameter("LENGTH TO WALL", 4.0),
			},
			wantOK:     true,
			wantValue:  4.0,
			wantParam:  "LENGTH TO WALL",
			wantSource: core.SourceInstance,
		},
		{
			name: "first substring match in enumeration order wins",
			instance: []core.Parameter{
				core.NewNumericParameter("Cable Length", 3.0),
				core.NewNumericParameter("Developed Length", 8.0),
			},
			wantOK:     true,
			wantValue:  3.0,
			wantParam:  "Cable Length",
			wantSource: core.SourceInstance,
		},
		{
			name:     "type Length when nothing on the instance",
			instance: []core.Parameter{core.NewNumericParameter("Width", 2.0)},
			typeParams: []core.Parameter{
				core.NewNumericParameter("Length", 7.0),
			},
			wantOK:     true,
			wantValue:  7.0,
			wantParam:  "Length",
			wantSource: core.SourceType,
		},
		{
			name:     "type substring fallback",
			instance: nil,
			typeParams: []core.Parameter{
				core.NewNumericParameter("Height", 1.0),
				core.NewNumericParameter("Default Length", 2.5),
			},
			wantOK:     true,
			wantValue:  2.5,
			wantParam:  "Default Length",
			wantSource: core.SourceType,
		},
		{
			name: "instance beats type",
			instance: []core.Parameter{
				core.NewNumericParameter("Pipe Length", 6.0),
			},
			typeParams: []core.Parameter{
				core.NewNumericParameter("Length", 7.0),
			},
			wantOK:     true,
			wantValue:  6.0,
			wantParam:  "Pipe Length",
			wantSource: core.SourceInstance,
		},
		{
			name: "unextractable exact match does not stop the search",
			instance: []core.Parameter{
				core.NewTextParameter("Length", "N/A"),
				core.NewNumericParameter("Pipe Length", 3.0),
			},
			wantOK:     true,
			wantValue:  3.0,
			wantParam:  "Pipe Length",
			wantSource: core.SourceInstance,
		},
		{
			name: "unset exact match falls through to the type",
			instance: []core.Parameter{
				core.NewEmptyParameter("Length", core.StorageNumeric),
			},
			typeParams: []core.Parameter{
				core.NewNumericParameter("Length", 7.0),
			},
			wantOK:     true,
			wantValue:  7.0,
			wantParam:  "Length",
			wantSource: core.SourceType,
		},
		{
			name: "unextractable substring match skipped for a later one",
			instance: []core.Parameter{
				core.NewTextParameter("Length Note", "see drawing"),
				core.NewIntegerParameter("Run Length", 9),
			},
			wantOK:     true,
			wantValue:  9.0,
			wantParam:  "Run Length",
			wantSource: core.SourceInstance,
		},
		{
			name:       "text parameter extracts through the resolver",
			instance:   []core.Parameter{core.NewTextParameter("Length", "Length: 3,5 m")},
			wantOK:     true,
			wantValue:  3.5,
			wantParam:  "Length",
			wantSource: core.SourceInstance,
		},
		{
			name:     "no matching parameter anywhere",
			instance: []core.Parameter{core.NewNumericParameter("Width", 2.0)},
			typeParams: []core.Parameter{
				core.NewNumericParameter("Height", 1.0),
			},
			wantOK: false,
		},
		{
			name:     "no parameters and no type",
			instance: nil,
			noType:   true,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := stubElement{params: tt.instance}
			if !tt.noType {
				el.typ = stubType{params: tt.typeParams}
			}

			res, ok := core.ResolveLength(el)
			if ok != tt.wantOK {
				t.Fatalf("ResolveLength() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if res.Parameter != "" || res.Source != core.SourceNone {
					t.Errorf("ResolveLength() returned non-zero resolution on miss: %+v", res)
				}
				return
			}
			if res.Value != tt.wantValue {
				t.Errorf("ResolveLength() value = %v, want %v", res.Value, tt.wantValue)
			}
			if res.Parameter != tt.wantParam {
				t.Errorf("ResolveLength() parameter = %q, want %q", res.Parameter, tt.wantParam)
			}
			if res.Source != tt.wantSource {
				t.Errorf("ResolveLength() source = %v, want %v", res.Source, tt.wantSource)
			}
		})
	}
}

// observedType records whether its parameters were ever enumerated.
type observedType struct {
	consulted *bool
}

func (t observedType) Parameters() []core.Parameter {
	*t.consulted = true
	return nil
}

// The type's parameters are read lazily: an instance hit must resolve
// without touching the type at all.
func TestResolveLength_TypeNotConsultedOnInstanceHit(t *testing.T) {
	var consulted bool
	el := stubElement{
		params: []core.Parameter{core.NewNumericParameter("Length", 1.0)},
		typ:    observedType{consulted: &consulted},
	}

	res, ok := core.ResolveLength(el)
	if !ok {
		t.Fatal("ResolveLength() ok = false, want true")
	}
	if res.Source != core.SourceInstance {
		t.Errorf("ResolveLength() source = %v, want %v", res.Source, core.SourceInstance)
	}
	if consulted {
		t.Error("type parameters were enumerated despite an instance hit")
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source core.Source
		want   string
	}{
		{core.SourceInstance, "Instance"},
		{core.SourceType, "Type"},
		{core.SourceNone, ""},
	}

	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", int(tt.source), got, tt.want)
		}
	}
}
