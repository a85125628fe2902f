// Package engine provides tests for the length calculation engine.
package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/testutil"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// failingElement simulates a host element whose name accessor fails.
type failingElement struct {
	family string
	params []core.Parameter
}

func (f failingElement) Name() (string, error)          { return "", errors.New("element invalid") }
func (f failingElement) Family() (string, bool)         { return f.family, f.family != "" }
func (f failingElement) Parameters() []core.Parameter   { return f.params }
func (f failingElement) Type() (core.ElementType, bool) { return nil, false }

// modelElements builds the canonical three-element fixture: one element
// with an instance length, one with no length at all, and one whose
// length lives on its type.
func modelElements() []core.Element {
	typ := &host.ModelType{
		Name:   "DN80",
		Family: "Pipe Types",
		Params: []core.Parameter{core.NewNumericParameter("Length", 5.5)},
	}
	return []core.Element{
		&host.ModelElement{
			ElementName: "Pipe A",
			FamilyName:  "Pipe Types",
			Params: []core.Parameter{
				core.NewNumericParameter("Length", 12.0),
				core.NewTextParameter("Size", "DN50"),
			},
		},
		&host.ModelElement{
			ElementName: "Bracket",
			Params:      []core.Parameter{core.NewTextParameter("Comments", "N/A")},
		},
		&host.ModelElement{
			ElementName: "Pipe C",
			Params:      []core.Parameter{core.NewTextParameter("Size", "DN80")},
			ElementType: typ,
		},
	}
}

func TestCalculate(t *testing.T) {
	eng := New(Config{Logger: testutil.NewTestLogger(t)})

	result, err := eng.Calculate(modelElements(), core.UnitMillimeters)
	if err != nil {
		t.Fatalf("Calculate() failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(result.Records))
	}

	a := result.Records[0]
	if a.ElementName != "Pipe Types : Pipe A" {
		t.Errorf("record A name = %q, want %q", a.ElementName, "Pipe Types : Pipe A")
	}
	if a.Size != "DN50" {
		t.Errorf("record A size = %q, want %q", a.Size, "DN50")
	}
	if !a.HasLength {
		t.Error("record A should have a length")
	}
	if a.LengthFeet != 12.0 {
		t.Errorf("record A feet = %v, want 12.0", a.LengthFeet)
	}
	if a.ParameterName != "Length" {
		t.Errorf("record A parameter = %q, want %q", a.ParameterName, "Length")
	}
	if a.Source != core.SourceInstance {
		t.Errorf("record A source = %v, want SourceInstance", a.Source)
	}
	if a.LengthDisplay != "3657.6000 mm" {
		t.Errorf("record A display = %q, want %q", a.LengthDisplay, "3657.6000 mm")
	}

	b := result.Records[1]
	if b.ElementName != "Bracket" {
		t.Errorf("record B name = %q, want %q", b.ElementName, "Bracket")
	}
	if b.HasLength {
		t.Error("record B should not have a length")
	}
	if b.LengthDisplay != core.NoLengthSentinel {
		t.Errorf("record B display = %q, want %q", b.LengthDisplay, core.NoLengthSentinel)
	}
	if b.ParameterName != "" {
		t.Errorf("record B parameter = %q, want empty", b.ParameterName)
	}

	c := result.Records[2]
	if c.ElementName != "Pipe Types : Pipe C" {
		t.Errorf("record C name = %q, want %q", c.ElementName, "Pipe Types : Pipe C")
	}
	if !c.HasLength {
		t.Error("record C should have a length")
	}
	if c.Source != core.SourceType {
		t.Errorf("record C source = %v, want SourceType", c.Source)
	}
	if c.LengthDisplay != "1676.4000 mm" {
		t.Errorf("record C display = %q, want %q", c.LengthDisplay, "1676.4000 mm")
	}

	s := result.Summary
	if s.TotalElements != 3 {
		t.Errorf("TotalElements = %d, want 3", s.TotalElements)
	}
	if s.WithLength != 2 {
		t.Errorf("WithLength = %d, want 2", s.WithLength)
	}
	if math.Abs(s.TotalFeet-17.5) > 1e-9 {
		t.Errorf("TotalFeet = %v, want 17.5", s.TotalFeet)
	}
	if math.Abs(s.DisplayTotal-5334.0) > 1e-9 {
		t.Errorf("DisplayTotal = %v, want 5334.0", s.DisplayTotal)
	}
	if s.UnitSymbol != "mm" {
		t.Errorf("UnitSymbol = %q, want %q", s.UnitSymbol, "mm")
	}
	if result.Unit != core.UnitMillimeters {
		t.Errorf("Unit = %v, want UnitMillimeters", result.Unit)
	}
}

func TestCalculate_EmptySelection(t *testing.T) {
	eng := New(Config{})

	result, err := eng.Calculate([]core.Element{}, core.UnitFeet)
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("Calculate() error = %v, want ErrNoSelection", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}

	result, err = eng.Calculate(nil, core.UnitFeet)
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("Calculate(nil) error = %v, want ErrNoSelection", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
}

func TestCalculate_RecordOrder(t *testing.T) {
	elements := []core.Element{
		&host.ModelElement{ElementName: "Third"},
		&host.ModelElement{
			ElementName: "First",
			Params:      []core.Parameter{core.NewNumericParameter("Length", 1.0)},
		},
		&host.ModelElement{ElementName: "Second"},
	}

	eng := New(Config{})
	result, err := eng.Calculate(elements, core.UnitFeet)
	if err != nil {
		t.Fatalf("Calculate() failed: %v", err)
	}

	want := []string{"Third", "First", "Second"}
	for i, name := range want {
		if result.Records[i].ElementName != name {
			t.Errorf("Records[%d].ElementName = %q, want %q", i, result.Records[i].ElementName, name)
		}
	}
}

func TestCalculate_UnreadableName(t *testing.T) {
	elements := []core.Element{
		failingElement{
			params: []core.Parameter{core.NewNumericParameter("Length", 2.5)},
		},
	}

	eng := New(Config{})
	result, err := eng.Calculate(elements, core.UnitFeet)
	if err != nil {
		t.Fatalf("Calculate() failed: %v", err)
	}

	rec := result.Records[0]
	if rec.ElementName != unknownName {
		t.Errorf("ElementName = %q, want %q", rec.ElementName, unknownName)
	}
	if !rec.HasLength {
		t.Error("length resolution should survive a failing name accessor")
	}
	if result.Summary.WithLength != 1 {
		t.Errorf("WithLength = %d, want 1", result.Summary.WithLength)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		element core.Element
		want    string
	}{
		{
			name:    "family and name",
			element: &host.ModelElement{ElementName: "Pipe A", FamilyName: "Pipe Types"},
			want:    "Pipe Types : Pipe A",
		},
		{
			name:    "name only",
			element: &host.ModelElement{ElementName: "Wall 12"},
			want:    "Wall 12",
		},
		{
			name:    "empty name",
			element: &host.ModelElement{FamilyName: "Pipe Types"},
			want:    "Unknown",
		},
		{
			name:    "failing name accessor",
			element: failingElement{},
			want:    "Unknown",
		},
		{
			name:    "failing name accessor with family",
			element: failingElement{family: "Ducts"},
			want:    "Unknown",
		},
		{
			name: "family from type",
			element: &host.ModelElement{
				ElementName: "Pipe C",
				ElementType: &host.ModelType{Name: "DN80", Family: "Pipe Types"},
			},
			want: "Pipe Types : Pipe C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.element); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		name   string
		params []core.Parameter
		want   string
	}{
		{
			name:   "text size",
			params: []core.Parameter{core.NewTextParameter("Size", "DN50")},
			want:   "DN50",
		},
		{
			name:   "numeric size",
			params: []core.Parameter{core.NewNumericParameter("Size", 4.25)},
			want:   "4.25",
		},
		{
			name:   "whole numeric size drops trailing zeros",
			params: []core.Parameter{core.NewNumericParameter("Size", 4.0)},
			want:   "4",
		},
		{
			name:   "integer size",
			params: []core.Parameter{core.NewIntegerParameter("Size", 100)},
			want:   "100",
		},
		{
			name:   "unset size",
			params: []core.Parameter{core.NewEmptyParameter("Size", core.StorageText)},
			want:   "",
		},
		{
			name:   "no size parameter",
			params: []core.Parameter{core.NewTextParameter("Comments", "DN50")},
			want:   "",
		},
		{
			name: "first size parameter wins",
			params: []core.Parameter{
				core.NewEmptyParameter("Size", core.StorageText),
				core.NewTextParameter("Size", "DN80"),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &host.ModelElement{ElementName: "el", Params: tt.params}
			if got := sizeOf(el); got != tt.want {
				t.Errorf("sizeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
