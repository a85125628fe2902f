package core

import (
	"fmt"
	"strings"
)

// MetersPerFoot is the fixed foot-to-meter constant. The meters/feet
// cross-reference totals always use it, independent of the active
// display unit.
const MetersPerFoot = 0.3048

// NoLengthSentinel is shown in place of a formatted length when no
// parameter could be resolved for an element.
const NoLengthSentinel = "NO LENGTH PARAM"

// Unit is a length display unit. The conversion table is closed: any
// unit outside it falls back to feet instead of failing, which keeps
// formatting total even for models configured with exotic units.
type Unit int

// Display units.
const (
	// UnitFeet is the zero value and the fallback unit. Lengths are
	// stored in feet internally, so conversion is the identity.
	UnitFeet Unit = iota
	// UnitMillimeters displays lengths in millimeters.
	UnitMillimeters
	// UnitCentimeters displays lengths in centimeters.
	UnitCentimeters
	// UnitMeters displays lengths in meters.
	UnitMeters
	// UnitInches displays lengths in inches.
	UnitInches
)

// String returns the unit symbol.
func (u Unit) String() string { return u.Symbol() }

// Symbol returns the display symbol for the unit.
func (u Unit) Symbol() string {
	switch u {
	case UnitMillimeters:
		return "mm"
	case UnitCentimeters:
		return "cm"
	case UnitMeters:
		return "m"
	case UnitInches:
		return "in"
	default:
		return "ft"
	}
}

// factor returns the multiplier converting feet into the unit.
func (u Unit) factor() float64 {
	switch u {
	case UnitMillimeters:
		return 1000 * MetersPerFoot
	case UnitCentimeters:
		return 100 * MetersPerFoot
	case UnitMeters:
		return MetersPerFoot
	case UnitInches:
		return 12
	default:
		return 1
	}
}

// ParseUnit converts a string to a Unit. Both symbols ("mm") and full
// names ("millimeters") are accepted.
// Returns the unit and true if valid, or UnitFeet and false if invalid.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimeters":
		return UnitMillimeters, true
	case "cm", "centimeter", "centimeters":
		return UnitCentimeters, true
	case "m", "meter", "meters":
		return UnitMeters, true
	case "in", "inch", "inches":
		return UnitInches, true
	case "ft", "foot", "feet":
		return UnitFeet, true
	default:
		return UnitFeet, false
	}
}

// Units returns the closed set of supported display units.
func Units() []Unit {
	return []Unit{UnitFeet, UnitMillimeters, UnitCentimeters, UnitMeters, UnitInches}
}

// ConvertFromFeet converts a value in feet into the given display unit
// and returns the converted value with its unit symbol. Unknown units
// leave the value in feet with the "ft" symbol. Never fails.
func ConvertFromFeet(feet float64, u Unit) (float64, string) {
	return feet * u.factor(), u.Symbol()
}

// FormatFeetIn converts a value in feet into the display unit and
// renders it with exactly 4 decimal digits, e.g. "5334.0000 mm".
func FormatFeetIn(feet float64, u Unit) string {
	v, sym := ConvertFromFeet(feet, u)
	return fmt.Sprintf("%.4f %s", v, sym)
}

// FormatDual renders a value in feet as the fixed meters/feet
// cross-reference with 2 decimal digits each, e.g. "5.33 m / 17.50 ft".
// It always uses MetersPerFoot regardless of the active display unit.
func FormatDual(feet float64) string {
	return fmt.Sprintf("%.2f m / %.2f ft", feet*MetersPerFoot, feet)
}
