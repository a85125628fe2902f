// Package core defines the shared language of the LengthCalculator system.
//
// This package contains:
//   - The read-only element model supplied by host providers
//     (Element, ElementType, Parameter, StorageKind)
//   - The length resolution policy (ResolveLength, ExtractValue)
//   - Unit conversion and display formatting (Unit, ConvertFromFeet)
//   - Result types owned by callers (LengthRecord, Summary, Result)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
