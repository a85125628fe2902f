// Package schedule provides a host provider for tabular schedule
// exports (CSV or TSV).
//
// This file registers the schedule provider with the host registry.
// Import this package with a blank identifier to register the provider:
//
//	import _ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/schedule"
package schedule

import (
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func init() {
	host.Register("schedule", func(logger *slog.Logger) host.Provider { return New(logger) })
}
