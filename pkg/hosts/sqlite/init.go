// Package sqlite provides a SQLite host provider for exported model
// databases.
//
// This file registers the SQLite provider with the host registry.
// Import this package with a blank identifier to register the provider:
//
//	import _ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func init() {
	host.Register("sqlite", func(logger *slog.Logger) host.Provider { return New(logger) })
}
