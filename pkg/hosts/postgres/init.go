// Package postgres provides a PostgreSQL host provider for model
// databases kept in sync by a DB-link style exporter.
//
// This file registers the PostgreSQL provider with the host registry.
// Import this package with a blank identifier to register the provider:
//
//	import _ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/postgres"
package postgres

import (
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func init() {
	host.Register("postgres", func(logger *slog.Logger) host.Provider { return New(logger) })
}
