// Package duckdb provides a DuckDB host provider for exported model
// databases.
//
// This file registers the DuckDB provider with the host registry.
// Import this package with a blank identifier to register the provider:
//
//	import _ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func init() {
	host.Register("duckdb", func(logger *slog.Logger) host.Provider { return New(logger) })
}
