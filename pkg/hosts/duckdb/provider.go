// Package duckdb provides a DuckDB host provider for exported model
// databases.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Provider implements the host.Provider interface for DuckDB exports.
type Provider struct {
	host.BaseDBProvider
}

// New creates a new DuckDB provider instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		BaseDBProvider: host.BaseDBProvider{Logger: logger},
	}
}

// Connect opens the exported model database. An in-memory database
// would have no tables to read, so a path is required.
func (p *Provider) Connect(ctx context.Context, cfg host.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.DSN
	}
	if path == "" {
		return fmt.Errorf("duckdb host requires a path")
	}

	p.Logger.Debug("opening duckdb model", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	p.DB = db
	p.Cfg = cfg
	return nil
}

// Load reads a fresh element snapshot from the database.
func (p *Provider) Load(ctx context.Context) (*host.Model, error) {
	return p.LoadModel(ctx)
}

// Ensure Provider implements host.Provider interface
var _ host.Provider = (*Provider)(nil)
