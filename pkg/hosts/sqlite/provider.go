// Package sqlite provides a SQLite host provider for exported model
// databases.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"

	_ "modernc.org/sqlite" // sqlite driver
)

// Provider implements the host.Provider interface for SQLite exports.
type Provider struct {
	host.BaseDBProvider
}

// New creates a new SQLite provider instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		BaseDBProvider: host.BaseDBProvider{Logger: logger},
	}
}

// Connect opens the exported model database.
func (p *Provider) Connect(ctx context.Context, cfg host.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.DSN
	}
	if path == "" {
		return fmt.Errorf("sqlite host requires a path")
	}

	p.Logger.Debug("opening sqlite model", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
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
