// Package postgres provides a PostgreSQL host provider for model
// databases kept in sync by a DB-link style exporter.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// Provider implements the host.Provider interface for PostgreSQL.
type Provider struct {
	host.BaseDBProvider
}

// New creates a new PostgreSQL provider instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		BaseDBProvider: host.BaseDBProvider{Logger: logger},
	}
}

// Connect establishes a connection to PostgreSQL.
func (p *Provider) Connect(ctx context.Context, cfg host.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildPostgresDSN(cfg)
	}

	p.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	p.DB = db
	p.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg host.Config) string {
	// Build key=value format: host=localhost port=5432 dbname=models ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Load reads a fresh element snapshot from the database.
func (p *Provider) Load(ctx context.Context) (*host.Model, error) {
	return p.LoadModel(ctx)
}

// Ensure Provider implements host.Provider interface
var _ host.Provider = (*Provider)(nil)
