// Package host provides the host provider interface and shared
// infrastructure for loading element models.
//
// A host provider stands in for the CAD application that owns the
// elements: it connects to a source (an exported model file, a schedule
// export, or a model database), loads a read-only snapshot of the
// elements with their parameters, and reports the project's display
// unit when the source carries one. Concrete providers live in
// pkg/hosts/ subdirectories and register themselves via init().
package host

import (
	"context"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// Config holds configuration for connecting to a host source.
type Config struct {
	// Type selects the registered provider ("modelfile", "schedule",
	// "sqlite", "duckdb", "postgres").
	Type string
	// Path is the file path for file-backed sources.
	Path string
	// DSN is the full connection string for database-backed sources.
	// When set it takes precedence over the individual fields below.
	DSN string
	// Host, Port, Database, Username and Password describe a server
	// connection for providers that build their own DSN.
	Host     string
	Port     int
	Database string
	Username string
	Password string
	// Encoding overrides input encoding detection for schedule exports
	// ("utf-8", "utf-16le", "utf-16be", "windows-1252").
	Encoding string
	// Delimiter overrides delimiter sniffing for schedule exports.
	Delimiter string
	// NameColumn overrides the element-name column for schedule exports.
	NameColumn string
	// Options carries provider-specific settings.
	Options map[string]string
}

// Provider defines the interface that all host providers must implement.
// Providers are single-use per connection: Connect, then Load one or
// more times, then Close.
type Provider interface {
	// Connect prepares the provider to load from the configured source.
	Connect(ctx context.Context, cfg Config) error

	// Load reads a fresh snapshot of the model. Each call re-reads the
	// source; results from earlier calls stay valid.
	Load(ctx context.Context) (*Model, error)

	// Close releases the provider's resources.
	Close() error
}

// Model is a loaded snapshot of one project.
type Model struct {
	// ProjectName is the project title, empty when the source has none.
	ProjectName string
	// Unit is the project's configured display unit.
	// Only meaningful when HasUnit is true.
	Unit core.Unit
	// HasUnit reports whether the source declared a display unit.
	HasUnit bool
	// Elements are the model elements in source order.
	Elements []core.Element
}
