package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   host.Config
		expected string
	}{
		{
			name: "basic connection",
			config: host.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "models",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=models sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: host.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "models",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=models sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: host.Config{
				Database: "models",
			},
			expected: "host=localhost port=5432 dbname=models sslmode=disable",
		},
		{
			name: "custom port",
			config: host.Config{
				Host:     "db.example.com",
				Port:     5433,
				Database: "plant4",
				Username: "viewer",
			},
			expected: "host=db.example.com port=5433 dbname=plant4 sslmode=disable user=viewer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildPostgresDSN(tt.config)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestNew(t *testing.T) {
	p := New(nil)

	assert.NotNil(t, p, "New() should return non-nil provider")
	assert.Nil(t, p.DB, "DB should be nil before Connect")
	assert.False(t, p.IsConnected(), "should not be connected initially")

	// Verify interface compliance
	var _ host.Provider = (*Provider)(nil)
	var _ host.Provider = p
}

func TestProvider_LoadWithoutConnect(t *testing.T) {
	p := New(nil)

	_, err := p.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestProvider_Registry(t *testing.T) {
	assert.True(t, host.IsRegistered("postgres"), "postgres provider should be registered")

	factory, ok := host.Get("postgres")
	require.True(t, ok, "should be able to get postgres factory")

	prov := factory(nil)
	assert.NotNil(t, prov)

	pg, ok := prov.(*Provider)
	assert.True(t, ok, "factory should return *Provider")
	assert.NotNil(t, pg)
}

func TestProvider_Close(t *testing.T) {
	// Close should not error even without connection
	p := New(nil)
	assert.NoError(t, p.Close())
}
