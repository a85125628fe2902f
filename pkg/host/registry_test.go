package host

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownProviderError_Error(t *testing.T) {
	err := &UnknownProviderError{
		Type:      "fake_host",
		Available: []string{"modelfile", "schedule", "sqlite"},
	}

	msg := err.Error()

	// Check that error message contains important info
	assert.NotEmpty(t, msg, "error message should not be empty")

	// Should mention the type
	assert.Contains(t, msg, "fake_host", "error should mention the unknown type 'fake_host'")

	// Should hint about config
	assert.Contains(t, msg, "lengthcalc.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	// Register a mock provider
	Register("test_host_internal", func(_ *slog.Logger) Provider { return nil })

	assert.True(t, IsRegistered("test_host_internal"), "test_host_internal should be registered after Register()")

	factory, ok := Get("test_host_internal")
	assert.True(t, ok, "Get(test_host_internal) should return true after Register()")
	assert.NotNil(t, factory, "Get(test_host_internal) should return non-nil factory")
}

func TestNewProvider_EmptyType(t *testing.T) {
	cfg := Config{
		Type: "",
	}

	_, err := NewProvider(cfg, nil)
	require.Error(t, err, "NewProvider with empty type should fail")
	assert.Equal(t, "host type not specified", err.Error(), "error message")
}

func TestNewProvider_UnknownType(t *testing.T) {
	cfg := Config{
		Type: "no_such_host",
	}

	_, err := NewProvider(cfg, nil)
	require.Error(t, err)

	var unknownErr *UnknownProviderError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "no_such_host", unknownErr.Type)
}

func TestListProviders_Sorted(t *testing.T) {
	Register("zzz_test_host", func(_ *slog.Logger) Provider { return nil })
	Register("aaa_test_host", func(_ *slog.Logger) Provider { return nil })

	names := ListProviders()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i], "provider names should be sorted")
	}
}
