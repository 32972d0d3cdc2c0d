package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("RELOCATEME_OTEL_ENDPOINT", "")
	t.Setenv("RELOCATEME_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("RELOCATEME_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("RELOCATEME_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "test-service")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_InstallsPropagators(t *testing.T) {
	t.Setenv("RELOCATEME_OTEL_ENDPOINT", "")

	_, err := Setup(context.Background(), "test-service")
	require.NoError(t, err)

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported before shutdown.
	t.Setenv("RELOCATEME_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("RELOCATEME_OTEL_ENABLED", "true")

	shutdown, err := Setup(context.Background(), "test-service")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_InvalidEnabledValue(t *testing.T) {
	t.Setenv("RELOCATEME_OTEL_ENABLED", "sometimes")

	shutdown, err := Setup(context.Background(), "test-service")
	require.Error(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("RELOCATEME_OTEL_ENDPOINT", "")
	t.Setenv("RELOCATEME_OTEL_ENABLED", "")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.False(t, s.active())
}
