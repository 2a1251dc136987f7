package observability

import (
	"context"
	"testing"

	"github.com/annel0/voxel-world/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_SamplesByRatio(t *testing.T) {
	// Экспортер не подключается при создании, поэтому сеть не нужна
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{
		ServiceName: "voxel-test",
		Endpoint:    "127.0.0.1:4318",
		SampleRatio: 0,
	})
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "tick")
	assert.False(t, span.SpanContext().IsSampled(), "При нулевой доле тик не трассируется")
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
}
