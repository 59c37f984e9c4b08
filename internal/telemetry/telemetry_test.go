package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/pyvet/pyvet/internal/config"
)

// shutdownCtx returns a context with a short timeout for test shutdown
// calls, avoiding long gRPC connection timeouts when no collector runs.
func shutdownCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 1*time.Second)
}

func TestInit_DisabledReturnsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown should not error, got: %v", err)
	}
}

func TestInit_EnvVarOverrideDisables(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Protocol:    "grpc",
		ServiceName: "pyvet-test",
		SampleRate:  1.0,
	}

	t.Setenv("PYVET_TELEMETRY_ENABLED", "false")

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown should not error, got: %v", err)
	}
}

func TestInit_EnvVarOverrideEnables(t *testing.T) {
	// Exporters connect lazily, so Init succeeds without a collector.
	cfg := config.TelemetryConfig{
		Enabled:     false,
		Endpoint:    "localhost:4317",
		Protocol:    "grpc",
		Insecure:    true,
		ServiceName: "pyvet-test",
		SampleRate:  1.0,
	}

	t.Setenv("PYVET_TELEMETRY_ENABLED", "true")

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if tp := otel.GetTracerProvider(); tp == nil {
		t.Fatal("expected a global tracer provider")
	}

	ctx, cancel := shutdownCtx()
	defer cancel()
	_ = shutdown(ctx)
}
