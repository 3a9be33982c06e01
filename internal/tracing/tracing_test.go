package tracing

import (
	"context"
	"testing"

	"github.com/hyperjump/embedserve/internal/config"
	"go.uber.org/zap"
)

func TestInit_disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestInit_enabled(t *testing.T) {
	cfg := config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4318",
		URLPath:     "/v1/traces",
		Insecure:    true,
		ServiceName: "embedserve-test",
	}
	shutdown, err := Init(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	_, span := Tracer().Start(context.Background(), "test")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span from the sdk provider")
	}
	span.End()

	// Nothing listens on the endpoint; shutdown may report the failed export.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
