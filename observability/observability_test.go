package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/arangodb/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("orders")
	if !cfg.Enabled || cfg.ServiceName != "orders" || cfg.Endpoint != "localhost:4318" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected sampling %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled is always valid", Config{SampleRate: 7}, false},
		{"valid", Config{Enabled: true, ServiceName: "s", Endpoint: "h:1", SampleRate: 0.5}, false},
		{"missing service", Config{Enabled: true, Endpoint: "h:1"}, true},
		{"missing endpoint", Config{Enabled: true, ServiceName: "s"}, true},
		{"sample rate too high", Config{Enabled: true, ServiceName: "s", Endpoint: "h:1", SampleRate: 1.5}, true},
		{"negative sample rate", Config{Enabled: true, ServiceName: "s", Endpoint: "h:1", SampleRate: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.ServiceName != "arangodb" || cfg.Endpoint != "localhost:4318" || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(1).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Errorf("rate 1: got %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.NeverSample().Description() {
		t.Errorf("rate 0: got %s", got)
	}
	if got := sampler(0.25).Description(); got == sdktrace.AlwaysSample().Description() {
		t.Errorf("rate 0.25 should not always sample")
	}
}

func TestStartAndEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartSpan(context.Background(), "arangodb.health")
	EndSpan(span, errors.New("boom"))
	_, ok := StartSpan(context.Background(), "arangodb.ok")
	EndSpan(ok, nil)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "arangodb.health" || spans[0].Status.Code != codes.Error || len(spans[0].Events) == 0 {
		t.Errorf("unexpected failed span %+v", spans[0])
	}
	if spans[1].Status.Code == codes.Error {
		t.Error("successful span should not carry an error status")
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("no-op shutdown returned %v", err)
	}
}

func TestInit_InvalidConfig(t *testing.T) {
	_, err := Init(context.Background(), Config{Enabled: true, SampleRate: 2}, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestInit_InstallsProviders(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	}()

	cfg := DefaultConfig("test")
	cfg.Endpoint = "127.0.0.1:1"
	shutdown, err := Init(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("expected sdk tracer provider, got %T", otel.GetTracerProvider())
	}

	// Nothing listens on the collector endpoint; only the call path matters.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
