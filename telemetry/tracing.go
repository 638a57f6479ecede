// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package telemetry sets up the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/l3montree-dev/supplyguard/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"

	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

type Config struct {
	ServiceName string
	Version     string
	// Exporter is one of none, stdout or otlp
	Exporter string
	// Protocol of the otlp exporter, grpc or http/protobuf
	Protocol    string
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// ConfigFromEnv reads OTEL_TRACES_EXPORTER, OTEL_EXPORTER_OTLP_PROTOCOL,
// OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE and OTEL_SAMPLER_RATIO.
func ConfigFromEnv(serviceName, version string) Config {
	return Config{
		ServiceName: serviceName,
		Version:     version,
		Exporter:    strings.ToLower(shared.GetEnvOr("OTEL_TRACES_EXPORTER", ExporterNone)),
		Protocol:    strings.ToLower(shared.GetEnvOr("OTEL_EXPORTER_OTLP_PROTOCOL", ProtocolGRPC)),
		Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Insecure:    strings.EqualFold(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"), "true"),
		SampleRatio: min(max(shared.GetEnvFloatOr("OTEL_SAMPLER_RATIO", 1), 0), 1),
	}
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterNone, "":
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		switch cfg.Protocol {
		case ProtocolGRPC:
			var opts []otlptracegrpc.Option
			if cfg.Endpoint != "" {
				opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				opts = append(opts, otlptracegrpc.WithInsecure())
			}
			return otlptracegrpc.New(ctx, opts...)
		case ProtocolHTTP, "http":
			var opts []otlptracehttp.Option
			if cfg.Endpoint != "" {
				opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				opts = append(opts, otlptracehttp.WithInsecure())
			}
			return otlptracehttp.New(ctx, opts...)
		}
		return nil, fmt.Errorf("unknown otlp protocol %q", cfg.Protocol)
	}
	return nil, fmt.Errorf("unknown traces exporter %q", cfg.Exporter)
}

// NewTracerProvider creates the provider and registers it globally. Without an
// exporter spans are sampled but dropped.
func NewTracerProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
	))
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	slog.Info("tracing initialized", "exporter", cfg.Exporter, "protocol", cfg.Protocol)
	return provider, nil
}

// Module flushes the spans on shutdown.
func Module(serviceName, version string) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle) error {
		provider, err := NewTracerProvider(context.Background(), ConfigFromEnv(serviceName, version))
		if err != nil {
			return err
		}
		lc.Append(fx.Hook{OnStop: provider.Shutdown})
		return nil
	})
}
