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

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("should default to no exporter and full sampling", func(t *testing.T) {
		cfg := ConfigFromEnv("supplyguard", "dev")
		assert.Equal(t, ExporterNone, cfg.Exporter)
		assert.Equal(t, ProtocolGRPC, cfg.Protocol)
		assert.Equal(t, 1.0, cfg.SampleRatio)
	})

	t.Run("should clamp the sample ratio", func(t *testing.T) {
		t.Setenv("OTEL_SAMPLER_RATIO", "7")
		assert.Equal(t, 1.0, ConfigFromEnv("supplyguard", "dev").SampleRatio)
		t.Setenv("OTEL_SAMPLER_RATIO", "-1")
		assert.Equal(t, 0.0, ConfigFromEnv("supplyguard", "dev").SampleRatio)
	})
}

func TestNewTracerProvider(t *testing.T) {
	t.Run("should register the provider globally", func(t *testing.T) {
		provider, err := NewTracerProvider(context.Background(), Config{ServiceName: "supplyguard", Exporter: ExporterStdout, SampleRatio: 1})
		require.NoError(t, err)
		defer provider.Shutdown(context.Background()) // nolint:errcheck

		assert.Same(t, provider, otel.GetTracerProvider())
	})

	t.Run("should reject unknown exporters", func(t *testing.T) {
		_, err := NewTracerProvider(context.Background(), Config{Exporter: "zipkin"})
		assert.Error(t, err)
	})

	t.Run("should reject unknown otlp protocols", func(t *testing.T) {
		_, err := NewTracerProvider(context.Background(), Config{Exporter: ExporterOTLP, Protocol: "thrift"})
		assert.Error(t, err)
	})
}
