// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := DefaultConfig()
	cfg.Metrics = false

	provider, err := NewProvider(context.Background(), cfg, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	_, span := provider.Tracer("test").Start(context.Background(), "tool get-type-mapi")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool get-type-mapi", spans[0].Name)
	assert.Nil(t, provider.ToolMetrics())
}

func TestNewProvider_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "jaeger"
	_, err := NewProvider(context.Background(), cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.TraceExporter = ExporterOTLP
	_, err = NewProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "requires an endpoint")
}

func TestProvider_MetricsHandler(t *testing.T) {
	provider, err := NewProvider(context.Background(), DefaultConfig())
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	m := provider.ToolMetrics()
	require.NotNil(t, m)
	m.CallStarted(context.Background(), "list-languages-mapi")
	m.CallFinished(context.Background(), "list-languages-mapi", OutcomeSuccess, 20*time.Millisecond)

	server := httptest.NewServer(provider.MetricsHandler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "kontent_mcp_tool_calls_total"), "missing tool counter in:\n%s", body)
	assert.Contains(t, string(body), `tool="list-languages-mapi"`)
}

func TestProvider_MetricsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = false
	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	provider.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToolMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewToolMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.CallStarted(ctx, "get-item-mapi")
	m.CallFinished(ctx, "get-item-mapi", "api", 15*time.Millisecond)
	m.CallStarted(ctx, "get-item-mapi")
	m.CallFinished(ctx, "get-item-mapi", OutcomeSuccess, 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			found[metric.Name] = true
			if metric.Name != "kontent_mcp_tool_calls_total" {
				continue
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			assert.Equal(t, int64(2), total)
			assert.Len(t, sum.DataPoints, 2, "one series per outcome")
		}
	}
	assert.True(t, found["kontent_mcp_tool_calls_total"])
	assert.True(t, found["kontent_mcp_tool_duration_seconds"])
	assert.True(t, found["kontent_mcp_tool_calls_in_flight"])
}

func TestToolMetrics_NilSafe(t *testing.T) {
	var m *ToolMetrics
	assert.NotPanics(t, func() {
		m.CallStarted(context.Background(), "x")
		m.CallFinished(context.Background(), "x", OutcomeSuccess, time.Second)
	})
}

func TestSpanMiddleware(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := DefaultConfig()
	cfg.Metrics = false
	provider, err := NewProvider(context.Background(), cfg, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	handler := CorrelationMiddleware(SpanMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/env/mcp", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /env/mcp", spans[0].Name)
	assert.Equal(t, "Error", spans[0].Status.Code.String())
}
