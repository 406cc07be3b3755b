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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels recorded for a tool call that did not fail.
const OutcomeSuccess = "success"

// ToolMetrics records MCP tool invocations. All methods are no-ops on a nil
// receiver.
type ToolMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

// NewToolMetrics registers the instruments on the given meter provider.
func NewToolMetrics(mp metric.MeterProvider) (*ToolMetrics, error) {
	meter := mp.Meter("kontent-mcp")
	m := &ToolMetrics{}

	var err error
	m.calls, err = meter.Int64Counter(
		"kontent_mcp_tool_calls_total",
		metric.WithDescription("Total number of MCP tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.duration, err = meter.Float64Histogram(
		"kontent_mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.inFlight, err = meter.Int64UpDownCounter(
		"kontent_mcp_tool_calls_in_flight",
		metric.WithDescription("Number of MCP tool calls currently executing"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// CallStarted marks a tool call as in flight.
func (m *ToolMetrics) CallStarted(ctx context.Context, tool string) {
	if m == nil {
		return
	}
	m.inFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// CallFinished records a completed call. outcome is OutcomeSuccess or the
// error classification ("validation", "api", "http", "unknown").
func (m *ToolMetrics) CallFinished(ctx context.Context, tool, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("tool", tool)))

	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", outcome),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
