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

/*
Package tracing carries the process telemetry: correlation ids, OpenTelemetry
spans for tool calls and HTTP requests, and the tool-call metrics exposed on
the Prometheus /metrics endpoint.

# Provider

	provider, err := tracing.NewProvider(ctx, tracing.Config{
	    ServiceName:    "kontent-mcp",
	    ServiceVersion: version,
	    Metrics:        true,
	    TraceExporter:  "otlp-http",
	    Endpoint:       "localhost:4318",
	})
	defer provider.Shutdown(ctx)

	metrics := provider.ToolMetrics()
	http.Handle("/metrics", provider.MetricsHandler())

Trace exporters are "none" (default), "console" (pretty JSON on stderr),
"otlp" (gRPC) and "otlp-http". stdout is never written to because the stdio
transport owns it.

# Correlation IDs

Every HTTP request entering the server gets a UUID correlation id, taken from
X-Correlation-ID or X-Request-ID or freshly generated. It is stored in the
request context, echoed on the response and forwarded on outbound Kontent.ai
calls by pkg/httpclient.
*/
package tracing
