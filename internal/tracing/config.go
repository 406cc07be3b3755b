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
	"fmt"
	"time"
)

// Exporter names accepted in Config.TraceExporter.
const (
	ExporterNone     = "none"
	ExporterConsole  = "console"
	ExporterOTLP     = "otlp"
	ExporterOTLPHTTP = "otlp-http"
)

// Config holds telemetry configuration.
type Config struct {
	// ServiceName identifies this process in traces and metrics.
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string

	// Metrics enables the tool-call instruments and the /metrics endpoint.
	Metrics bool

	// TraceExporter is one of "none", "console", "otlp" or "otlp-http".
	TraceExporter string

	// Endpoint is the collector address for the otlp exporters
	// (e.g. "localhost:4317").
	Endpoint string

	// Headers are sent with every export (collector auth tokens).
	Headers map[string]string

	// Insecure disables TLS towards the collector.
	Insecure bool

	// SampleRate is the fraction of root traces kept (0.0 - 1.0).
	SampleRate float64

	// BatchInterval is how often spans are flushed (default: 5s).
	BatchInterval time.Duration
}

// DefaultConfig returns metrics on and trace export off.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "kontent-mcp",
		ServiceVersion: "dev",
		Metrics:        true,
		TraceExporter:  ExporterNone,
		SampleRate:     1.0,
		BatchInterval:  5 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.TraceExporter {
	case "", ExporterNone, ExporterConsole:
	case ExporterOTLP, ExporterOTLPHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("trace exporter %q requires an endpoint", c.TraceExporter)
		}
	default:
		return fmt.Errorf("unknown trace exporter %q (want none, console, otlp or otlp-http)", c.TraceExporter)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1, got %v", c.SampleRate)
	}
	return nil
}
