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

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/tracing"
)

// Handler returns the HTTP handler of the sse or http transport:
//
//	sse:  /sse and /message, credentials from configuration
//	http: /{environmentId}/mcp, credentials from the request
//
// /healthz and /metrics are served by both.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	switch s.cfg.Transport {
	case config.TransportSSE:
		sse := server.NewSSEServer(s.mcpServer, server.WithSSEContextFunc(requestContext))
		mux.Handle("/sse", sse.SSEHandler())
		mux.Handle("/message", sse.MessageHandler())
	default:
		streamable := server.NewStreamableHTTPServer(s.mcpServer,
			server.WithStateLess(true),
			server.WithHTTPContextFunc(requestContext),
		)
		mux.Handle("/{environmentId}/mcp", requireAuth(streamable, s.now))
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.telemetry != nil {
		mux.Handle("GET /metrics", s.telemetry.MetricsHandler())
	}

	return tracing.CorrelationMiddleware(tracing.SpanMiddleware(mux))
}

// requestContext carries the request's correlation id and credentials into
// the context the MCP server hands to tool calls.
func requestContext(ctx context.Context, r *http.Request) context.Context {
	if id := tracing.FromContextOrEmpty(r.Context()); id != "" {
		ctx = tracing.ToContext(ctx, id)
	}
	if auth, ok := AuthFromContext(r.Context()); ok {
		ctx = WithAuth(ctx, auth)
	}
	return ctx
}

type healthResponse struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Transport string `json:"transport"`
	Tools     int    `json:"tools"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Name:      s.name,
		Version:   s.version,
		Transport: s.cfg.Transport,
		Tools:     len(s.registry.Tools()),
	})
}
