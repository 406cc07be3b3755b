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

// Package server implements an MCP server that exposes the Kontent.ai
// Management and Delivery APIs as tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/delivery"
	"github.com/tombee/kontent-mcp/internal/tracing"
	"github.com/tombee/kontent-mcp/pkg/httpclient"
)

// sourceName identifies this integration in the X-KC-SOURCE header.
const sourceName = "kontent-ai-mcp-server"

// SourceHeader returns the X-KC-SOURCE value sent for version.
func SourceHeader(version string) string {
	return fmt.Sprintf("%s;%s", sourceName, version)
}

// Server wraps the MCP server and provides the Kontent.ai tools
type Server struct {
	mcpServer *server.MCPServer
	registry  *Registry
	cfg       *config.Config
	name      string
	version   string
	logger    *slog.Logger
	telemetry *tracing.Provider
	now       func() time.Time

	mu         sync.RWMutex
	ln         net.Listener
	httpServer *http.Server
}

// ServerConfig configures the MCP server
type ServerConfig struct {
	// Name is the server name (default: "kontent-ai")
	Name string

	// Version is the build version
	Version string

	// Config is the resolved configuration. Required.
	Config *config.Config

	// HTTPClient overrides the outbound client built from Config.HTTP.
	HTTPClient *http.Client

	// Logger receives server and tool-call logs. Never stdout: stdio
	// transport owns it.
	Logger *slog.Logger

	// Telemetry provides metrics and the /metrics handler. Optional.
	Telemetry *tracing.Provider

	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewServer creates a new MCP server instance
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Name == "" {
		cfg.Name = "kontent-ai"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	hc := cfg.HTTPClient
	if hc == nil {
		var err error
		hc, err = newHTTPClient(cfg.Config, cfg.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
	}

	var metrics *tracing.ToolMetrics
	if cfg.Telemetry != nil {
		metrics = cfg.Telemetry.ToolMetrics()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(cfg.Name, cfg.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		registry:  NewRegistry(cfg.Logger, metrics, cfg.Config.Transport),
		cfg:       cfg.Config,
		name:      cfg.Name,
		version:   cfg.Version,
		logger:    cfg.Logger,
		telemetry: cfg.Telemetry,
		now:       cfg.Now,
	}

	tools := &toolset{
		cfg:        cfg.Config,
		httpClient: hc,
		source:     SourceHeader(cfg.Version),
		delivery:   delivery.New(cfg.Config.DeliveryAPIURL, delivery.WithHTTPClient(hc)),
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if err := tools.register(s.registry); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerTools()

	return s, nil
}

func newHTTPClient(cfg *config.Config, version string) (*http.Client, error) {
	hc := httpclient.DefaultConfig()
	hc.UserAgent = fmt.Sprintf("%s/%s", sourceName, version)
	if cfg.HTTP.Timeout > 0 {
		hc.Timeout = cfg.HTTP.Timeout
	}
	hc.RetryAttempts = cfg.HTTP.RetryAttempts
	if cfg.HTTP.RequestsPerSecond > 0 {
		hc.RequestsPerSecond = cfg.HTTP.RequestsPerSecond
	}
	if cfg.HTTP.Burst > 0 {
		hc.Burst = cfg.HTTP.Burst
	}
	return httpclient.New(hc)
}

// registerTools exposes every registry tool on the MCP server.
func (s *Server) registerTools() {
	for _, t := range s.registry.Tools() {
		s.mcpServer.AddTool(t.Descriptor(), s.handleCall)
	}
}

func (s *Server) handleCall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.registry.Call(ctx, req.Params.Name, req.Params.Arguments), nil
}

// Registry returns the tool registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run serves the configured transport and blocks until ctx is cancelled
// or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting Kontent.ai MCP server",
		slog.String("version", s.version),
		slog.String("transport", s.cfg.Transport),
		slog.Int("tools", len(s.registry.Tools())))

	switch s.cfg.Transport {
	case config.TransportStdio, "":
		return s.runStdio(ctx)
	case config.TransportSSE, config.TransportHTTP:
		return s.runHTTP(ctx, fmt.Sprintf(":%d", s.cfg.Port))
	}
	return fmt.Errorf("unknown transport %q", s.cfg.Transport)
}

func (s *Server) runStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

func (s *Server) runHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the sse or http transport on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// Streams stay open for the life of a session.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	s.mu.Lock()
	s.ln = ln
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("MCP HTTP server listening",
		slog.String("listen_addr", ln.Addr().String()),
		slog.String("transport", s.cfg.Transport))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down Kontent.ai MCP server")

	s.mu.RLock()
	srv := s.httpServer
	s.mu.RUnlock()
	// Returning from stdio Listen is sufficient for the stdio transport.
	if srv == nil {
		return nil
	}

	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown error", slog.Any("error", err))
		return err
	}
	return nil
}

// Addr returns the listener address, or empty string if not started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}
