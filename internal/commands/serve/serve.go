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


// Package serve implements the serve command that runs the MCP server.
package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tombee/kontent-mcp/internal/commands/completion"
	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/log"
	"github.com/tombee/kontent-mcp/internal/mcp/server"
	"github.com/tombee/kontent-mcp/internal/tracing"
)

type options struct {
	transport string
	port      int
	logLevel  string
}

// NewCommand creates the serve command
func NewCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Kontent.ai MCP server",
		Long: `Start the Kontent.ai MCP (Model Context Protocol) server.

The server exposes the Kontent.ai Management and Delivery APIs as tools that
AI assistants can call to read and edit content models, content items,
language variants, taxonomies and workflows.

Transports:
  stdio  Single environment; credentials from KONTENT_API_KEY and
         KONTENT_ENVIRONMENT_ID (default)
  sse    Server-sent events on /sse and /message, same credentials as stdio
  http   Streamable HTTP on /{environmentId}/mcp; each request brings its
         own API key as a bearer token

Configuration example for an MCP client:
  {
    "mcpServers": {
      "kontent-ai": {
        "command": "kontent-mcp",
        "args": ["serve"],
        "env": {
          "KONTENT_API_KEY": "<management api key>",
          "KONTENT_ENVIRONMENT_ID": "<environment id>"
        }
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport to serve (stdio, sse, http)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Listen port for the sse and http transports")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Logging verbosity (trace, debug, info, warn, error)")
	_ = cmd.RegisterFlagCompletionFunc("transport", completion.CompleteTransports)
	_ = cmd.RegisterFlagCompletionFunc("log-level", completion.CompleteLogLevels)

	return cmd
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return nil, shared.NewConfigError("failed to load configuration", err)
	}
	// Visit only walks flags set on the command line.
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "transport":
			cfg.Transport = opts.transport
		case "port":
			cfg.Port = opts.port
		case "log-level":
			cfg.Log.Level = opts.logLevel
		}
	})
	if !cmd.Flags().Changed("log-level") && shared.GetVerbose() {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, shared.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := log.FromEnv()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = log.Format(cfg.Log.Format)
	}
	logCfg.Output = os.Stderr
	return log.New(logCfg)
}

func newTelemetry(ctx context.Context, cfg *config.Config, version string) (*tracing.Provider, error) {
	tcfg := tracing.DefaultConfig()
	tcfg.ServiceVersion = version
	tcfg.Metrics = cfg.Telemetry.Metrics
	if cfg.Telemetry.TraceExporter != "" {
		tcfg.TraceExporter = cfg.Telemetry.TraceExporter
	}
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Insecure = cfg.Telemetry.Insecure
	if cfg.Telemetry.SampleRate > 0 {
		tcfg.SampleRate = cfg.Telemetry.SampleRate
	}
	// Console spans would interleave with the stdio protocol stream.
	if cfg.Transport == config.TransportStdio && tcfg.TraceExporter == tracing.ExporterConsole {
		tcfg.TraceExporter = tracing.ExporterNone
	}
	return tracing.NewProvider(ctx, tcfg)
}

func runServe(cmd *cobra.Command, opts options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	versionStr, _, _ := shared.GetVersion()
	logger := newLogger(cfg)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetry, err := newTelemetry(ctx, cfg, versionStr)
	if err != nil {
		return shared.NewConfigError("failed to initialise telemetry", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	srv, err := server.NewServer(server.ServerConfig{
		Version:   versionStr,
		Config:    cfg,
		Logger:    logger,
		Telemetry: telemetry,
	})
	if err != nil {
		return shared.NewFailure("failed to create MCP server", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
			return
		}
		logger.Info("received shutdown signal, shutting down gracefully")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}

		cancel()
	}()

	// Run the server (blocks until shutdown)
	if err := srv.Run(ctx); err != nil {
		return &shared.ExitError{Code: shared.ExitFailure, Message: "serve failed", Cause: err}
	}
	return nil
}
