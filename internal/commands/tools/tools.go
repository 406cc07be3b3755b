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


// Package tools implements the tools command group that inspects the MCP
// tools the server exposes.
package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/kontent-mcp/internal/commands/completion"
	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/mcp/server"
)

// NewCommand creates the tools command with subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the MCP tools",
		Long: `Inspect the tools the MCP server exposes.

Subcommands:
  list   - List tools with their annotations
  schema - Print the JSON Schema of a tool's arguments`,
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newSchemaCommand())

	return cmd
}

// ToolInfo describes a tool in list output.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ReadOnly    bool            `json:"readOnly"`
	Destructive bool            `json:"destructive"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ListResponse is the JSON output of tools list.
type ListResponse struct {
	shared.JSONResponse
	Tools []ToolInfo `json:"tools"`
}

// registry builds the tool registry from the resolved configuration.
// Credentials are not needed to describe tools.
func registry() (*server.Registry, error) {
	cfg, err := config.LoadWith(shared.GetConfigPath(), nil)
	if err != nil {
		return nil, shared.NewConfigError("failed to load configuration", err)
	}
	version, _, _ := shared.GetVersion()
	srv, err := server.NewServer(server.ServerConfig{
		Version: version,
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return nil, shared.NewFailure("failed to create MCP server", err)
	}
	return srv.Registry(), nil
}

func newListCommand() *cobra.Command {
	var withSchema bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry()
			if err != nil {
				return err
			}

			tools := reg.Tools()
			if shared.GetJSON() {
				resp := ListResponse{
					JSONResponse: shared.JSONResponse{Version: "1.0", Command: "tools list", Success: true},
					Tools:        make([]ToolInfo, 0, len(tools)),
				}
				for _, t := range tools {
					info := ToolInfo{
						Name:        t.Name,
						Description: t.Description,
						ReadOnly:    t.ReadOnly,
						Destructive: t.Destructive,
					}
					if withSchema {
						info.InputSchema = t.Schema
					}
					resp.Tools = append(resp.Tools, info)
				}
				return shared.EmitJSON(cmd.OutOrStdout(), resp)
			}

			p := shared.NewPrinter(cmd.OutOrStdout())
			w := p.Writer()
			fmt.Fprintln(w, p.Header(fmt.Sprintf("Tools (%d)", len(tools))))
			fmt.Fprintln(w)

			width := 0
			for _, t := range tools {
				width = max(width, len(t.Name))
			}
			for _, t := range tools {
				summary, _, _ := strings.Cut(t.Description, "\n")
				if len(summary) > 80 {
					summary = summary[:77] + "..."
				}
				fmt.Fprintf(w, "  %-*s  %s%s\n", width, t.Name, summary, annotations(p, t))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSchema, "schema", false, "Include input schemas in JSON output")
	return cmd
}

func annotations(p *shared.Printer, t *server.Tool) string {
	switch {
	case t.Destructive:
		return " " + p.Label("[destructive]")
	case t.ReadOnly:
		return " " + p.Label("[read-only]")
	}
	return ""
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "schema <name>",
		Short:             "Print the JSON Schema of a tool's arguments",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.CompleteToolNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry()
			if err != nil {
				return err
			}
			tool, ok := reg.Lookup(args[0])
			if !ok {
				return shared.NewUsageError(fmt.Sprintf("unknown tool %q (run 'kontent-mcp tools list')", args[0]), nil)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, tool.Schema, "", "  "); err != nil {
				return fmt.Errorf("failed to format schema: %w", err)
			}
			buf.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}
