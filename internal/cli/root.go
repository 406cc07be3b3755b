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


package cli

import (
	"github.com/spf13/cobra"

	"github.com/tombee/kontent-mcp/internal/commands/completion"
	"github.com/tombee/kontent-mcp/internal/commands/config"
	"github.com/tombee/kontent-mcp/internal/commands/serve"
	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/commands/tools"
	versioncmd "github.com/tombee/kontent-mcp/internal/commands/version"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command without subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kontent-mcp",
		Short: "kontent-mcp - Kontent.ai MCP server",
		Long: `kontent-mcp exposes the Kontent.ai Management and Delivery APIs as
Model Context Protocol tools for AI assistants.

Run 'kontent-mcp serve' to start the server.
Run 'kontent-mcp tools list' to see the tools it exposes.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	verbose, jsonOut, cfgPath := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVar(jsonOut, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(cfgPath, "config", "", "Path to config file (default: ~/.config/kontent-mcp/config.yaml)")

	return cmd
}

// NewCommandTree creates the root command with every subcommand attached.
func NewCommandTree() *cobra.Command {
	rootCmd := NewRootCommand()

	rootCmd.AddCommand(serve.NewCommand())
	rootCmd.AddCommand(tools.NewCommand())
	rootCmd.AddCommand(config.NewConfigCommand())
	rootCmd.AddCommand(versioncmd.NewVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())

	return rootCmd
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
