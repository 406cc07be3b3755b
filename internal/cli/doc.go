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
Package cli provides the root command for the kontent-mcp CLI.

This package creates the Cobra command tree and handles global concerns like
version information, persistent flags, and exit codes. Individual commands
are implemented in the internal/commands subpackages.

# Command Tree

	kontent-mcp
	├── serve         Start the MCP server (stdio, sse, http)
	├── tools         List tools and print their input schemas
	├── config        Show, validate and store configuration
	├── version       Show version
	└── completion    Generate shell completion scripts

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewCommandTree()
	if err := rootCmd.Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

All commands inherit these flags:

	--verbose, -v    Enable verbose output
	--json           Output in JSON format
	--config         Path to config file
*/
package cli
