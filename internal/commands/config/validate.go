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


package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
)

// ValidationResult represents the result of config validation.
type ValidationResult struct {
	Valid     bool   `json:"valid"`
	Transport string `json:"transport"`
	Error     string `json:"error,omitempty"`
}

func newConfigValidateCommand() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Check that the configuration is complete for the selected transport.

The stdio and sse transports need an API key and an environment id; the
http transport receives both per request.`,
		Example: `  # Validate for the default transport
  kontent-mcp config validate

  # Validate for multi-tenant HTTP mode
  kontent-mcp config validate --transport http --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(shared.GetConfigPath())
			if err != nil {
				return shared.NewConfigError("failed to load configuration", err)
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}

			result := ValidationResult{Valid: true, Transport: cfg.Transport}
			validateErr := cfg.Validate()
			if validateErr != nil {
				result.Valid = false
				result.Error = validateErr.Error()
			}

			if shared.GetJSON() {
				if err := shared.EmitJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else if validateErr == nil {
				p := shared.NewPrinter(cmd.OutOrStdout())
				fmt.Fprintln(p.Writer(), p.OK(fmt.Sprintf("configuration is valid for the %s transport", cfg.Transport)))
			}

			if validateErr != nil {
				return shared.NewConfigError("invalid configuration", validateErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "Transport to validate for (stdio, sse, http)")
	return cmd
}
