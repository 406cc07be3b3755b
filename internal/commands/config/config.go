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


// Package config implements the config command group.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and manage configuration",
		Long: `View and manage kontent-mcp configuration.

Subcommands:
  show     - Display the effective configuration
  path     - Show config file location
  validate - Check the configuration for the selected transport
  set-key  - Store a Management API key in the OS keychain`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newSetKeyCommand())

	// If no subcommand provided, default to 'show'
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, args)
	}

	return cmd
}

// configView is the printable form of the configuration with the API key
// masked.
type configView struct {
	APIKey           string                 `json:"api_key" yaml:"api_key"`
	APIKeySource     string                 `json:"api_key_source,omitempty" yaml:"api_key_source,omitempty"`
	EnvironmentID    string                 `json:"environment_id" yaml:"environment_id"`
	ManagementAPIURL string                 `json:"management_api_url" yaml:"management_api_url"`
	DeliveryAPIURL   string                 `json:"delivery_api_url" yaml:"delivery_api_url"`
	Transport        string                 `json:"transport" yaml:"transport"`
	Port             int                    `json:"port" yaml:"port"`
	Log              config.LogConfig       `json:"log" yaml:"log"`
	HTTP             config.HTTPConfig      `json:"http" yaml:"http"`
	Telemetry        config.TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	File             string                 `json:"file,omitempty" yaml:"-"`
}

func newConfigView(cfg *config.Config) configView {
	return configView{
		APIKey:           cfg.MaskedAPIKey(),
		APIKeySource:     cfg.Source.APIKey,
		EnvironmentID:    cfg.EnvironmentID,
		ManagementAPIURL: cfg.ManagementAPIURL,
		DeliveryAPIURL:   cfg.DeliveryAPIURL,
		Transport:        cfg.Transport,
		Port:             cfg.Port,
		Log:              cfg.Log,
		HTTP:             cfg.HTTP,
		Telemetry:        cfg.Telemetry,
		File:             cfg.Source.File,
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after defaults, the config file,
the environment and the keychain have been applied.

The API key is masked. Use --json for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file location",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewConfigError("failed to load configuration", err)
	}
	view := newConfigView(cfg)
	out := cmd.OutOrStdout()

	if shared.GetJSON() {
		return shared.EmitJSON(out, view)
	}

	source := view.File
	if source == "" {
		source = "(no config file)"
	}
	fmt.Fprintf(out, "Configuration: %s\n", source)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out)

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfgPath := shared.GetConfigPath()
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfgPath)
	return nil
}
