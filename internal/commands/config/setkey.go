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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/pkg/kontent"
)

// keyStore is replaced in tests.
var keyStore config.KeyStore = config.Keychain{}

func newSetKeyCommand() *cobra.Command {
	var environmentID string

	cmd := &cobra.Command{
		Use:   "set-key [api-key]",
		Short: "Store a Management API key in the OS keychain",
		Long: `Store a Management API key in the OS keychain under the environment id.

When KONTENT_API_KEY is not set the server reads the key from the keychain
for the configured environment. Without an argument the key is read from
the terminal without echo, or from stdin when it is not a terminal.`,
		Example: `  kontent-mcp config set-key --environment-id 14372844-0a5d-434a-8423-605b8a631623
  echo "$KEY" | kontent-mcp config set-key`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID := environmentID
			if envID == "" {
				cfg, err := config.LoadWith(shared.GetConfigPath(), nil)
				if err != nil {
					return shared.NewConfigError("failed to load configuration", err)
				}
				envID = cfg.EnvironmentID
			}
			if envID == "" {
				return shared.NewUsageError("no environment id: pass --environment-id or set KONTENT_ENVIRONMENT_ID", nil)
			}
			if !kontent.IsUUID(envID) {
				return shared.NewUsageError(fmt.Sprintf("environment id %q is not a valid UUID", envID), nil)
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				key, err = readKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return shared.NewUsageError("failed to read API key", err)
				}
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return shared.NewUsageError("API key must not be empty", nil)
			}

			if err := keyStore.Set(envID, key); err != nil {
				return shared.NewKeychainError("failed to store API key", err)
			}

			p := shared.NewPrinter(cmd.OutOrStdout())
			fmt.Fprintln(p.Writer(), p.OK("API key stored for environment "+envID))
			return nil
		},
	}

	cmd.Flags().StringVar(&environmentID, "environment-id", "", "Environment id to store the key for (default: configured environment)")
	return cmd
}

// readKey prompts without echo on a terminal and reads one line otherwise.
func readKey(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Management API key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}
