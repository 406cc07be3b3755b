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


package completion

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/mcp/server"
)

// CompleteToolNames completes the first argument with registered tool
// names, annotated with the first line of each description.
func CompleteToolNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		srv, err := server.NewServer(server.ServerConfig{
			Config: config.Default(),
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var names []string
		for _, tool := range srv.Registry().Tools() {
			if !strings.HasPrefix(tool.Name, toComplete) {
				continue
			}
			summary, _, _ := strings.Cut(tool.Description, "\n")
			names = append(names, tool.Name+"\t"+summary)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
