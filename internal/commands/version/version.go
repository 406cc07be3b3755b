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


// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/mcp/server"
)

// VersionInfo contains version metadata
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`

	// Source is the X-KC-SOURCE value sent to Kontent.ai
	Source string `json:"source"`
}

// Current returns the version information of this build.
func Current() VersionInfo {
	v, c, b := shared.GetVersion()
	return VersionInfo{
		Version:   v,
		Commit:    c,
		BuildDate: b,
		GoVersion: runtime.Version(),
		Source:    server.SourceHeader(v),
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version, commit, build date and the source header sent to Kontent.ai.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Current()
			if shared.GetJSON() {
				return shared.EmitJSON(cmd.OutOrStdout(), info)
			}

			p := shared.NewPrinter(cmd.OutOrStdout())
			w := p.Writer()
			fmt.Fprintf(w, "%s %s\n", p.Header("kontent-mcp"), info.Version)
			for _, row := range [][2]string{
				{"commit", info.Commit},
				{"build date", info.BuildDate},
				{"go", info.GoVersion},
				{"source", info.Source},
			} {
				fmt.Fprintf(w, "  %s %s\n", p.Label(fmt.Sprintf("%-11s", row[0]+":")), row[1])
			}
			return nil
		},
	}
}
