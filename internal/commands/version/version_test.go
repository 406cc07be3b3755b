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


package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
)

func setVersion(t *testing.T) {
	t.Helper()
	shared.SetVersion("1.0.0", "test123", "2025-12-22")
	t.Cleanup(func() { shared.SetVersion("dev", "unknown", "unknown") })
}

func TestCurrent(t *testing.T) {
	setVersion(t)

	info := Current()
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "test123", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "kontent-ai-mcp-server;1.0.0", info.Source)
}

func TestVersionOutput(t *testing.T) {
	setVersion(t)

	cmd := NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "kontent-mcp 1.0.0")
	assert.Contains(t, out, "commit:     test123")
	assert.Contains(t, out, "source:     kontent-ai-mcp-server;1.0.0")
}

func TestVersionJSONOutput(t *testing.T) {
	setVersion(t)

	rootCmd := &cobra.Command{Use: "test"}
	_, jsonPtr, _ := shared.RegisterFlagPointers()
	rootCmd.PersistentFlags().BoolVar(jsonPtr, "json", false, "JSON output")
	rootCmd.AddCommand(NewVersionCommand())
	t.Cleanup(func() { shared.SetJSONForTest(false) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, rootCmd.Execute())

	var info VersionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info), buf.String())
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "2025-12-22", info.BuildDate)
	assert.Equal(t, "kontent-ai-mcp-server;1.0.0", info.Source)
}
