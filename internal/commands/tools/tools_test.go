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


package tools

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	shared.SetConfigPathForTest(path)
	t.Cleanup(func() {
		shared.SetConfigPathForTest("")
		shared.SetJSONForTest(false)
	})

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToolsList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Tools (30)")
	assert.Contains(t, out, "patch-content-type-mapi")
	assert.Regexp(t, `delete-content-item-mapi\s+.*\[destructive\]`, out)
	assert.Regexp(t, `list-workflows-mapi\s+.*\[read-only\]`, out)
}

func TestToolsList_JSON(t *testing.T) {
	shared.SetJSONForTest(true)
	out, err := execute(t, "list", "--schema")
	require.NoError(t, err)

	var resp ListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "tools list", resp.Command)
	require.Len(t, resp.Tools, 30)

	byName := map[string]ToolInfo{}
	for _, tool := range resp.Tools {
		byName[tool.Name] = tool
	}
	upsert, ok := byName["upsert-language-variant-mapi"]
	require.True(t, ok)
	assert.False(t, upsert.ReadOnly)
	assert.NotEmpty(t, upsert.InputSchema)
	assert.True(t, byName["get-asset-mapi"].ReadOnly)
	assert.True(t, byName["delete-language-variant-mapi"].Destructive)
}

func TestToolsSchema(t *testing.T) {
	out, err := execute(t, "schema", "publish-variant-mapi")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"itemId", "languageId", "scheduledTo", "displayTimezone"} {
		assert.Contains(t, props, key)
	}
	assert.True(t, strings.HasPrefix(out, "{\n  "), "expected indented output")
}

func TestToolsSchema_Unknown(t *testing.T) {
	_, err := execute(t, "schema", "no-such-tool")
	require.Error(t, err)
	assert.Equal(t, shared.ExitUsageError, shared.ExitCode(err))
	assert.Contains(t, err.Error(), `unknown tool "no-such-tool"`)
}
