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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tombee/kontent-mcp/internal/commands/shared"
	"github.com/tombee/kontent-mcp/internal/config"
)

const testEnvID = "14372844-0a5d-434a-8423-605b8a631623"

type memKeyStore map[string]string

func (m memKeyStore) Get(envID string) (string, error) {
	if k, ok := m[envID]; ok {
		return k, nil
	}
	return "", config.ErrKeyNotFound
}

func (m memKeyStore) Set(envID, key string) error {
	m[envID] = key
	return nil
}

func (m memKeyStore) Delete(envID string) error {
	delete(m, envID)
	return nil
}

func setup(t *testing.T, body string) string {
	t.Helper()
	keyring.MockInit()
	t.Setenv("KONTENT_API_KEY", "")
	t.Setenv("KONTENT_ENVIRONMENT_ID", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	shared.SetConfigPathForTest(path)
	t.Cleanup(func() {
		shared.SetConfigPathForTest("")
		shared.SetJSONForTest(false)
	})
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewConfigCommand()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigShow_MasksAPIKey(t *testing.T) {
	path := setup(t, "api_key: secret-management-key\nenvironment_id: "+testEnvID+"\n")

	out, err := execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration: "+path)
	assert.Contains(t, out, "********-key")
	assert.NotContains(t, out, "secret-management-key")
	assert.Contains(t, out, "environment_id: "+testEnvID)
}

func TestConfigShow_JSON(t *testing.T) {
	setup(t, "api_key: secret-management-key\nenvironment_id: "+testEnvID+"\ntransport: http\n")
	shared.SetJSONForTest(true)

	out, err := execute(t, "show")
	require.NoError(t, err)

	var view configView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "********-key", view.APIKey)
	assert.Equal(t, "file", view.APIKeySource)
	assert.Equal(t, "http", view.Transport)
	assert.Equal(t, config.DefaultManagementAPIURL, view.ManagementAPIURL)
}

func TestConfigPath(t *testing.T) {
	path := setup(t, "")
	out, err := execute(t, "path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		args     []string
		wantErr  bool
		contains string
	}{
		{
			name:     "stdio with credentials",
			body:     "api_key: k\nenvironment_id: " + testEnvID + "\n",
			contains: "configuration is valid for the stdio transport",
		},
		{
			name:     "stdio without key",
			body:     "environment_id: " + testEnvID + "\n",
			wantErr:  true,
			contains: "",
		},
		{
			name:     "http needs no credentials",
			body:     "",
			args:     []string{"--transport", "http"},
			contains: "configuration is valid for the http transport",
		},
		{
			name:    "unknown transport",
			body:    "transport: websocket\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.body)
			out, err := execute(t, append([]string{"validate"}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, shared.ExitConfigError, shared.ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestConfigValidate_JSON(t *testing.T) {
	setup(t, "environment_id: "+testEnvID+"\n")
	shared.SetJSONForTest(true)

	out, err := execute(t, "validate")
	require.Error(t, err)
	require.True(t, json.Valid([]byte(out)), "stdout is not pure JSON: %q", out)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "stdio", result.Transport)
	assert.Contains(t, result.Error, "api_key")
}

func TestSetKey(t *testing.T) {
	store := memKeyStore{}
	orig := keyStore
	keyStore = store
	t.Cleanup(func() { keyStore = orig })

	t.Run("argument with configured environment", func(t *testing.T) {
		setup(t, "environment_id: "+testEnvID+"\n")
		out, err := execute(t, "set-key", "arg-key")
		require.NoError(t, err)
		assert.Contains(t, out, "API key stored for environment "+testEnvID)
		assert.Equal(t, "arg-key", store[testEnvID])
	})

	t.Run("stdin with flag", func(t *testing.T) {
		setup(t, "")
		other := "a7c9f1d2-4b3e-4f5a-9c8d-1e2f3a4b5c6d"
		cmd := NewConfigCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(strings.NewReader("piped-key\n"))
		cmd.SetArgs([]string{"set-key", "--environment-id", other})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "piped-key", store[other])
	})

	t.Run("missing environment", func(t *testing.T) {
		setup(t, "")
		_, err := execute(t, "set-key", "k")
		require.Error(t, err)
		assert.Equal(t, shared.ExitUsageError, shared.ExitCode(err))
	})

	t.Run("invalid environment", func(t *testing.T) {
		setup(t, "")
		_, err := execute(t, "set-key", "k", "--environment-id", "not-a-uuid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid UUID")
	})

	t.Run("empty key", func(t *testing.T) {
		setup(t, "environment_id: "+testEnvID+"\n")
		_, err := execute(t, "set-key", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be empty")
	})
}

func TestConfigShow_KeychainSource(t *testing.T) {
	setup(t, "environment_id: "+testEnvID+"\n")
	require.NoError(t, keyring.Set(config.KeychainService, testEnvID, "keychain-secret"))
	shared.SetJSONForTest(true)

	out, err := execute(t, "show")
	require.NoError(t, err)

	var view configView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "keychain", view.APIKeySource)
	assert.Equal(t, "********cret", view.APIKey)
}
