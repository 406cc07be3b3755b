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

package delivery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

const envID = "2548121d-cad8-4458-a910-5e4b1b7d6f2e"

func TestClient_Item(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"item":{"system":{"codename":"on_roasts"},"elements":{}},"modular_content":{}}`)
	}))
	defer server.Close()

	c := New(server.URL+"/", WithHTTPClient(server.Client()))
	item, err := c.Item(context.Background(), envID, "on_roasts")
	require.NoError(t, err)

	assert.Equal(t, "/"+envID+"/items/on_roasts", gotPath)
	assert.Empty(t, gotAuth)
	assert.JSONEq(t, `{"system":{"codename":"on_roasts"},"elements":{}}`, string(item))
}

func TestClient_ItemNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"The requested content item 'nope' was not found.","request_id":"abc","error_code":100,"specific_code":0}`)
	}))
	defer server.Close()

	_, err := New(server.URL, WithHTTPClient(server.Client())).Item(context.Background(), envID, "nope")
	var apiErr *kerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, 100, apiErr.ErrorCode)
	assert.True(t, kerrors.IsNotFound(err))
}

func TestClient_ItemInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer server.Close()

	_, err := New(server.URL, WithHTTPClient(server.Client())).Item(context.Background(), envID, "x")
	assert.ErrorContains(t, err, "failed to decode delivery response")
}
