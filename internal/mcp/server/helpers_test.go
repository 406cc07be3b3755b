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

package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tombee/kontent-mcp/internal/config"
)

const (
	testEnvID  = "14372844-0a5d-434a-8423-605b8a631623"
	testItemID = "f4b3fc05-e988-4dae-9ac1-a94aba566474"
	testLangID = "00000000-0000-0000-0000-000000000000"
	testAPIKey = "secret-key"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

type recorded struct {
	method string
	path   string
	header http.Header
	body   string
}

// fakeAPI serves canned responses keyed by "METHOD path" and records every
// request it receives.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server
	routes map[string]http.HandlerFunc

	mu    sync.Mutex
	calls []recorded
}

func newFakeAPI(t *testing.T, routes map[string]http.HandlerFunc) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, routes: routes}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.EscapedPath()
	f.mu.Lock()
	f.calls = append(f.calls, recorded{method: r.Method, path: r.URL.EscapedPath(), header: r.Header.Clone(), body: string(body)})
	f.mu.Unlock()

	handler, ok := f.routes[key]
	if !ok {
		f.t.Errorf("unexpected request %s", key)
		w.WriteHeader(http.StatusTeapot)
		return
	}
	handler(w, r)
}

func (f *fakeAPI) requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.calls...)
}

// mapiPath returns the Management API path of segments in the test
// environment.
func mapiPath(segments string) string {
	return "/v2/projects/" + testEnvID + "/" + segments
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func testConfig(apiURL string) *config.Config {
	cfg := config.Default()
	cfg.APIKey = testAPIKey
	cfg.EnvironmentID = testEnvID
	cfg.ManagementAPIURL = apiURL + "/v2"
	cfg.DeliveryAPIURL = apiURL + "/deliver"
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(ServerConfig{
		Name:       "test-server",
		Version:    "1.2.3",
		Config:     cfg,
		HTTPClient: http.DefaultClient,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	return s
}

// call runs a tool against a fresh server backed by api.
func call(t *testing.T, api *fakeAPI, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	url := ""
	if api != nil {
		url = api.server.URL
	}
	s := newTestServer(t, testConfig(url))
	return s.Registry().Call(t.Context(), tool, args)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("result has %d content entries, want 1", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return text.Text
}
