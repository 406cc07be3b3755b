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

package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

func TestNewCorrelationID(t *testing.T) {
	id1 := NewCorrelationID()
	id2 := NewCorrelationID()

	assert.True(t, id1.IsValid())
	assert.Len(t, id1.String(), 36)
	assert.NotEqual(t, id1, id2)
}

func TestCorrelationID_IsValid(t *testing.T) {
	tests := []struct {
		id    CorrelationID
		valid bool
	}{
		{validID, true},
		{"3F2504E0-4F89-41D3-9A0C-0305E82C3301", true},
		{"", false},
		{"not-a-uuid", false},
		{"3f2504e04f8941d39a0c0305e82c3301", false},
		{"{3f2504e0-4f89-41d3-9a0c-0305e82c3301}", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.id.IsValid())
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := ToContext(context.Background(), validID)

	assert.Equal(t, CorrelationID(validID), FromContext(ctx))
	assert.Equal(t, CorrelationID(validID), FromContextOrEmpty(ctx))
	assert.Empty(t, FromContextOrEmpty(context.Background()))
	assert.True(t, FromContext(context.Background()).IsValid())
}

func TestEnsureContext(t *testing.T) {
	ctx, id := EnsureContext(context.Background())
	require.True(t, id.IsValid())
	assert.Equal(t, id, FromContextOrEmpty(ctx))

	same, again := EnsureContext(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)
}

func TestExtractFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    CorrelationID
		found   bool
	}{
		{"none", nil, "", false},
		{"correlation header", map[string]string{HeaderCorrelationID: validID}, validID, true},
		{"request id fallback", map[string]string{HeaderRequestID: validID}, validID, true},
		{
			name: "invalid correlation falls back",
			headers: map[string]string{
				HeaderCorrelationID: "abc",
				HeaderRequestID:     validID,
			},
			want:  validID,
			found: true,
		},
		{"invalid only", map[string]string{HeaderRequestID: "req-1"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			got, found := ExtractFromRequest(req)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCorrelationMiddleware(t *testing.T) {
	var seen CorrelationID
	handler := CorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContextOrEmpty(r.Context())
	}))

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set(HeaderCorrelationID, validID)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, CorrelationID(validID), seen)
		assert.Equal(t, validID, rec.Header().Get(HeaderCorrelationID))
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set(HeaderCorrelationID, "bogus")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, seen.IsValid())
		assert.Equal(t, seen.String(), rec.Header().Get(HeaderCorrelationID))
	})
}
