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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

// Auth carries the credentials of one HTTP request in multi-tenant mode.
type Auth struct {
	// Token is the Management API key from the Authorization header
	Token string

	// EnvironmentID is taken from the request path
	EnvironmentID string
}

type authKey struct{}

// WithAuth returns a context carrying a.
func WithAuth(ctx context.Context, a Auth) context.Context {
	return context.WithValue(ctx, authKey{}, a)
}

// AuthFromContext returns the request credentials, if any.
func AuthFromContext(ctx context.Context) (Auth, bool) {
	a, ok := ctx.Value(authKey{}).(Auth)
	return a, ok
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// checkAPIKey rejects Management API keys that are JWTs past their expiry.
// Keys that are not JWTs are left for the API to judge.
func checkAPIKey(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if !exp.After(now) {
		return fmt.Errorf("API key expired at %s", exp.UTC().Format(time.RFC3339))
	}
	return nil
}

// requireAuth validates the environment id path segment and the bearer
// token and stores both in the request context.
func requireAuth(next http.Handler, now func() time.Time) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envID := r.PathValue("environmentId")
		if !kontent.IsUUID(envID) {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid environment id %q: must be a UUID", envID))
			return
		}
		token, ok := BearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="kontent-mcp"`)
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if err := checkAPIKey(token, now()); err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="kontent-mcp", error="invalid_token"`)
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := WithAuth(r.Context(), Auth{Token: token, EnvironmentID: envID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
