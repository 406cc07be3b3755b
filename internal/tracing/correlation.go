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

	"github.com/google/uuid"
)

// CorrelationID ties together the log lines and outbound calls made while
// serving one request. Valid ids are RFC 4122 UUIDs.
type CorrelationID string

type correlationKeyType struct{}

var correlationKey = correlationKeyType{}

const (
	// HeaderCorrelationID is read from requests and written to responses
	// and outbound calls.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted on incoming requests as a fallback.
	HeaderRequestID = "X-Request-ID"
)

// NewCorrelationID generates a random id.
func NewCorrelationID() CorrelationID {
	return CorrelationID(uuid.New().String())
}

// String returns the id as a string.
func (c CorrelationID) String() string {
	return string(c)
}

// IsValid reports whether the id is a canonical 36-character UUID.
func (c CorrelationID) IsValid() bool {
	if len(c) != 36 {
		return false
	}
	_, err := uuid.Parse(string(c))
	return err == nil
}

// ToContext stores the id in ctx.
func ToContext(ctx context.Context, id CorrelationID) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// FromContext returns the id stored in ctx, or a new one when there is none.
func FromContext(ctx context.Context) CorrelationID {
	if id, ok := ctx.Value(correlationKey).(CorrelationID); ok {
		return id
	}
	return NewCorrelationID()
}

// FromContextOrEmpty returns the id stored in ctx, or "".
func FromContextOrEmpty(ctx context.Context) CorrelationID {
	if id, ok := ctx.Value(correlationKey).(CorrelationID); ok {
		return id
	}
	return ""
}

// EnsureContext returns ctx unchanged when it already carries an id,
// otherwise a child context with a new one.
func EnsureContext(ctx context.Context) (context.Context, CorrelationID) {
	if id := FromContextOrEmpty(ctx); id != "" {
		return ctx, id
	}
	id := NewCorrelationID()
	return ToContext(ctx, id), id
}

// ExtractFromRequest returns the first valid id found in the request
// headers, checking X-Correlation-ID before X-Request-ID.
func ExtractFromRequest(r *http.Request) (CorrelationID, bool) {
	for _, header := range []string{HeaderCorrelationID, HeaderRequestID} {
		if id := CorrelationID(r.Header.Get(header)); id.IsValid() {
			return id, true
		}
	}
	return "", false
}

// CorrelationMiddleware attaches a correlation id to each request context
// and echoes it on the response. Malformed incoming ids are replaced rather
// than rejected.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := ExtractFromRequest(r)
		if !ok {
			id = NewCorrelationID()
		}
		w.Header().Set(HeaderCorrelationID, id.String())
		next.ServeHTTP(w, r.WithContext(ToContext(r.Context(), id)))
	})
}
