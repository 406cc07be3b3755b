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

package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ValidationError represents input that failed local validation.
// Returned before any request leaves the process.
type ValidationError struct {
	// Field is the dotted path of the offending input (e.g. "elements[2].mode")
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// NotFoundError represents a resource the API reported as missing.
type NotFoundError struct {
	// Resource is the kind of entity (e.g. "content item", "content type")
	Resource string

	// ID is the identifier that was not found
	ID string

	Cause error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *NotFoundError) ErrorType() string { return "not_found" }

// IsRetryable implements ErrorClassifier.
func (e *NotFoundError) IsRetryable() bool { return false }

// FieldError is a single entry of a Kontent.ai validation_errors array.
type FieldError struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// APIError is a structured error returned by the Kontent.ai Management or
// Delivery API. It is recognised by the presence of a request id in the
// response envelope.
type APIError struct {
	// StatusCode is the HTTP status of the failed response
	StatusCode int

	// ErrorCode is the API-specific numeric code
	ErrorCode int

	// Message is the API's own description of the failure
	Message string

	// RequestID correlates this error with Kontent.ai logs
	RequestID string

	// ValidationErrors lists per-field problems reported by the API
	ValidationErrors []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := "kontent.ai api error"
	if e.ErrorCode > 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.ErrorCode)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}
	return msg
}

// ErrorType implements ErrorClassifier.
func (e *APIError) ErrorType() string { return "api" }

// IsRetryable implements ErrorClassifier.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPError is a failed response whose body did not carry the API error
// envelope (proxies, gateways, HTML error pages).
type HTTPError struct {
	StatusCode int

	// Status is the status text; empty when the server sent none
	Status string

	// Body is the raw response body
	Body []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Error %d: %s", e.StatusCode, e.StatusText())
}

// StatusText returns the reason phrase, falling back to a generic one.
func (e *HTTPError) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprintf("%d", e.StatusCode)))
	if text == "" {
		return "Unknown HTTP error"
	}
	return text
}

// ErrorType implements ErrorClassifier.
func (e *HTTPError) ErrorType() string { return "http" }

// IsRetryable implements ErrorClassifier.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ConfigError represents configuration problems.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g. "api_key")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements UserVisibleError.
func (e *ConfigError) IsUserVisible() bool { return true }

// UserMessage implements UserVisibleError.
func (e *ConfigError) UserMessage() string { return e.Error() }

// Suggestion implements UserVisibleError.
func (e *ConfigError) Suggestion() string {
	switch e.Key {
	case "api_key":
		return "Set KONTENT_API_KEY or run 'kontent-mcp config set-key'"
	case "environment_id":
		return "Set KONTENT_ENVIRONMENT_ID to your Kontent.ai environment id"
	}
	return ""
}

// ErrorType implements ErrorClassifier.
func (e *ConfigError) ErrorType() string { return "config" }

// IsRetryable implements ErrorClassifier.
func (e *ConfigError) IsRetryable() bool { return false }
