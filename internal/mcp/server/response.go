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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

// messageError is reported to the client verbatim, without the tool's
// error label.
type messageError struct {
	text string
	err  error
}

func (e *messageError) Error() string { return e.text }
func (e *messageError) Unwrap() error { return e.err }

// ErrorType implements ErrorClassifier.
func (e *messageError) ErrorType() string {
	if e.err != nil {
		return kerrors.Classify(e.err)
	}
	return "validation"
}

// IsRetryable implements ErrorClassifier.
func (e *messageError) IsRetryable() bool { return false }

// rawText is a success payload returned as-is rather than as JSON.
type rawText string

// successResult renders payload as two-space indented JSON.
func successResult(payload any) *mcp.CallToolResult {
	if text, ok := payload.(rawText); ok {
		return textResponse(string(text))
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResponse(fmt.Sprintf("Unexpected error: failed to encode response: %v", err))
	}
	return textResponse(string(data))
}

// formatError renders err for the client. label names the operation
// (e.g. "Content Type Patch") and prefixes every message except those of
// a messageError.
func formatError(label string, err error) string {
	prefix := ""
	if label != "" {
		prefix = label + ": "
	}

	var msgErr *messageError
	if errors.As(err, &msgErr) {
		return msgErr.text
	}

	var apiErr *kerrors.APIError
	if errors.As(err, &apiErr) {
		return prefix + formatAPIError(apiErr)
	}

	var httpErr *kerrors.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%sHTTP Error %d: %s\n\nResponse: %s",
			prefix, httpErr.StatusCode, httpErr.StatusText(), responseBody(httpErr.Body))
	}

	var valErr *kerrors.ValidationError
	if errors.As(err, &valErr) {
		if valErr.Field == "" {
			return prefix + valErr.Message
		}
		return prefix + valErr.Field + ": " + valErr.Message
	}

	switch kerrors.Classify(err) {
	case "validation", "config":
		return prefix + err.Error()
	}

	return fmt.Sprintf("%sUnexpected error: %s\n\nFull error: %T: %+v", prefix, err.Error(), err, err)
}

func formatAPIError(e *kerrors.APIError) string {
	message := e.Message
	if message == "" {
		message = "Unknown API error"
	}
	lines := []string{
		"Kontent.ai Management API Error:",
		"Message: " + message,
	}
	if e.ErrorCode != 0 {
		lines = append(lines, fmt.Sprintf("Error Code: %d", e.ErrorCode))
	}
	if e.RequestID != "" {
		lines = append(lines, "Request ID: "+e.RequestID)
	}
	text := strings.Join(lines, "\n")

	if len(e.ValidationErrors) > 0 {
		details := make([]string, 0, len(e.ValidationErrors))
		for _, ve := range e.ValidationErrors {
			msg := ve.Message
			if msg == "" {
				raw, _ := json.Marshal(ve)
				msg = string(raw)
			}
			details = append(details, "- "+msg)
		}
		text += "\n\nValidation Errors:\n" + strings.Join(details, "\n")
	}
	return text
}

// responseBody renders an error body as compact JSON; bodies that are not
// JSON become a JSON string.
func responseBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	quoted, _ := json.Marshal(string(body))
	return string(quoted)
}

func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
