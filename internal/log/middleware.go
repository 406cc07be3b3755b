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

package log

import (
	"context"
	"log/slog"
	"time"

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

// ToolCall describes an MCP tool invocation for logging purposes.
type ToolCall struct {
	// Tool is the registered tool name (e.g. "get-item-mapi").
	Tool string

	// CorrelationID ties the call to its HTTP request and outbound calls.
	CorrelationID string

	// EnvironmentID is the Kontent.ai environment the call targets.
	EnvironmentID string

	// Transport is stdio, sse or http.
	Transport string
}

// ToolResult is the outcome of a ToolCall.
type ToolResult struct {
	Success bool

	// ErrorType is the error classification when Success is false.
	ErrorType string

	// Error is the error message when Success is false.
	Error string

	DurationMs int64
}

func (c *ToolCall) attrs(event string) []any {
	attrs := []any{
		EventKey, event,
		ToolKey, c.Tool,
	}
	if c.CorrelationID != "" {
		attrs = append(attrs, CorrelationIDKey, c.CorrelationID)
	}
	if c.EnvironmentID != "" {
		attrs = append(attrs, EnvironmentKey, c.EnvironmentID)
	}
	if c.Transport != "" {
		attrs = append(attrs, "transport", c.Transport)
	}
	return attrs
}

// LogToolCall logs an incoming tool call at debug level.
func LogToolCall(ctx context.Context, logger *slog.Logger, call *ToolCall) {
	logger.DebugContext(ctx, "tool call received", call.attrs("tool_call")...)
}

// LogToolResult logs the outcome of a tool call. Failures caused by bad
// input are logged at warn, everything else at error.
func LogToolResult(ctx context.Context, logger *slog.Logger, call *ToolCall, res *ToolResult) {
	attrs := append(call.attrs("tool_result"),
		"success", res.Success,
		DurationKey, res.DurationMs,
	)
	if res.ErrorType != "" {
		attrs = append(attrs, "error_type", res.ErrorType)
	}
	if res.Error != "" {
		attrs = append(attrs, "error", res.Error)
	}

	level := slog.LevelInfo
	message := "tool call completed"
	if !res.Success {
		message = "tool call failed"
		level = slog.LevelError
		if res.ErrorType == "validation" {
			level = slog.LevelWarn
		}
	}

	logger.Log(ctx, level, message, attrs...)
}

// ToolCallMiddleware wraps tool handlers with request/response logging.
type ToolCallMiddleware struct {
	logger *slog.Logger
}

// NewToolCallMiddleware creates a new tool-call logging middleware.
func NewToolCallMiddleware(logger *slog.Logger) *ToolCallMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToolCallMiddleware{logger: logger}
}

// Handle runs handler and logs the call and its result. The handler's error
// is returned unchanged along with the logged result.
func (m *ToolCallMiddleware) Handle(ctx context.Context, call *ToolCall, handler func() error) (*ToolResult, error) {
	start := time.Now()
	LogToolCall(ctx, m.logger, call)

	err := handler()

	res := &ToolResult{
		Success:    err == nil,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		res.ErrorType = kerrors.Classify(err)
		res.Error = err.Error()
	}

	LogToolResult(ctx, m.logger, call, res)
	return res, err
}
