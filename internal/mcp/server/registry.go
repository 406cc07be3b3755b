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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/kontent-mcp/internal/log"
	"github.com/tombee/kontent-mcp/internal/tracing"
	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

var tracer = otel.Tracer("kontent-mcp/mcp")

// ToolDef describes a tool independently of its argument type.
type ToolDef struct {
	Name        string
	Description string

	// Label prefixes error messages (e.g. "Content Type Patch")
	Label string

	ReadOnly    bool
	Destructive bool
}

// Tool is a registered tool with its reflected input schema.
type Tool struct {
	ToolDef

	// Schema is the JSON Schema of the arguments object
	Schema json.RawMessage

	required []string
	invoke   func(ctx context.Context, raw json.RawMessage) (any, error)
}

// Descriptor returns the MCP tool descriptor.
func (t *Tool) Descriptor() mcp.Tool {
	return mcp.Tool{
		Name:           t.Name,
		Description:    t.Description,
		RawInputSchema: t.Schema,
		Annotations: mcp.ToolAnnotation{
			ReadOnlyHint:    mcp.ToBoolPtr(t.ReadOnly),
			DestructiveHint: mcp.ToBoolPtr(t.Destructive),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		},
	}
}

// Registry holds the tools and dispatches calls to them. It is safe for
// concurrent use once registration is complete.
type Registry struct {
	tools      map[string]*Tool
	logger     *slog.Logger
	middleware *log.ToolCallMiddleware
	metrics    *tracing.ToolMetrics
	transport  string
}

// NewRegistry creates an empty registry. metrics may be nil.
func NewRegistry(logger *slog.Logger, metrics *tracing.ToolMetrics, transport string) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:      make(map[string]*Tool),
		logger:     logger,
		middleware: log.NewToolCallMiddleware(logger),
		metrics:    metrics,
		transport:  transport,
	}
}

// Register adds a tool whose arguments decode into A. The input schema is
// reflected from A. If A has a Validate() error method it runs after
// decoding and before handler.
func Register[A any](r *Registry, def ToolDef, handler func(ctx context.Context, args A) (any, error)) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %q is already registered", def.Name)
	}
	schema, required, err := reflectArgs[A]()
	if err != nil {
		return fmt.Errorf("tool %q: %w", def.Name, err)
	}

	t := &Tool{ToolDef: def, Schema: schema, required: required}
	t.invoke = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decodeArgs[A](raw, t.required)
		if err != nil {
			return nil, err
		}
		return handler(ctx, args)
	}
	r.tools[def.Name] = t
	return nil
}

// Tools returns the registered tools sorted by name.
func (r *Registry) Tools() []*Tool {
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Call runs the named tool with arguments (a JSON-compatible value) and
// renders the outcome. Failures are reported in the result, never as a Go
// error.
func (r *Registry) Call(ctx context.Context, name string, arguments any) *mcp.CallToolResult {
	t, ok := r.tools[name]
	if !ok {
		return errorResponse(fmt.Sprintf("Unknown tool: %s", name))
	}

	ctx, cid := tracing.EnsureContext(ctx)
	ctx, span := tracer.Start(ctx, "tool "+name, trace.WithAttributes(
		attribute.String("mcp.tool", name),
		attribute.String("correlation_id", cid.String()),
	))
	defer span.End()

	call := &log.ToolCall{
		Tool:          name,
		CorrelationID: cid.String(),
		Transport:     r.transport,
	}
	if auth, ok := AuthFromContext(ctx); ok {
		call.EnvironmentID = auth.EnvironmentID
	}

	start := time.Now()
	r.metrics.CallStarted(ctx, name)

	var payload any
	_, err := r.middleware.Handle(ctx, call, func() error {
		raw, err := json.Marshal(arguments)
		if err != nil {
			return &kerrors.ValidationError{Message: fmt.Sprintf("invalid arguments: %v", err)}
		}
		payload, err = t.run(ctx, raw)
		return err
	})

	outcome := tracing.OutcomeSuccess
	if err != nil {
		outcome = kerrors.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	r.metrics.CallFinished(ctx, name, outcome, time.Since(start))

	if err != nil {
		return errorResponse(formatError(t.Label, err))
	}
	return successResult(payload)
}

// run invokes the tool, turning a panic into an error.
func (t *Tool) run(ctx context.Context, raw json.RawMessage) (payload any, err error) {
	defer func() {
		if p := recover(); p != nil {
			slog.Default().Error("tool panicked",
				slog.String(log.ToolKey, t.Name),
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())))
			payload = nil
			err = fmt.Errorf("internal error in %s: %v", t.Name, p)
		}
	}()
	return t.invoke(ctx, raw)
}

// decodeArgs decodes raw into A, rejecting unknown members and missing
// required ones, then runs A's Validate method if it has one.
func decodeArgs[A any](raw json.RawMessage, required []string) (A, error) {
	var args A
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return args, &kerrors.ValidationError{Message: "invalid arguments: expected a JSON object"}
	}
	for _, name := range required {
		if _, ok := members[name]; !ok {
			return args, &kerrors.ValidationError{Field: name, Message: "is required"}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		if kerrors.Classify(err) == "validation" {
			return args, err
		}
		return args, &kerrors.ValidationError{Message: fmt.Sprintf("invalid arguments: %v", err)}
	}

	if v, ok := any(args).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return args, err
		}
	}
	return args, nil
}
