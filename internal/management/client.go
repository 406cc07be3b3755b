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

// Package management is a thin client for the Kontent.ai Management API v2.
// Responses are returned as raw JSON so tool output mirrors the API exactly.
package management

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/kontent-mcp/internal/log"
	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

// SourceHeader identifies the calling integration to Kontent.ai.
const SourceHeader = "X-KC-SOURCE"

// Client calls the Management API for one environment with one API key.
// It is cheap to construct; the HTTP client is shared.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	environmentID string
	apiKey        string
	source        string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSource sets the X-KC-SOURCE value, "kontent-mcp;<version>".
func WithSource(source string) Option {
	return func(c *Client) {
		c.source = source
	}
}

// New creates a client for baseURL (e.g. https://manage.kontent.ai/v2).
func New(baseURL, environmentID, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:    http.DefaultClient,
		baseURL:       strings.TrimRight(baseURL, "/"),
		environmentID: environmentID,
		apiKey:        apiKey,
		source:        "kontent-mcp;dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnvironmentID returns the environment this client targets.
func (c *Client) EnvironmentID() string {
	return c.environmentID
}

// endpoint joins escaped path segments under the environment root.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/projects/")
	b.WriteString(url.PathEscape(c.environmentID))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

// request describes one Management API call.
type request struct {
	method  string
	url     string
	body    any
	headers map[string]string
}

// response is a successful reply. Body is nil for 204 No Content.
type response struct {
	Body   json.RawMessage
	Header http.Header
}

var tracer = otel.Tracer("kontent-mcp/management")

// do sends the request and maps non-2xx replies to *errors.APIError or
// *errors.HTTPError.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	ctx, span := tracer.Start(ctx, "mapi "+r.method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", r.method),
		attribute.String("kontent.environment_id", c.environmentID),
	)

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		log.Trace(ctx, slog.Default(), "mapi request body", slog.String("method", r.method), slog.String("body", string(data)))
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set(SourceHeader, c.source)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s %s: %w", r.method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := DecodeError(resp)
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Trace(ctx, slog.Default(), "mapi response body", slog.Int("status", resp.StatusCode), slog.String("body", string(data)))

	out := &response{Header: resp.Header}
	if len(bytes.TrimSpace(data)) > 0 {
		if !json.Valid(data) {
			return nil, &kerrors.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: data}
		}
		out.Body = data
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, segments ...string) (json.RawMessage, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(segments...)})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method string, body any, segments ...string) (json.RawMessage, error) {
	resp, err := c.do(ctx, request{method: method, url: c.endpoint(segments...), body: body})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// errorEnvelope is the Kontent.ai error body.
type errorEnvelope struct {
	Message          string               `json:"message"`
	RequestID        string               `json:"request_id"`
	ErrorCode        int                  `json:"error_code"`
	ValidationErrors []kerrors.FieldError `json:"validation_errors"`
}

// DecodeError reads a failed response. Bodies carrying the Kontent.ai error
// envelope (a request id or error code) become *errors.APIError; anything
// else becomes *errors.HTTPError with the raw body.
func DecodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && (env.RequestID != "" || env.ErrorCode != 0) {
		return &kerrors.APIError{
			StatusCode:       resp.StatusCode,
			ErrorCode:        env.ErrorCode,
			Message:          env.Message,
			RequestID:        env.RequestID,
			ValidationErrors: env.ValidationErrors,
		}
	}
	return &kerrors.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       data,
	}
}
