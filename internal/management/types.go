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

package management

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

// GetType fetches a content type by codename.
func (c *Client) GetType(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.get(ctx, "types", "codename", url.PathEscape(codename))
}

// ListTypes returns every content type in the environment.
func (c *Client) ListTypes(ctx context.Context) (json.RawMessage, error) {
	return c.listAll(ctx, "types", "types")
}

// CreateType adds a content type.
func (c *Client) CreateType(ctx context.Context, ct kontent.ContentType) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, ct, "types")
}

// PatchType applies patch operations to a content type, in order.
func (c *Client) PatchType(ctx context.Context, codename string, ops kontent.PatchOperations) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPatch, ops.Normalized(), "types", "codename", url.PathEscape(codename))
}

// DeleteType removes a content type. The API replies 204 so the returned
// body is nil.
func (c *Client) DeleteType(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodDelete, nil, "types", "codename", url.PathEscape(codename))
}

// GetSnippet fetches a content type snippet by codename.
func (c *Client) GetSnippet(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.get(ctx, "snippets", "codename", url.PathEscape(codename))
}

// ListSnippets returns every content type snippet.
func (c *Client) ListSnippets(ctx context.Context) (json.RawMessage, error) {
	return c.listAll(ctx, "snippets", "snippets")
}

// CreateSnippet adds a content type snippet.
func (c *Client) CreateSnippet(ctx context.Context, s kontent.Snippet) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, s, "snippets")
}

// GetTaxonomy fetches a taxonomy group by codename.
func (c *Client) GetTaxonomy(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.get(ctx, "taxonomies", "codename", url.PathEscape(codename))
}

// ListTaxonomies returns every taxonomy group.
func (c *Client) ListTaxonomies(ctx context.Context) (json.RawMessage, error) {
	return c.listAll(ctx, "taxonomies", "taxonomies")
}

// CreateTaxonomy adds a taxonomy group with its term tree.
func (c *Client) CreateTaxonomy(ctx context.Context, g kontent.TaxonomyGroup) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, g, "taxonomies")
}
