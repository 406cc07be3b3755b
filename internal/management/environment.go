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

// ListLanguages returns every language of the environment.
func (c *Client) ListLanguages(ctx context.Context) (json.RawMessage, error) {
	return c.listAll(ctx, "languages", "languages")
}

// GetAssetByCodename fetches an asset by codename.
func (c *Client) GetAssetByCodename(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.get(ctx, "assets", "codename", url.PathEscape(codename))
}

// ListAssets returns every asset.
func (c *Client) ListAssets(ctx context.Context) (json.RawMessage, error) {
	return c.listAll(ctx, "assets", "assets")
}

// ListWorkflows returns the workflows. The endpoint is not paged.
func (c *Client) ListWorkflows(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "workflows")
}

// FilterVariants runs a variant search. A non-empty continuation token
// requests the next page of a previous search.
func (c *Client) FilterVariants(ctx context.Context, filter kontent.FilterRequest, continuation string) (json.RawMessage, error) {
	r := request{
		method: http.MethodPost,
		url:    c.endpoint("early-access", "variants", "filter"),
		body:   filter,
	}
	if continuation != "" {
		r.headers = map[string]string{ContinuationHeader: continuation}
	}
	resp, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
