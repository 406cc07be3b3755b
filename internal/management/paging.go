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
	"fmt"
	"net/http"
)

// ContinuationHeader carries the paging token on list and filter calls.
const ContinuationHeader = "X-Continuation"

// maxPages bounds a listing in case the API keeps returning tokens.
const maxPages = 1000

type page struct {
	Pagination struct {
		ContinuationToken string `json:"continuation_token"`
	} `json:"pagination"`
}

// listAll follows continuation tokens and returns the concatenated entries
// stored under key in each page, as a JSON array.
func (c *Client) listAll(ctx context.Context, key string, segments ...string) (json.RawMessage, error) {
	all := []json.RawMessage{}
	token := ""
	for range maxPages {
		r := request{method: http.MethodGet, url: c.endpoint(segments...)}
		if token != "" {
			r.headers = map[string]string{ContinuationHeader: token}
		}
		resp, err := c.do(ctx, r)
		if err != nil {
			return nil, err
		}

		var entries map[string]json.RawMessage
		if err := json.Unmarshal(resp.Body, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode %s page: %w", key, err)
		}
		var items []json.RawMessage
		if raw, ok := entries[key]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", key, err)
			}
		}
		all = append(all, items...)

		var p page
		if err := json.Unmarshal(resp.Body, &p); err != nil {
			return nil, fmt.Errorf("failed to decode pagination: %w", err)
		}
		if p.Pagination.ContinuationToken == "" {
			return json.Marshal(all)
		}
		token = p.Pagination.ContinuationToken
	}
	return nil, fmt.Errorf("listing %s: more than %d pages", key, maxPages)
}
