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

// GetItem fetches a content item by internal id.
func (c *Client) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "items", url.PathEscape(id))
}

// GetItemByCodename fetches a content item by codename.
func (c *Client) GetItemByCodename(ctx context.Context, codename string) (json.RawMessage, error) {
	return c.get(ctx, "items", "codename", url.PathEscape(codename))
}

// CreateItem adds a content item.
func (c *Client) CreateItem(ctx context.Context, item kontent.ContentItemCreate) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, item, "items")
}

// UpsertItem updates a content item by id. The API creates the item when
// the id is unknown; callers that must not create check existence first.
func (c *Client) UpsertItem(ctx context.Context, id string, update kontent.ContentItemUpdate) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, update, "items", url.PathEscape(id))
}

// DeleteItem removes a content item and all its variants.
func (c *Client) DeleteItem(ctx context.Context, id string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodDelete, nil, "items", url.PathEscape(id))
}

func variantPath(itemID, languageID string, action ...string) []string {
	return append([]string{"items", url.PathEscape(itemID), "variants", url.PathEscape(languageID)}, action...)
}

// GetVariant fetches the language variant of an item.
func (c *Client) GetVariant(ctx context.Context, itemID, languageID string) (json.RawMessage, error) {
	return c.get(ctx, variantPath(itemID, languageID)...)
}

// UpsertVariant creates or updates a language variant addressed by item
// and language codenames.
func (c *Client) UpsertVariant(ctx context.Context, itemCodename, languageCodename string, v kontent.VariantUpsert) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, v,
		"items", "codename", url.PathEscape(itemCodename),
		"variants", "codename", url.PathEscape(languageCodename))
}

// DeleteVariant removes a language variant.
func (c *Client) DeleteVariant(ctx context.Context, itemID, languageID string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodDelete, nil, variantPath(itemID, languageID)...)
}

// CreateNewVersion starts a new draft version of a published variant.
func (c *Client) CreateNewVersion(ctx context.Context, itemID, languageID string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, nil, variantPath(itemID, languageID, "new-version")...)
}

type changeWorkflowRequest struct {
	Workflow kontent.Reference `json:"workflow_identifier"`
	Step     kontent.Reference `json:"step_identifier"`
}

// ChangeWorkflowStep moves a variant to a step of the given workflow.
func (c *Client) ChangeWorkflowStep(ctx context.Context, itemID, languageID, workflowID, stepID string) (json.RawMessage, error) {
	body := changeWorkflowRequest{
		Workflow: kontent.ByID(workflowID),
		Step:     kontent.ByID(stepID),
	}
	return c.send(ctx, http.MethodPut, body, variantPath(itemID, languageID, "change-workflow")...)
}

// Publish publishes a variant now, or at s.ScheduledTo when set.
func (c *Client) Publish(ctx context.Context, itemID, languageID string, s kontent.Schedule) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, scheduleBody(s), variantPath(itemID, languageID, "publish")...)
}

// Unpublish unpublishes and archives a variant now, or at s.ScheduledTo.
func (c *Client) Unpublish(ctx context.Context, itemID, languageID string, s kontent.Schedule) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, scheduleBody(s), variantPath(itemID, languageID, "unpublish-and-archive")...)
}

// scheduleBody returns nil for an immediate action so no body is sent.
func scheduleBody(s kontent.Schedule) any {
	if !s.IsScheduled() {
		return nil
	}
	return s
}
