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
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tombee/kontent-mcp/internal/config"
	"github.com/tombee/kontent-mcp/internal/delivery"
	"github.com/tombee/kontent-mcp/internal/management"
	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
	"github.com/tombee/kontent-mcp/pkg/kontent"
)

// toolset implements the tool handlers. It holds no per-call state.
type toolset struct {
	cfg        *config.Config
	httpClient *http.Client
	source     string
	delivery   *delivery.Client
	logger     *slog.Logger
	now        func() time.Time
}

// mapi returns a Management API client for the call. Credentials from an
// HTTP request take precedence over the configured ones.
func (t *toolset) mapi(ctx context.Context) (*management.Client, error) {
	apiKey, envID := t.cfg.APIKey, t.cfg.EnvironmentID
	if auth, ok := AuthFromContext(ctx); ok {
		apiKey, envID = auth.Token, auth.EnvironmentID
	}
	if apiKey == "" {
		return nil, &kerrors.ConfigError{Key: "api_key", Reason: "no Management API key configured"}
	}
	if envID == "" {
		return nil, &kerrors.ConfigError{Key: "environment_id", Reason: "no environment id configured"}
	}
	return management.New(t.cfg.ManagementAPIURL, envID, apiKey,
		management.WithHTTPClient(t.httpClient),
		management.WithSource(t.source),
	), nil
}

func (t *toolset) register(r *Registry) error {
	return errors.Join(
		// Context
		Register(r, ToolDef{
			Name:        "get-initial-context",
			Description: "🚨 MANDATORY FIRST STEP: This tool MUST be called before using ANY other tools. It provides essential context, configuration, and operational guidelines for Kontent.ai. If you have not called this tool, do so immediately before proceeding with any other operation.",
			ReadOnly:    true,
		}, t.getInitialContext),
		Register(r, ToolDef{
			Name:        "get-current-datetime",
			Description: "Get the current date and time in UTC (ISO-8601 format)",
			ReadOnly:    true,
		}, t.getCurrentDatetime),

		// Content items
		Register(r, ToolDef{
			Name:        "get-item-mapi",
			Description: "Get Kontent.ai item by codename from Management API",
			Label:       "Content Item Retrieval",
			ReadOnly:    true,
		}, t.getItem),
		Register(r, ToolDef{
			Name:        "get-item-dapi",
			Description: "Get Kontent.ai item by codename from Delivery API",
			Label:       "Delivery Item Retrieval",
			ReadOnly:    true,
		}, t.getDeliveryItem),
		Register(r, ToolDef{
			Name:        "add-content-item-mapi",
			Description: "Add a new content item via Management API. This creates the content item structure but does not add content to language variants. Use upsert-language-variant-mapi to add content to the item.",
			Label:       "Content Item Creation",
		}, t.addContentItem),
		Register(r, ToolDef{
			Name:        "update-content-item-mapi",
			Description: "Update existing Kontent.ai content item by internal ID via Management API. The content item must already exist - this tool will not create new items.",
			Label:       "Content Item Update",
		}, t.updateContentItem),
		Register(r, ToolDef{
			Name:        "delete-content-item-mapi",
			Description: "Delete Kontent.ai content item by internal ID from Management API",
			Label:       "Content Item Deletion",
			Destructive: true,
		}, t.deleteContentItem),

		// Language variants
		Register(r, ToolDef{
			Name:        "get-variant-mapi",
			Description: "Get Kontent.ai language variant of content item from Management API",
			Label:       "Language Variant Retrieval",
			ReadOnly:    true,
		}, t.getVariant),
		Register(r, ToolDef{
			Name:        "upsert-language-variant-mapi",
			Description: "Create or update a language variant of a content item via Management API. This adds actual content to the content item elements. Elements should be provided as JSON string in the format expected by the SDK.",
		}, t.upsertVariant),
		Register(r, ToolDef{
			Name:        "create-variant-version-mapi",
			Description: "Create new version of Kontent.ai language variant via Management API. This operation creates a new version of an existing language variant, useful for content versioning and creating new drafts from published content.",
			Label:       "Variant Version Creation",
		}, t.createVariantVersion),
		Register(r, ToolDef{
			Name:        "delete-language-variant-mapi",
			Description: "Delete Kontent.ai language variant from Management API",
			Label:       "Language Variant Deletion",
			Destructive: true,
		}, t.deleteVariant),
		Register(r, ToolDef{
			Name:        "change-variant-workflow-step-mapi",
			Description: "Change the workflow step of a language variant in Kontent.ai. This operation moves a language variant to a different step in the workflow, enabling content lifecycle management such as moving content from draft to review, review to published, etc.",
			Label:       "Workflow Step Change",
		}, t.changeWorkflowStep),
		Register(r, ToolDef{
			Name:        "filter-variants-mapi",
			Description: "Search and filter Kontent.ai language variants of content items using Management API",
			Label:       "Variant Search",
			ReadOnly:    true,
		}, t.filterVariants),
		Register(r, ToolDef{
			Name:        "publish-variant-mapi",
			Description: publishDescription,
			Label:       "Publish/Schedule Language Variant",
		}, t.publishVariant),
		Register(r, ToolDef{
			Name:        "unpublish-variant-mapi",
			Description: unpublishDescription,
			Label:       "Unpublish/Schedule Unpublishing Language Variant",
		}, t.unpublishVariant),

		// Content types
		Register(r, ToolDef{
			Name:        "get-type-mapi",
			Description: "Get content type by codename from Management API",
			Label:       "Content Type Retrieval",
			ReadOnly:    true,
		}, t.getType),
		Register(r, ToolDef{
			Name:        "list-content-types-mapi",
			Description: "Get all content types from Management API",
			Label:       "Content Types Listing",
			ReadOnly:    true,
		}, t.listTypes),
		Register(r, ToolDef{
			Name:        "add-content-type-mapi",
			Description: "Add a new content type via Management API",
			Label:       "Content Type Creation",
		}, t.addType),
		Register(r, ToolDef{
			Name:        "patch-content-type-mapi",
			Description: "Update an existing Kontent.ai content type by codename via Management API. Supports move, addInto, remove, and replace operations following RFC 6902 JSON Patch specification.",
			Label:       "Content Type Patch",
		}, t.patchType),
		Register(r, ToolDef{
			Name:        "delete-content-type-mapi",
			Description: "Delete a content type by codename from Management API",
			Label:       "Content Type Deletion",
			Destructive: true,
		}, t.deleteType),

		// Snippets
		Register(r, ToolDef{
			Name:        "add-content-type-snippet-mapi",
			Description: "Add a new content type snippet via Management API",
			Label:       "Content Type Snippet Creation",
		}, t.addSnippet),
		Register(r, ToolDef{
			Name:        "get-type-snippet-mapi",
			Description: "Get content type snippet by codename from Management API",
			Label:       "Content Type Snippet Retrieval",
			ReadOnly:    true,
		}, t.getSnippet),
		Register(r, ToolDef{
			Name:        "list-content-type-snippets-mapi",
			Description: "Get all content type snippets from Management API",
			Label:       "Content Type Snippets Listing",
			ReadOnly:    true,
		}, t.listSnippets),

		// Taxonomies
		Register(r, ToolDef{
			Name:        "add-taxonomy-group-mapi",
			Description: "Add new Kontent.ai taxonomy group via Management API",
			Label:       "Taxonomy Group Creation",
		}, t.addTaxonomy),
		Register(r, ToolDef{
			Name:        "get-taxonomy-group-mapi",
			Description: "Get taxonomy group by codename from Management API",
			Label:       "Taxonomy Group Retrieval",
			ReadOnly:    true,
		}, t.getTaxonomy),
		Register(r, ToolDef{
			Name:        "list-taxonomy-groups-mapi",
			Description: "Get all taxonomy groups from Management API",
			Label:       "Taxonomy Groups Listing",
			ReadOnly:    true,
		}, t.listTaxonomies),

		// Environment
		Register(r, ToolDef{
			Name:        "list-languages-mapi",
			Description: "Get all languages from Management API",
			Label:       "Languages Listing",
			ReadOnly:    true,
		}, t.listLanguages),
		Register(r, ToolDef{
			Name:        "get-asset-mapi",
			Description: "Get a specific asset by codename from Management API",
			Label:       "Asset Retrieval",
			ReadOnly:    true,
		}, t.getAsset),
		Register(r, ToolDef{
			Name:        "list-assets-mapi",
			Description: "Get all assets from Management API",
			Label:       "Assets Listing",
			ReadOnly:    true,
		}, t.listAssets),
		Register(r, ToolDef{
			Name:        "list-workflows-mapi",
			Description: "Get all Kontent.ai workflows from Management API. Workflows define the content lifecycle stages and transitions between them.",
			Label:       "Workflows Listing",
			ReadOnly:    true,
		}, t.listWorkflows),
	)
}

// noArgs is the argument type of tools without parameters.
type noArgs struct{}

func requireValue(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &kerrors.ValidationError{Field: field, Message: "must not be empty"}
	}
	return nil
}

func requireUUID(field, value string) error {
	if !kontent.IsUUID(value) {
		return &kerrors.ValidationError{
			Field:   field,
			Message: "must be a valid UUID, got " + quote(value),
		}
	}
	return nil
}

func quote(s string) string {
	return "'" + s + "'"
}
