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
	"encoding/json"
	"log/slog"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

func (t *toolset) listLanguages(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListLanguages(ctx)
}

type assetArgs struct {
	AssetCodename string `json:"assetCodename" jsonschema:"minLength=1" jsonschema_description:"Codename of the asset"`
}

func (a assetArgs) Validate() error { return requireValue("assetCodename", a.AssetCodename) }

func (t *toolset) getAsset(ctx context.Context, args assetArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetAssetByCodename(ctx, args.AssetCodename)
}

func (t *toolset) listAssets(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListAssets(ctx)
}

// listWorkflows returns the workflows as the API sent them. A response that
// does not match the workflow shape is logged and still returned.
func (t *toolset) listWorkflows(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := kontent.ParseWorkflows(raw); err != nil {
		t.logger.WarnContext(ctx, "workflow response did not match the expected shape",
			slog.Any("error", err))
	}
	return json.RawMessage(raw), nil
}
