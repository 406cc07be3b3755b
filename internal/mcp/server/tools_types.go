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
	"fmt"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

func (t *toolset) getType(ctx context.Context, args codenameArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetType(ctx, args.Codename)
}

func (t *toolset) listTypes(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListTypes(ctx)
}

func (t *toolset) addType(ctx context.Context, args kontent.ContentType) (any, error) {
	if err := requireValue("name", args.Name); err != nil {
		return nil, err
	}
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.CreateType(ctx, args)
}

type patchTypeArgs struct {
	Codename   string                  `json:"codename" jsonschema:"minLength=1" jsonschema_description:"Codename of the content type to update"`
	Operations kontent.PatchOperations `json:"operations" jsonschema:"minItems=1" jsonschema_description:"Patch operations applied in order. Paths address entities as id:{uuid}, codename:{codename} or external_id:{id}, e.g. /elements/codename:title/name or /elements/codename:body/allowed_blocks"`
}

func (a patchTypeArgs) Validate() error {
	if err := requireValue("codename", a.Codename); err != nil {
		return err
	}
	return a.Operations.Validate()
}

type patchTypeResult struct {
	Message           string                  `json:"message"`
	ContentType       json.RawMessage         `json:"contentType"`
	AppliedOperations kontent.PatchOperations `json:"appliedOperations"`
}

func (t *toolset) patchType(ctx context.Context, args patchTypeArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.PatchType(ctx, args.Codename, args.Operations)
	if err != nil {
		return nil, err
	}
	return patchTypeResult{
		Message:           fmt.Sprintf("Content type '%s' updated successfully with %d operation(s)", args.Codename, len(args.Operations)),
		ContentType:       raw,
		AppliedOperations: args.Operations.Normalized(),
	}, nil
}

type deleteTypeResult struct {
	Message     string          `json:"message"`
	DeletedType json.RawMessage `json:"deletedType"`
}

func (t *toolset) deleteType(ctx context.Context, args codenameArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.DeleteType(ctx, args.Codename)
	if err != nil {
		return nil, err
	}
	return deleteTypeResult{
		Message:     fmt.Sprintf("Content type '%s' deleted successfully", args.Codename),
		DeletedType: raw,
	}, nil
}

func (t *toolset) addSnippet(ctx context.Context, args kontent.Snippet) (any, error) {
	if err := requireValue("name", args.Name); err != nil {
		return nil, err
	}
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.CreateSnippet(ctx, args)
}

func (t *toolset) getSnippet(ctx context.Context, args codenameArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetSnippet(ctx, args.Codename)
}

func (t *toolset) listSnippets(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListSnippets(ctx)
}

func (t *toolset) addTaxonomy(ctx context.Context, args kontent.TaxonomyGroup) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.CreateTaxonomy(ctx, args)
}

func (t *toolset) getTaxonomy(ctx context.Context, args codenameArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetTaxonomy(ctx, args.Codename)
}

func (t *toolset) listTaxonomies(ctx context.Context, _ noArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListTaxonomies(ctx)
}
