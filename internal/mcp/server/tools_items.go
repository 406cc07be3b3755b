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

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
	"github.com/tombee/kontent-mcp/pkg/kontent"
)

type codenameArgs struct {
	Codename string `json:"codename" jsonschema:"minLength=1"`
}

func (a codenameArgs) Validate() error { return requireValue("codename", a.Codename) }

func (t *toolset) getItem(ctx context.Context, args codenameArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetItemByCodename(ctx, args.Codename)
}

type deliveryItemArgs struct {
	Codename      string `json:"codename" jsonschema:"minLength=1" jsonschema_description:"Codename of the published content item"`
	EnvironmentID string `json:"environmentId" jsonschema:"format=uuid" jsonschema_description:"Environment ID of the Delivery API project"`
}

func (a deliveryItemArgs) Validate() error {
	if err := requireValue("codename", a.Codename); err != nil {
		return err
	}
	return requireUUID("environmentId", a.EnvironmentID)
}

func (t *toolset) getDeliveryItem(ctx context.Context, args deliveryItemArgs) (any, error) {
	return t.delivery.Item(ctx, args.EnvironmentID, args.Codename)
}

type addItemArgs struct {
	Name       string             `json:"name" jsonschema:"minLength=1,maxLength=200" jsonschema_description:"Display name of the content item"`
	Type       kontent.Reference  `json:"type" jsonschema_description:"Reference to the content type by id, codename or external_id"`
	Codename   string             `json:"codename,omitempty" jsonschema_description:"Codename of the content item; generated from the name when omitted"`
	ExternalID string             `json:"external_id,omitempty" jsonschema_description:"External ID of the content item"`
	Collection *kontent.Reference `json:"collection,omitempty" jsonschema_description:"Reference to the collection; the default collection when omitted"`
}

func (a addItemArgs) item() kontent.ContentItemCreate {
	return kontent.ContentItemCreate{
		Name:       a.Name,
		Codename:   a.Codename,
		Type:       a.Type,
		ExternalID: a.ExternalID,
		Collection: a.Collection,
	}
}

func (a addItemArgs) Validate() error {
	if err := a.item().Validate(); err != nil {
		return err
	}
	if _, _, err := a.Type.Resolve(); err != nil {
		return &kerrors.ValidationError{Field: "type", Message: err.Error()}
	}
	if a.Collection != nil {
		if _, _, err := a.Collection.Resolve(); err != nil {
			return &kerrors.ValidationError{Field: "collection", Message: err.Error()}
		}
	}
	return nil
}

func (t *toolset) addContentItem(ctx context.Context, args addItemArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	return c.CreateItem(ctx, args.item())
}

type updateItemArgs struct {
	ID         string             `json:"id" jsonschema:"minLength=1" jsonschema_description:"Internal ID of the content item to update"`
	Name       *string            `json:"name,omitempty" jsonschema:"minLength=1,maxLength=200" jsonschema_description:"New display name"`
	Collection *kontent.Reference `json:"collection,omitempty" jsonschema_description:"Reference to the new collection"`
}

type updateItemResult struct {
	Message     string          `json:"message"`
	UpdatedItem json.RawMessage `json:"updatedItem"`
}

// existingItem is the part of a fetched content item an update carries over.
type existingItem struct {
	Name       string             `json:"name"`
	Collection *kontent.Reference `json:"collection,omitempty"`
}

const updateItemPrefix = "Update Content Item: "

func (t *toolset) updateContentItem(ctx context.Context, args updateItemArgs) (any, error) {
	if err := requireValue("id", args.ID); err != nil {
		return nil, err
	}
	update := kontent.ContentItemUpdate{Name: args.Name, Collection: args.Collection}
	if err := update.Validate(); err != nil {
		if err == kontent.ErrNoUpdateData {
			return nil, &messageError{text: updateItemPrefix + kontent.ErrNoUpdateData.(*kerrors.ValidationError).Message, err: err}
		}
		return nil, err
	}

	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}

	notFound := func(err error) error {
		return &messageError{
			text: fmt.Sprintf("%sContent item with ID '%s' does not exist. Use add-content-item-mapi to create new items.", updateItemPrefix, args.ID),
			err:  err,
		}
	}

	// The upsert endpoint would create the item, so existence is checked first.
	raw, err := c.GetItem(ctx, args.ID)
	if err != nil {
		if kerrors.IsNotFound(err) {
			return nil, notFound(err)
		}
		return nil, err
	}
	var current existingItem
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, fmt.Errorf("failed to decode content item: %w", err)
	}
	if update.Name == nil {
		update.Name = &current.Name
	}
	if update.Collection == nil {
		update.Collection = current.Collection
	}

	updated, err := c.UpsertItem(ctx, args.ID, update)
	if err != nil {
		if kerrors.IsNotFound(err) {
			return nil, notFound(err)
		}
		return nil, err
	}
	return updateItemResult{
		Message:     fmt.Sprintf("Content item '%s' updated successfully", args.ID),
		UpdatedItem: updated,
	}, nil
}

type itemIDArgs struct {
	ID string `json:"id" jsonschema:"minLength=1" jsonschema_description:"Internal ID of the content item"`
}

func (a itemIDArgs) Validate() error { return requireValue("id", a.ID) }

type deleteItemResult struct {
	Message     string          `json:"message"`
	DeletedItem json.RawMessage `json:"deletedItem"`
}

func (t *toolset) deleteContentItem(ctx context.Context, args itemIDArgs) (any, error) {
	c, err := t.mapi(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.DeleteItem(ctx, args.ID)
	if err != nil {
		return nil, err
	}
	return deleteItemResult{
		Message:     fmt.Sprintf("Content item '%s' deleted successfully", args.ID),
		DeletedItem: raw,
	}, nil
}
