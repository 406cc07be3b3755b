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

package kontent

import "unicode/utf8"

const maxItemNameLength = 200

// ContentItemCreate is the body of a content item create request.
type ContentItemCreate struct {
	Name       string     `json:"name"`
	Codename   string     `json:"codename,omitempty"`
	Type       Reference  `json:"type"`
	ExternalID string     `json:"external_id,omitempty"`
	Collection *Reference `json:"collection,omitempty"`
}

// Validate checks the name length.
func (c ContentItemCreate) Validate() error {
	return checkItemName("name", c.Name)
}

// ContentItemUpdate carries the mutable fields of a content item. Nil
// fields keep their current value.
type ContentItemUpdate struct {
	Name       *string    `json:"name,omitempty"`
	Collection *Reference `json:"collection,omitempty"`
}

// ErrNoUpdateData is returned for an update that changes nothing.
var ErrNoUpdateData = invalid("", "No update data provided. At least one field (name or collection) must be specified.")

// Validate requires at least one field and checks the name length.
func (u ContentItemUpdate) Validate() error {
	if u.Name == nil && u.Collection == nil {
		return ErrNoUpdateData
	}
	if u.Name != nil {
		return checkItemName("name", *u.Name)
	}
	return nil
}

func checkItemName(field, name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 {
		return invalid(field, "must not be empty")
	}
	if n > maxItemNameLength {
		return invalid(field, "must be at most %d characters, got %d", maxItemNameLength, n)
	}
	return nil
}
