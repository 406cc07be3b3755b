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

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/tidwall/jsonc"
)

// VariantElement is one element value of a language variant. Members other
// than element and value (components, mode, display_timezone) are carried
// through unchanged.
type VariantElement struct {
	Element Reference
	Value   json.RawMessage
	Extra   map[string]json.RawMessage
}

// MarshalJSON emits element, value and the carried members as one object.
func (e VariantElement) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["element"] = e.Element
	value := e.Value
	if value == nil {
		value = json.RawMessage("null")
	}
	out["value"] = value
	return json.Marshal(out)
}

// VariantUpsert is the body of a language variant upsert request.
type VariantUpsert struct {
	Elements     []VariantElement `json:"elements"`
	WorkflowStep *Reference       `json:"workflow_step,omitempty"`
}

// ElementsSyntaxError wraps a parse failure of the elements JSON string.
type ElementsSyntaxError struct {
	Err error
}

func (e *ElementsSyntaxError) Error() string {
	return "Invalid JSON format in elements parameter. " + e.Err.Error()
}

func (e *ElementsSyntaxError) Unwrap() error     { return e.Err }
func (e *ElementsSyntaxError) ErrorType() string { return "validation" }
func (e *ElementsSyntaxError) IsRetryable() bool { return false }

// ParseVariantElements parses the elements argument of a variant upsert.
// Comments and trailing commas are tolerated. Two shapes are accepted:
//
//	[{"element": {"codename": "title"}, "value": "Hello"}]
//	{"title": {"value": "Hello"}}
//
// In the map form a UUID-shaped key addresses the element by id and any
// other key by codename.
func ParseVariantElements(s string) ([]VariantElement, error) {
	data := bytes.TrimSpace(jsonc.ToJSON([]byte(s)))
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ElementsSyntaxError{Err: err}
	}

	switch {
	case len(data) > 0 && data[0] == '[':
		return parseVariantElementList(data)
	case len(data) > 0 && data[0] == '{':
		return parseVariantElementMap(data)
	}
	return nil, invalid("elements", "must be a JSON array of element values or an object keyed by element codename")
}

func parseVariantElementList(data []byte) ([]VariantElement, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, invalid("elements", "%v", err)
	}
	out := make([]VariantElement, 0, len(raws))
	for i, raw := range raws {
		field := indexPath("elements", i)
		obj, err := decodeObject(raw, field, "element value")
		if err != nil {
			return nil, err
		}
		if err := requireKeys(obj, field, "element"); err != nil {
			return nil, err
		}
		if _, ok := obj["value"]; !ok {
			return nil, invalid(joinPath(field, "value"), "is required")
		}
		var ref Reference
		if err := decodeInto(obj["element"], &ref, joinPath(field, "element")); err != nil {
			return nil, err
		}
		if ref.IsZero() {
			return nil, invalid(joinPath(field, "element"), "%v", &MissingReferenceFieldError{})
		}
		el, err := newVariantElement(ref, obj, field)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func parseVariantElementMap(data []byte) ([]VariantElement, error) {
	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(data, &byKey); err != nil {
		return nil, invalid("elements", "%v", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]VariantElement, 0, len(keys))
	for _, key := range keys {
		field := joinPath("elements", key)
		obj, err := decodeObject(byKey[key], field, "element value")
		if err != nil {
			return nil, err
		}
		if _, ok := obj["value"]; !ok {
			return nil, invalid(joinPath(field, "value"), "is required")
		}
		el, err := newVariantElement(ReferenceFromIdentifier(key), obj, field)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func newVariantElement(ref Reference, obj map[string]json.RawMessage, field string) (VariantElement, error) {
	value := obj["value"]
	if err := checkVariantValue(value, joinPath(field, "value")); err != nil {
		return VariantElement{}, err
	}
	el := VariantElement{Element: ref, Value: value}
	for k, v := range obj {
		if k == "element" || k == "value" {
			continue
		}
		if el.Extra == nil {
			el.Extra = make(map[string]json.RawMessage)
		}
		el.Extra[k] = v
	}
	return el, nil
}

// checkVariantValue accepts the value shapes the element kinds use: a
// string (text, rich text, date time, custom, URL slug), a number, null, or
// an array of references (assets, linked items, options, taxonomy terms).
func checkVariantValue(value json.RawMessage, field string) error {
	trimmed := bytes.TrimSpace(value)
	if isNull(trimmed) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return nil
	case '[':
		var refs []json.RawMessage
		if err := json.Unmarshal(trimmed, &refs); err != nil {
			return invalid(field, "%v", err)
		}
		for i, raw := range refs {
			var ref Reference
			if err := decodeInto(raw, &ref, indexPath(field, i)); err != nil {
				return invalid(indexPath(field, i), "must be a reference object with one of id, codename or external_id")
			}
			if ref.IsZero() {
				return invalid(indexPath(field, i), "%v", &MissingReferenceFieldError{})
			}
		}
		return nil
	case '{', 't', 'f':
		return invalid(field, "must be a string, a number, null or an array of references")
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return invalid(field, "must be a string, a number, null or an array of references")
	}
	return nil
}
