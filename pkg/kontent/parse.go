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

import "encoding/json"

type elementKind struct {
	new      func() Element
	required []string
	// nested lists required members of optional nested objects
	nested map[string][]string
}

var (
	countLimitKeys = []string{"value", "condition"}
	regexKeys      = []string{"is_active", "regex"}
	textLimitKeys  = []string{"value", "applies_to"}
	defaultKeys    = []string{"global"}
)

var elementKinds = map[ElementType]elementKind{
	ElementTypeAsset: {
		new:      func() Element { return &AssetElement{} },
		required: []string{"name"},
		nested: map[string][]string{
			"asset_count_limit":  countLimitKeys,
			"image_width_limit":  countLimitKeys,
			"image_height_limit": countLimitKeys,
			"default":            defaultKeys,
		},
	},
	ElementTypeCustom: {
		new:      func() Element { return &CustomElement{} },
		required: []string{"name", "source_url"},
	},
	ElementTypeDateTime: {
		new:      func() Element { return &DateTimeElement{} },
		required: []string{"name"},
		nested:   map[string][]string{"default": defaultKeys},
	},
	ElementTypeGuidelines: {
		new:      func() Element { return &GuidelinesElement{} },
		required: []string{"guidelines"},
	},
	ElementTypeModularContent: {
		new:      func() Element { return &ModularContentElement{} },
		required: []string{"name"},
		nested: map[string][]string{
			"item_count_limit": countLimitKeys,
			"default":          defaultKeys,
		},
	},
	ElementTypeSubpages: {
		new:      func() Element { return &SubpagesElement{} },
		required: []string{"name"},
		nested:   map[string][]string{"item_count_limit": countLimitKeys},
	},
	ElementTypeMultipleChoice: {
		new:      func() Element { return &MultipleChoiceElement{} },
		required: []string{"name", "mode", "options"},
		nested:   map[string][]string{"default": defaultKeys},
	},
	ElementTypeNumber: {
		new:      func() Element { return &NumberElement{} },
		required: []string{"name"},
		nested:   map[string][]string{"default": defaultKeys},
	},
	ElementTypeRichText: {
		new:      func() Element { return &RichTextElement{} },
		required: []string{"name"},
		nested: map[string][]string{
			"image_width_limit":   countLimitKeys,
			"image_height_limit":  countLimitKeys,
			"maximum_text_length": textLimitKeys,
		},
	},
	ElementTypeSnippet: {
		new:      func() Element { return &SnippetElement{} },
		required: []string{"snippet"},
	},
	ElementTypeTaxonomy: {
		new:      func() Element { return &TaxonomyElement{} },
		required: []string{"name", "taxonomy_group"},
		nested: map[string][]string{
			"term_count_limit": countLimitKeys,
			"default":          defaultKeys,
		},
	},
	ElementTypeText: {
		new:      func() Element { return &TextElement{} },
		required: []string{"name"},
		nested: map[string][]string{
			"maximum_text_length": textLimitKeys,
			"validation_regex":    regexKeys,
			"default":             defaultKeys,
		},
	},
	ElementTypeURLSlug: {
		new:      func() Element { return &URLSlugElement{} },
		required: []string{"name", "depends_on"},
		nested: map[string][]string{
			"depends_on":       {"element"},
			"validation_regex": regexKeys,
		},
	},
}

// ParseElement decodes and validates a single content type element. It
// fails closed with UnknownElementTypeError on an unrecognised type tag.
func ParseElement(data []byte) (Element, error) {
	return parseElement(data, "")
}

// ParseSnippetElement decodes an element for a content type snippet. URL
// slug and snippet elements are rejected and content_group is dropped.
func ParseSnippetElement(data []byte) (Element, error) {
	return parseSnippetElement(data, "")
}

func elementTypeOf(data []byte, path string) (ElementType, map[string]json.RawMessage, error) {
	obj, err := decodeObject(data, path, "element")
	if err != nil {
		return "", nil, err
	}
	rawType, ok := obj["type"]
	if !ok || isNull(rawType) {
		return "", nil, invalid(joinPath(path, "type"), "is required")
	}
	var t string
	if err := json.Unmarshal(rawType, &t); err != nil {
		return "", nil, invalid(joinPath(path, "type"), "must be a string")
	}
	return ElementType(t), obj, nil
}

func parseElement(data []byte, path string) (Element, error) {
	t, obj, err := elementTypeOf(data, path)
	if err != nil {
		return nil, err
	}
	return decodeElement(t, obj, data, path)
}

func parseSnippetElement(data []byte, path string) (Element, error) {
	t, obj, err := elementTypeOf(data, path)
	if err != nil {
		return nil, err
	}
	if t == ElementTypeURLSlug || t == ElementTypeSnippet {
		return nil, &ForbiddenSnippetElementError{Type: string(t), Path: path}
	}
	el, err := decodeElement(t, obj, data, path)
	if err != nil {
		return nil, err
	}
	el.Base().ContentGroup = nil
	return el, nil
}

func decodeElement(t ElementType, obj map[string]json.RawMessage, data []byte, path string) (Element, error) {
	kind, ok := elementKinds[t]
	if !ok {
		return nil, &UnknownElementTypeError{Type: string(t), Path: path}
	}
	if err := requireKeys(obj, path, kind.required...); err != nil {
		return nil, err
	}
	for field, keys := range kind.nested {
		if err := requireNested(obj, path, field, keys...); err != nil {
			return nil, err
		}
	}
	if err := requireDefaultValue(obj, path); err != nil {
		return nil, err
	}

	el := kind.new()
	if err := decodeInto(data, el, path); err != nil {
		return nil, err
	}
	if v, ok := el.(interface{ validate(string) error }); ok {
		if err := v.validate(path); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// requireDefaultValue enforces default.global.value when a default is given.
func requireDefaultValue(obj map[string]json.RawMessage, path string) error {
	raw, ok := obj["default"]
	if !ok || isNull(raw) {
		return nil
	}
	var d struct {
		Global map[string]json.RawMessage `json:"global"`
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return invalid(joinPath(path, "default.global"), "must be a JSON object")
	}
	return requireKeys(d.Global, joinPath(path, "default.global"), "value")
}

func (e *AssetElement) validate(path string) error {
	for _, err := range []error{
		e.AssetCountLimit.validate(joinPath(path, "asset_count_limit")),
		e.ImageWidthLimit.validate(joinPath(path, "image_width_limit")),
		e.ImageHeightLimit.validate(joinPath(path, "image_height_limit")),
		checkOptionalEnum(joinPath(path, "allowed_file_types"), e.AllowedFileTypes, FileTypesAdjustable, FileTypesAny),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *ModularContentElement) validate(path string) error {
	return e.ItemCountLimit.validate(joinPath(path, "item_count_limit"))
}

func (e *SubpagesElement) validate(path string) error {
	return e.ItemCountLimit.validate(joinPath(path, "item_count_limit"))
}

func (e *MultipleChoiceElement) validate(path string) error {
	if err := checkEnum(joinPath(path, "mode"), e.Mode, ChoiceModeSingle, ChoiceModeMultiple); err != nil {
		return err
	}
	for i, o := range e.Options {
		if o.Name == "" {
			return invalid(joinPath(indexPath(joinPath(path, "options"), i), "name"), "is required")
		}
	}
	return nil
}

func (e *TaxonomyElement) validate(path string) error {
	return e.TermCountLimit.validate(joinPath(path, "term_count_limit"))
}

func (e *TextElement) validate(path string) error {
	return e.MaximumTextLength.validate(joinPath(path, "maximum_text_length"))
}

// Elements is a list of content type elements.
type Elements []Element

// UnmarshalJSON decodes every member through ParseElement.
func (es *Elements) UnmarshalJSON(data []byte) error {
	out, err := decodeElementList(data, "elements", parseElement)
	if err != nil {
		return err
	}
	*es = out
	return nil
}

// SnippetElements is a list of content type snippet elements.
type SnippetElements []Element

// UnmarshalJSON decodes every member through ParseSnippetElement.
func (es *SnippetElements) UnmarshalJSON(data []byte) error {
	out, err := decodeElementList(data, "elements", parseSnippetElement)
	if err != nil {
		return err
	}
	*es = out
	return nil
}

func decodeElementList(data []byte, path string, parse func([]byte, string) (Element, error)) ([]Element, error) {
	if isNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, invalid(path, "must be an array of elements")
	}
	out := make([]Element, 0, len(raws))
	for i, raw := range raws {
		el, err := parse(raw, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

// ContentGroup is a tab of a content type.
type ContentGroup struct {
	Name       string `json:"name"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// ParseContentGroup decodes a content group, requiring its name.
func ParseContentGroup(data []byte) (ContentGroup, error) {
	return parseNamed[ContentGroup](data, "", "content group")
}

// ParseMultipleChoiceOption decodes an option, requiring its name.
func ParseMultipleChoiceOption(data []byte) (MultipleChoiceOption, error) {
	return parseNamed[MultipleChoiceOption](data, "", "option")
}

func parseNamed[T any](data []byte, path, what string) (T, error) {
	var zero, out T
	obj, err := decodeObject(data, path, what)
	if err != nil {
		return zero, err
	}
	if err := requireKeys(obj, path, "name"); err != nil {
		return zero, err
	}
	if err := decodeInto(data, &out, path); err != nil {
		return zero, err
	}
	return out, nil
}

// ContentType is the body of a content type create request.
type ContentType struct {
	Name          string         `json:"name"`
	Codename      string         `json:"codename,omitempty"`
	ExternalID    string         `json:"external_id,omitempty"`
	ContentGroups []ContentGroup `json:"content_groups,omitempty"`
	Elements      Elements       `json:"elements"`
}

// Validate checks content group names. Element placement into groups is
// left to the API.
func (ct ContentType) Validate() error {
	for i, g := range ct.ContentGroups {
		if g.Name == "" {
			return invalid(joinPath(indexPath("content_groups", i), "name"), "is required")
		}
	}
	return nil
}

// Snippet is the body of a content type snippet create request.
type Snippet struct {
	Name       string          `json:"name"`
	Codename   string          `json:"codename,omitempty"`
	ExternalID string          `json:"external_id,omitempty"`
	Elements   SnippetElements `json:"elements"`
}
