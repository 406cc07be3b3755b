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
	"encoding/json"
	"strconv"
)

// ElementType is the discriminator of a content type element.
type ElementType string

const (
	ElementTypeAsset          ElementType = "asset"
	ElementTypeCustom         ElementType = "custom"
	ElementTypeDateTime       ElementType = "date_time"
	ElementTypeGuidelines     ElementType = "guidelines"
	ElementTypeModularContent ElementType = "modular_content"
	ElementTypeSubpages       ElementType = "subpages"
	ElementTypeMultipleChoice ElementType = "multiple_choice"
	ElementTypeNumber         ElementType = "number"
	ElementTypeRichText       ElementType = "rich_text"
	ElementTypeSnippet        ElementType = "snippet"
	ElementTypeTaxonomy       ElementType = "taxonomy"
	ElementTypeText           ElementType = "text"
	ElementTypeURLSlug        ElementType = "url_slug"
)

// ElementTypes lists every known element kind in wire order.
var ElementTypes = []ElementType{
	ElementTypeAsset, ElementTypeCustom, ElementTypeDateTime, ElementTypeGuidelines,
	ElementTypeModularContent, ElementTypeSubpages, ElementTypeMultipleChoice,
	ElementTypeNumber, ElementTypeRichText, ElementTypeSnippet, ElementTypeTaxonomy,
	ElementTypeText, ElementTypeURLSlug,
}

// Element is one member of the content type element union.
type Element interface {
	Type() ElementType
	Base() *ElementBase
}

// ElementBase holds fields every element kind shares.
type ElementBase struct {
	Codename     string     `json:"codename,omitempty"`
	ExternalID   string     `json:"external_id,omitempty"`
	ContentGroup *Reference `json:"content_group,omitempty"`
}

// Base returns the shared fields.
func (b *ElementBase) Base() *ElementBase { return b }

// NamedElement is the base of every kind except guidelines and snippet.
type NamedElement struct {
	ElementBase
	Name             string `json:"name"`
	Guidelines       string `json:"guidelines,omitempty"`
	IsRequired       *bool  `json:"is_required,omitempty"`
	IsNonLocalizable *bool  `json:"is_non_localizable,omitempty"`
}

type LimitCondition string

const (
	ConditionAtMost  LimitCondition = "at_most"
	ConditionExactly LimitCondition = "exactly"
	ConditionAtLeast LimitCondition = "at_least"
)

type FileTypes string

const (
	FileTypesAdjustable FileTypes = "adjustable"
	FileTypesAny        FileTypes = "any"
)

type LengthUnit string

const (
	LengthUnitWords      LengthUnit = "words"
	LengthUnitCharacters LengthUnit = "characters"
)

type ChoiceMode string

const (
	ChoiceModeSingle   ChoiceMode = "single"
	ChoiceModeMultiple ChoiceMode = "multiple"
)

// CountLimit bounds a count (assets, items, terms, pixels).
type CountLimit struct {
	Value     float64        `json:"value"`
	Condition LimitCondition `json:"condition"`
}

func (l *CountLimit) validate(field string) error {
	if l == nil {
		return nil
	}
	return checkEnum(joinPath(field, "condition"), l.Condition, ConditionAtMost, ConditionExactly, ConditionAtLeast)
}

// TextLengthLimit bounds the length of text or rich text.
type TextLengthLimit struct {
	Value     float64    `json:"value"`
	AppliesTo LengthUnit `json:"applies_to"`
}

func (l *TextLengthLimit) validate(field string) error {
	if l == nil {
		return nil
	}
	return checkEnum(joinPath(field, "applies_to"), l.AppliesTo, LengthUnitWords, LengthUnitCharacters)
}

// RegexValidation constrains text and URL slug values.
type RegexValidation struct {
	IsActive          bool   `json:"is_active"`
	Regex             string `json:"regex"`
	Flags             string `json:"flags,omitempty"`
	ValidationMessage string `json:"validation_message,omitempty"`
}

// Default is the {global: {value}} default value envelope.
type Default[T any] struct {
	Global DefaultValue[T] `json:"global"`
}

type DefaultValue[T any] struct {
	Value T `json:"value"`
}

// MultipleChoiceOption is a selectable option of a multiple choice element.
type MultipleChoiceOption struct {
	Name       string `json:"name"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// DependsOn names the text element a URL slug is generated from.
type DependsOn struct {
	Element Reference  `json:"element"`
	Snippet *Reference `json:"snippet,omitempty"`
}

type AssetElement struct {
	NamedElement
	AssetCountLimit  *CountLimit           `json:"asset_count_limit,omitempty"`
	MaximumFileSize  *float64              `json:"maximum_file_size,omitempty"`
	AllowedFileTypes FileTypes             `json:"allowed_file_types,omitempty"`
	ImageWidthLimit  *CountLimit           `json:"image_width_limit,omitempty"`
	ImageHeightLimit *CountLimit           `json:"image_height_limit,omitempty"`
	Default          *Default[[]Reference] `json:"default,omitempty"`
}

type CustomElement struct {
	NamedElement
	SourceURL       string       `json:"source_url"`
	JSONParameters  string       `json:"json_parameters,omitempty"`
	AllowedElements *[]Reference `json:"allowed_elements,omitempty"`
}

type DateTimeElement struct {
	NamedElement
	Default *Default[string] `json:"default,omitempty"`
}

type GuidelinesElement struct {
	ElementBase
	Guidelines string `json:"guidelines"`
}

type ModularContentElement struct {
	NamedElement
	AllowedContentTypes *[]Reference          `json:"allowed_content_types,omitempty"`
	ItemCountLimit      *CountLimit           `json:"item_count_limit,omitempty"`
	Default             *Default[[]Reference] `json:"default,omitempty"`
}

type SubpagesElement struct {
	NamedElement
	AllowedContentTypes *[]Reference `json:"allowed_content_types,omitempty"`
	ItemCountLimit      *CountLimit  `json:"item_count_limit,omitempty"`
}

type MultipleChoiceElement struct {
	NamedElement
	Mode    ChoiceMode             `json:"mode"`
	Options []MultipleChoiceOption `json:"options"`
	Default *Default[[]Reference]  `json:"default,omitempty"`
}

type NumberElement struct {
	NamedElement
	Default *Default[float64] `json:"default,omitempty"`
}

type SnippetElement struct {
	ElementBase
	Snippet Reference `json:"snippet"`
}

type TaxonomyElement struct {
	NamedElement
	TaxonomyGroup  Reference             `json:"taxonomy_group"`
	TermCountLimit *CountLimit           `json:"term_count_limit,omitempty"`
	Default        *Default[[]Reference] `json:"default,omitempty"`
}

type TextElement struct {
	NamedElement
	MaximumTextLength *TextLengthLimit `json:"maximum_text_length,omitempty"`
	ValidationRegex   *RegexValidation `json:"validation_regex,omitempty"`
	Default           *Default[string] `json:"default,omitempty"`
}

type URLSlugElement struct {
	NamedElement
	DependsOn       DependsOn        `json:"depends_on"`
	ValidationRegex *RegexValidation `json:"validation_regex,omitempty"`
}

func (AssetElement) Type() ElementType          { return ElementTypeAsset }
func (CustomElement) Type() ElementType         { return ElementTypeCustom }
func (DateTimeElement) Type() ElementType       { return ElementTypeDateTime }
func (GuidelinesElement) Type() ElementType     { return ElementTypeGuidelines }
func (ModularContentElement) Type() ElementType { return ElementTypeModularContent }
func (SubpagesElement) Type() ElementType       { return ElementTypeSubpages }
func (MultipleChoiceElement) Type() ElementType { return ElementTypeMultipleChoice }
func (NumberElement) Type() ElementType         { return ElementTypeNumber }
func (RichTextElement) Type() ElementType       { return ElementTypeRichText }
func (SnippetElement) Type() ElementType        { return ElementTypeSnippet }
func (TaxonomyElement) Type() ElementType       { return ElementTypeTaxonomy }
func (TextElement) Type() ElementType           { return ElementTypeText }
func (URLSlugElement) Type() ElementType        { return ElementTypeURLSlug }

// marshalTagged encodes v and splices the type tag in as the first member.
func marshalTagged(t ElementType, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	tag := []byte(`{"type":` + strconv.Quote(string(t)))
	if len(body) <= 2 {
		return append(tag, '}'), nil
	}
	return append(append(tag, ','), body[1:]...), nil
}

func (e AssetElement) MarshalJSON() ([]byte, error) {
	type plain AssetElement
	return marshalTagged(e.Type(), plain(e))
}

func (e CustomElement) MarshalJSON() ([]byte, error) {
	type plain CustomElement
	return marshalTagged(e.Type(), plain(e))
}

func (e DateTimeElement) MarshalJSON() ([]byte, error) {
	type plain DateTimeElement
	return marshalTagged(e.Type(), plain(e))
}

func (e GuidelinesElement) MarshalJSON() ([]byte, error) {
	type plain GuidelinesElement
	return marshalTagged(e.Type(), plain(e))
}

func (e ModularContentElement) MarshalJSON() ([]byte, error) {
	type plain ModularContentElement
	return marshalTagged(e.Type(), plain(e))
}

func (e SubpagesElement) MarshalJSON() ([]byte, error) {
	type plain SubpagesElement
	return marshalTagged(e.Type(), plain(e))
}

func (e MultipleChoiceElement) MarshalJSON() ([]byte, error) {
	type plain MultipleChoiceElement
	return marshalTagged(e.Type(), plain(e))
}

func (e NumberElement) MarshalJSON() ([]byte, error) {
	type plain NumberElement
	return marshalTagged(e.Type(), plain(e))
}

func (e RichTextElement) MarshalJSON() ([]byte, error) {
	type plain RichTextElement
	return marshalTagged(e.Type(), plain(e))
}

func (e SnippetElement) MarshalJSON() ([]byte, error) {
	type plain SnippetElement
	return marshalTagged(e.Type(), plain(e))
}

func (e TaxonomyElement) MarshalJSON() ([]byte, error) {
	type plain TaxonomyElement
	return marshalTagged(e.Type(), plain(e))
}

func (e TextElement) MarshalJSON() ([]byte, error) {
	type plain TextElement
	return marshalTagged(e.Type(), plain(e))
}

func (e URLSlugElement) MarshalJSON() ([]byte, error) {
	type plain URLSlugElement
	return marshalTagged(e.Type(), plain(e))
}
