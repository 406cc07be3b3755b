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
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/tombee/kontent-mcp/pkg/kontent"
)

const referenceSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"codename": {"type": "string"},
		"external_id": {"type": "string"}
	},
	"additionalProperties": false
}`

// Term trees are recursive and the reflector inlines every definition, so
// the nested level is described by hand.
const taxonomyTermSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"codename": {"type": "string"},
		"external_id": {"type": "string"},
		"terms": {
			"type": "array",
			"description": "Child terms, each with the same shape (name, codename, external_id, terms)",
			"items": {"type": "object"}
		}
	},
	"required": ["name", "terms"],
	"additionalProperties": false
}`

const patchOperationSchema = `{
	"type": "object",
	"properties": {
		"op": {"type": "string", "enum": ["move", "addInto", "remove", "replace"]},
		"path": {"type": "string", "description": "JSON Pointer path with id:{uuid}, codename:{codename} or external_id:{id} segments"},
		"value": {"description": "Value to add or replace; omitted for move and remove"},
		"before": ` + referenceSchema + `,
		"after": ` + referenceSchema + `
	},
	"required": ["op", "path"],
	"additionalProperties": false
}`

var (
	referenceType       = reflect.TypeOf(kontent.Reference{})
	elementsType        = reflect.TypeOf(kontent.Elements{})
	snippetElementsType = reflect.TypeOf(kontent.SnippetElements{})
	patchOperationsType = reflect.TypeOf(kontent.PatchOperations{})
	taxonomyTermType    = reflect.TypeOf(kontent.TaxonomyTerm{})
)

// elementSchemaTypes pairs each element kind with the struct its schema is
// reflected from.
var elementSchemaTypes = []kontent.Element{
	&kontent.AssetElement{},
	&kontent.CustomElement{},
	&kontent.DateTimeElement{},
	&kontent.GuidelinesElement{},
	&kontent.ModularContentElement{},
	&kontent.SubpagesElement{},
	&kontent.MultipleChoiceElement{},
	&kontent.NumberElement{},
	&kontent.RichTextElement{},
	&kontent.SnippetElement{},
	&kontent.TaxonomyElement{},
	&kontent.TextElement{},
	&kontent.URLSlugElement{},
}

// fragment decodes a fixed schema. The reflector writes field descriptions
// into the returned value, so every call gets a fresh copy.
func fragment(src string) *jsonschema.Schema {
	s := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), s); err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return s
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		Mapper:         mapType,
	}
}

// mapType supplies schemas for types whose wire form is produced by custom
// JSON methods and cannot be reflected from their fields.
func mapType(t reflect.Type) *jsonschema.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case referenceType:
		return fragment(referenceSchema)
	case taxonomyTermType:
		return fragment(taxonomyTermSchema)
	case patchOperationsType:
		return &jsonschema.Schema{Type: "array", Items: fragment(patchOperationSchema)}
	case elementsType:
		return elementUnionSchema(false)
	case snippetElementsType:
		return elementUnionSchema(true)
	}
	return nil
}

// elementUnionSchema describes an array of content type elements
// discriminated by their type tag. Snippets cannot contain url_slug or
// snippet elements.
func elementUnionSchema(snippet bool) *jsonschema.Schema {
	r := newReflector()
	var variants []*jsonschema.Schema
	for _, e := range elementSchemaTypes {
		tag := e.Type()
		if snippet && (tag == kontent.ElementTypeURLSlug || tag == kontent.ElementTypeSnippet) {
			continue
		}
		s := r.ReflectFromType(reflect.TypeOf(e).Elem())
		s.Version = ""
		s.ID = ""
		if snippet && s.Properties != nil {
			s.Properties.Delete("content_group")
		}
		if s.Properties == nil {
			s.Properties = jsonschema.NewProperties()
		}
		s.Properties.Set("type", &jsonschema.Schema{Type: "string", Const: string(tag)})
		s.Required = append([]string{"type"}, s.Required...)
		variants = append(variants, s)
	}
	return &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{OneOf: variants},
	}
}

// reflectArgs builds the input schema of a tool from its argument struct
// and returns the names of its required members.
func reflectArgs[A any]() (json.RawMessage, []string, error) {
	s := newReflector().Reflect(new(A))
	s.Version = ""
	s.ID = ""
	if s.Properties == nil {
		s.Properties = jsonschema.NewProperties()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode input schema: %w", err)
	}
	return data, s.Required, nil
}
