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
	"slices"
	"strings"
)

// PatchOp is the operation tag of a content type patch operation.
type PatchOp string

const (
	OpMove    PatchOp = "move"
	OpAddInto PatchOp = "addInto"
	OpRemove  PatchOp = "remove"
	OpReplace PatchOp = "replace"
)

// PatchOps lists the accepted operation tags.
var PatchOps = []PatchOp{OpMove, OpAddInto, OpRemove, OpReplace}

// immutableProperties can never be the target of a replace.
var immutableProperties = map[string]bool{
	"id":          true,
	"external_id": true,
	"type":        true,
}

// PatchOperation is one content type modification. Value is kept as raw
// JSON so that an explicit null (e.g. clearing content_group) is preserved
// and distinguishable from an absent value.
type PatchOperation struct {
	Op     PatchOp         `json:"op"`
	Path   string          `json:"path"`
	Value  json.RawMessage `json:"value,omitempty"`
	Before *Reference      `json:"before,omitempty"`
	After  *Reference      `json:"after,omitempty"`
}

// Move builds a move operation anchored before or after another member.
func Move(path string, before, after *Reference) PatchOperation {
	return PatchOperation{Op: OpMove, Path: path, Before: before, After: after}
}

// AddInto builds an addInto operation with value encoded as JSON.
func AddInto(path string, value any) (PatchOperation, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return PatchOperation{}, err
	}
	return PatchOperation{Op: OpAddInto, Path: path, Value: raw}, nil
}

// Remove builds a remove operation.
func Remove(path string) PatchOperation {
	return PatchOperation{Op: OpRemove, Path: path}
}

// Replace builds a replace operation with value encoded as JSON. A nil
// value encodes as an explicit null.
func Replace(path string, value any) (PatchOperation, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return PatchOperation{}, err
	}
	return PatchOperation{Op: OpReplace, Path: path, Value: raw}, nil
}

// UnmarshalJSON is the permissive structural decoder: it checks the op tag
// and the presence of a path, and keeps everything else as given.
func (op *PatchOperation) UnmarshalJSON(data []byte) error {
	return op.decode(data, "")
}

func (op *PatchOperation) decode(data []byte, field string) error {
	obj, err := decodeObject(data, field, "patch operation")
	if err != nil {
		return err
	}
	if err := requireKeys(obj, field, "op", "path"); err != nil {
		return err
	}
	type plain PatchOperation
	var p plain
	if err := decodeInto(data, &p, field); err != nil {
		return err
	}
	if err := checkEnum(joinPath(field, "op"), p.Op, PatchOps...); err != nil {
		return err
	}
	*op = PatchOperation(p)
	return nil
}

// Normalized drops members that have no meaning for the operation: value
// on move and remove, before and after on everything but move.
func (op PatchOperation) Normalized() PatchOperation {
	out := PatchOperation{Op: op.Op, Path: op.Path}
	switch op.Op {
	case OpMove:
		out.Before, out.After = op.Before, op.After
	case OpAddInto, OpReplace:
		out.Value = op.Value
	}
	return out
}

// Validate applies the rules the Management API enforces on a patch
// operation, so that a bad operation fails locally instead of remotely.
func (op PatchOperation) Validate() error {
	return op.validate("")
}

func (op PatchOperation) validate(field string) error {
	pathField := joinPath(field, "path")
	path, err := ParsePatchPath(op.Path)
	if err != nil {
		return err
	}
	last := path.Last()

	switch op.Op {
	case OpMove:
		if last.Kind != SegmentEntity {
			return invalid(pathField, "move must target an element, content group or option addressed by id:, codename: or external_id:")
		}
		switch {
		case op.Before != nil && op.After != nil:
			return invalid(field, "move accepts exactly one of before or after, got both")
		case op.Before == nil && op.After == nil:
			return invalid(field, "move requires one of before or after")
		case op.Before != nil && op.Before.IsZero():
			return invalid(joinPath(field, "before"), "%v", &MissingReferenceFieldError{})
		case op.After != nil && op.After.IsZero():
			return invalid(joinPath(field, "after"), "%v", &MissingReferenceFieldError{})
		}

	case OpAddInto:
		if last.Kind != SegmentProperty || !IsArrayProperty(last.Property) || !path.ownsProperties() {
			return invalid(pathField, "addInto must target an array property such as /elements, /content_groups or /elements/{ref}/options")
		}
		if op.Value == nil || isNull(op.Value) {
			return invalid(joinPath(field, "value"), "is required")
		}
		return validateAddedValue(last.Property, op.Value, joinPath(field, "value"))

	case OpRemove:
		if last.Kind == SegmentProperty {
			return invalid(pathField, "remove must target an element, content group, option or array member, not the property %q", last.Property)
		}

	case OpReplace:
		if last.Kind != SegmentProperty {
			return invalid(pathField, "replace must target a property; use remove and addInto for array members")
		}
		if immutableProperties[last.Property] {
			return invalid(pathField, "%s cannot be replaced", last.Property)
		}
		if IsArrayProperty(last.Property) {
			return invalid(pathField, "%s is an array; use addInto and remove for its members", last.Property)
		}
		if !path.ownsProperties() {
			parent, _ := path.Parent()
			return invalid(pathField, "cannot replace a member of %s; replace the whole object instead", parent.Property)
		}
		if op.Value == nil {
			return invalid(joinPath(field, "value"), "is required")
		}

	default:
		return checkEnum(joinPath(field, "op"), op.Op, PatchOps...)
	}
	return nil
}

func validateAddedValue(property string, value json.RawMessage, field string) error {
	switch property {
	case "elements":
		_, err := parseElement(value, field)
		return err
	case "content_groups":
		_, err := parseNamed[ContentGroup](value, field, "content group")
		return err
	case "options":
		_, err := parseNamed[MultipleChoiceOption](value, field, "option")
		return err
	case "allowed_content_types", "allowed_item_link_types", "allowed_elements":
		var ref Reference
		if err := decodeInto(value, &ref, field); err != nil {
			return invalid(field, "must be a reference object with one of id, codename or external_id")
		}
		if ref.IsZero() {
			return invalid(field, "%v", &MissingReferenceFieldError{})
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return invalid(field, "must be a string")
	}
	if allowed := richTextListValues(property); !slices.Contains(allowed, s) {
		return invalid(field, "must be one of %s, got %q", strings.Join(allowed, ", "), s)
	}
	return nil
}

// PatchOperations is an ordered batch of patch operations. Order is
// preserved exactly; operations are neither merged nor reordered.
type PatchOperations []PatchOperation

// UnmarshalJSON decodes a non-empty array of operations.
func (ops *PatchOperations) UnmarshalJSON(data []byte) error {
	out, err := ParsePatchOperations(data)
	if err != nil {
		return err
	}
	*ops = out
	return nil
}

// ParsePatchOperations decodes a batch structurally. It accepts any op in
// the tag set with any before/after combination and any value.
func ParsePatchOperations(data []byte) (PatchOperations, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, invalid("operations", "must be an array of patch operations")
	}
	if len(raws) == 0 {
		return nil, invalid("operations", "must contain at least one operation")
	}
	out := make(PatchOperations, len(raws))
	for i, raw := range raws {
		if err := out[i].decode(raw, indexPath("operations", i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Validate checks every operation of the batch in order and reports the
// first failure.
func (ops PatchOperations) Validate() error {
	if len(ops) == 0 {
		return invalid("operations", "must contain at least one operation")
	}
	for i, op := range ops {
		if err := op.validate(indexPath("operations", i)); err != nil {
			return err
		}
	}
	return nil
}

// Normalized returns the batch with every operation normalized.
func (ops PatchOperations) Normalized() PatchOperations {
	out := make(PatchOperations, len(ops))
	for i, op := range ops {
		out[i] = op.Normalized()
	}
	return out
}
