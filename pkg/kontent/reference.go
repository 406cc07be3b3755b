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
	"strings"
)

// ReferenceKind identifies which field of a reference is populated.
type ReferenceKind int

const (
	// ReferenceNone marks a reference with no usable field.
	ReferenceNone ReferenceKind = iota
	ReferenceByID
	ReferenceByCodename
	ReferenceByExternalID
)

// Field returns the wire name of the kind ("id", "codename", "external_id").
func (k ReferenceKind) Field() string {
	switch k {
	case ReferenceByID:
		return "id"
	case ReferenceByCodename:
		return "codename"
	case ReferenceByExternalID:
		return "external_id"
	}
	return ""
}

func (k ReferenceKind) String() string {
	if f := k.Field(); f != "" {
		return f
	}
	return "none"
}

// Reference addresses an entity by exactly one of id, codename or
// external_id. The zero value is an empty reference.
type Reference struct {
	kind  ReferenceKind
	value string
}

// ByID returns a reference to an entity's internal id.
func ByID(id string) Reference { return Reference{kind: ReferenceByID, value: id} }

// ByCodename returns a reference to an entity's codename.
func ByCodename(codename string) Reference {
	return Reference{kind: ReferenceByCodename, value: codename}
}

// ByExternalID returns a reference to an entity's external id.
func ByExternalID(externalID string) Reference {
	return Reference{kind: ReferenceByExternalID, value: externalID}
}

// Kind reports which field is set.
func (r Reference) Kind() ReferenceKind { return r.kind }

// Value is the raw identifier, "" for an empty reference.
func (r Reference) Value() string { return r.value }

// IsZero reports whether no field is set.
func (r Reference) IsZero() bool { return r.kind == ReferenceNone || r.value == "" }

// Resolve returns the single field to send upstream.
func (r Reference) Resolve() (ReferenceKind, string, error) {
	if r.IsZero() {
		return ReferenceNone, "", &MissingReferenceFieldError{}
	}
	return r.kind, r.value, nil
}

// ID returns the id or fails when the reference uses another field.
func (r Reference) ID() (string, error) { return r.field(ReferenceByID) }

// Codename returns the codename or fails when the reference uses another field.
func (r Reference) Codename() (string, error) { return r.field(ReferenceByCodename) }

// ExternalID returns the external id or fails when the reference uses another field.
func (r Reference) ExternalID() (string, error) { return r.field(ReferenceByExternalID) }

func (r Reference) field(want ReferenceKind) (string, error) {
	if r.IsZero() || r.kind != want {
		return "", &MissingReferenceFieldError{Field: want.Field()}
	}
	return r.value, nil
}

// Segment renders the reference as a patch path segment ("id:{v}").
func (r Reference) Segment() string {
	if r.IsZero() {
		return ""
	}
	return r.kind.Field() + ":" + r.value
}

func (r Reference) String() string {
	if r.IsZero() {
		return "<empty reference>"
	}
	return r.Segment()
}

type referenceWire struct {
	ID         string `json:"id,omitempty"`
	Codename   string `json:"codename,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// MarshalJSON encodes only the populated field; an empty reference is {}.
func (r Reference) MarshalJSON() ([]byte, error) {
	var w referenceWire
	switch {
	case r.IsZero():
	case r.kind == ReferenceByID:
		w.ID = r.value
	case r.kind == ReferenceByCodename:
		w.Codename = r.value
	case r.kind == ReferenceByExternalID:
		w.ExternalID = r.value
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts {id?, codename?, external_id?} and keeps the first
// non-empty field by precedence id, codename, external_id. An object with
// none of them decodes to the empty reference.
func (r *Reference) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*r = Reference{}
		return nil
	}
	var w referenceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return invalid("", "reference must be an object with one of id, codename or external_id")
	}
	switch {
	case w.ID != "":
		*r = ByID(w.ID)
	case w.Codename != "":
		*r = ByCodename(w.Codename)
	case w.ExternalID != "":
		*r = ByExternalID(w.ExternalID)
	default:
		*r = Reference{}
	}
	return nil
}

// ParseReferenceSegment parses an "id:", "codename:" or "external_id:"
// prefixed path segment.
func ParseReferenceSegment(seg string) (Reference, bool) {
	for _, k := range []ReferenceKind{ReferenceByID, ReferenceByCodename, ReferenceByExternalID} {
		prefix := k.Field() + ":"
		if v, ok := strings.CutPrefix(seg, prefix); ok && v != "" {
			return Reference{kind: k, value: v}, true
		}
	}
	return Reference{}, false
}

// ReferenceFromIdentifier treats UUID-shaped identifiers as ids and anything
// else as a codename.
func ReferenceFromIdentifier(s string) Reference {
	if IsUUID(s) {
		return ByID(s)
	}
	return ByCodename(s)
}
