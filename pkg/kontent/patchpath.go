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
	"fmt"
	"slices"
	"strings"
)

// SegmentKind classifies a patch path segment.
type SegmentKind int

const (
	// SegmentProperty is a plain property name ("elements", "name").
	SegmentProperty SegmentKind = iota
	// SegmentEntity addresses an array member by id:, codename: or external_id:.
	SegmentEntity
	// SegmentLiteral addresses a member of a string allow-list ("images").
	SegmentLiteral
)

// PathSegment is one parsed segment of a patch path.
type PathSegment struct {
	Kind     SegmentKind
	Property string
	Ref      Reference
	Literal  string
}

func (s PathSegment) String() string {
	switch s.Kind {
	case SegmentEntity:
		return s.Ref.Segment()
	case SegmentLiteral:
		return s.Literal
	}
	return s.Property
}

// PatchPath is a parsed content type patch path such as
// /elements/codename:title/options/id:{uuid}.
type PatchPath struct {
	raw      string
	Segments []PathSegment
}

// entityLists are array properties whose members are addressed by reference.
var entityLists = map[string]bool{
	"elements":                true,
	"content_groups":          true,
	"options":                 true,
	"allowed_content_types":   true,
	"allowed_item_link_types": true,
	"allowed_elements":        true,
}

// literalLists are array properties whose members are plain strings.
var literalLists = map[string]bool{
	"allowed_blocks":            true,
	"allowed_formatting":        true,
	"allowed_text_blocks":       true,
	"allowed_table_blocks":      true,
	"allowed_table_formatting":  true,
	"allowed_table_text_blocks": true,
}

// IsArrayProperty reports whether property holds a list that is edited
// with addInto and remove rather than replace.
func IsArrayProperty(property string) bool {
	return entityLists[property] || literalLists[property]
}

// ParsePatchPath parses a JSON-Pointer-like patch path. Array members must be
// addressed as id:{v}, codename:{v} or external_id:{v}; bare ordinal
// indexes are rejected.
func ParsePatchPath(path string) (PatchPath, error) {
	fail := func(format string, args ...any) (PatchPath, error) {
		return PatchPath{}, &InvalidPatchPathError{Path: path, Reason: fmt.Sprintf(format, args...)}
	}
	if !strings.HasPrefix(path, "/") {
		return fail("must start with '/'")
	}

	const (
		expectProperty = iota
		expectEntity
		expectLiteral
		expectEnd
	)
	p := PatchPath{raw: path}
	expect := expectProperty
	var property string

	for i, part := range strings.Split(path[1:], "/") {
		seg := unescapePointer(part)
		if seg == "" {
			return fail("segment %d is empty", i+1)
		}
		if isOrdinal(seg) {
			return fail("bare ordinal index %q; address array members as id:{value}, codename:{value} or external_id:{value}", seg)
		}

		switch expect {
		case expectProperty:
			if _, ok := ParseReferenceSegment(seg); ok {
				return fail("expected a property name, got reference %q", seg)
			}
			property = seg
			p.Segments = append(p.Segments, PathSegment{Kind: SegmentProperty, Property: seg})
			switch {
			case entityLists[seg]:
				expect = expectEntity
			case literalLists[seg]:
				expect = expectLiteral
			}
		case expectEntity:
			ref, ok := ParseReferenceSegment(seg)
			if !ok {
				return fail("member of %s must be id:{value}, codename:{value} or external_id:{value}, got %q", property, seg)
			}
			p.Segments = append(p.Segments, PathSegment{Kind: SegmentEntity, Ref: ref})
			expect = expectProperty
		case expectLiteral:
			if allowed := richTextListValues(property); !slices.Contains(allowed, seg) {
				return fail("%q is not a valid member of %s (allowed: %s)", seg, property, strings.Join(allowed, ", "))
			}
			p.Segments = append(p.Segments, PathSegment{Kind: SegmentLiteral, Literal: seg})
			expect = expectEnd
		case expectEnd:
			return fail("unexpected segment %q after array member", seg)
		}
	}
	return p, nil
}

func unescapePointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

func isOrdinal(s string) bool {
	if s == "-" {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (p PatchPath) String() string { return p.raw }

// Last returns the final segment.
func (p PatchPath) Last() PathSegment {
	if len(p.Segments) == 0 {
		return PathSegment{}
	}
	return p.Segments[len(p.Segments)-1]
}

// Parent returns the segment before the last one and false at the root.
func (p PatchPath) Parent() (PathSegment, bool) {
	if len(p.Segments) < 2 {
		return PathSegment{}, false
	}
	return p.Segments[len(p.Segments)-2], true
}

// Entities returns the addressed references in path order.
func (p PatchPath) Entities() []Reference {
	var refs []Reference
	for _, s := range p.Segments {
		if s.Kind == SegmentEntity {
			refs = append(refs, s.Ref)
		}
	}
	return refs
}

// ownsProperties reports whether the last segment names a property of the
// content type itself or of an addressed entity, as opposed to a member of
// a nested object such as validation_regex.
func (p PatchPath) ownsProperties() bool {
	parent, ok := p.Parent()
	return !ok || parent.Kind == SegmentEntity
}
