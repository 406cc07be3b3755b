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

import "fmt"

// MissingReferenceFieldError is returned when a reference has none of the
// fields a call site needs.
type MissingReferenceFieldError struct {
	// Field is the wanted field, or "" when any field would do
	Field string
}

func (e *MissingReferenceFieldError) Error() string {
	if e.Field == "" {
		return "reference must set one of id, codename or external_id"
	}
	return fmt.Sprintf("reference does not set %s", e.Field)
}

func (e *MissingReferenceFieldError) ErrorType() string { return "validation" }
func (e *MissingReferenceFieldError) IsRetryable() bool { return false }

// UnknownElementTypeError is returned for an element whose type tag is not
// one of the known element kinds.
type UnknownElementTypeError struct {
	Type string
	Path string
}

func (e *UnknownElementTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown element type %q", e.Type)
	}
	return fmt.Sprintf("%s: unknown element type %q", e.Path, e.Type)
}

func (e *UnknownElementTypeError) ErrorType() string { return "validation" }
func (e *UnknownElementTypeError) IsRetryable() bool { return false }

// ForbiddenSnippetElementError is returned for element kinds that cannot
// live inside a content type snippet.
type ForbiddenSnippetElementError struct {
	Type string
	Path string
}

func (e *ForbiddenSnippetElementError) Error() string {
	msg := fmt.Sprintf("element type %q is not allowed in a content type snippet", e.Type)
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

func (e *ForbiddenSnippetElementError) ErrorType() string { return "validation" }
func (e *ForbiddenSnippetElementError) IsRetryable() bool { return false }

// InvalidPatchPathError is returned for a patch path that does not follow
// the /property/{kind}:{value} addressing grammar.
type InvalidPatchPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPatchPathError) Error() string {
	return fmt.Sprintf("invalid patch path %q: %s", e.Path, e.Reason)
}

func (e *InvalidPatchPathError) ErrorType() string { return "validation" }
func (e *InvalidPatchPathError) IsRetryable() bool { return false }
