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
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

func invalid(field, format string, args ...any) error {
	return &kerrors.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// decodeObject splits a JSON object into its raw members.
func decodeObject(data []byte, path, what string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, invalid(path, "%s must be a JSON object", what)
	}
	return obj, nil
}

// requireKeys fails on the first key that is absent or null.
func requireKeys(obj map[string]json.RawMessage, path string, keys ...string) error {
	for _, k := range keys {
		if v, ok := obj[k]; !ok || isNull(v) {
			return invalid(joinPath(path, k), "is required")
		}
	}
	return nil
}

// requireNested checks required members of an optional nested object.
// A missing or null parent is accepted.
func requireNested(obj map[string]json.RawMessage, path, field string, keys ...string) error {
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		return nil
	}
	nested, err := decodeObject(raw, joinPath(path, field), field)
	if err != nil {
		return err
	}
	return requireKeys(nested, joinPath(path, field), keys...)
}

// decodeInto unmarshals data into v and reports type mismatches as
// validation errors rooted at path.
func decodeInto(data []byte, v any, path string) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalid(joinPath(path, typeErr.Field), "expected %s, got %s", typeErr.Type, typeErr.Value)
	}
	var verr *kerrors.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return invalid(path, "%v", err)
}

type enum interface{ ~string }

func checkEnum[T enum](field string, v T, allowed ...T) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return invalid(field, "must be one of %s, got %q", strings.Join(names, ", "), string(v))
}

// checkOptionalEnum accepts the zero value as "not set".
func checkOptionalEnum[T enum](field string, v T, allowed ...T) error {
	if v == "" {
		return nil
	}
	return checkEnum(field, v, allowed...)
}

// checkEnumList validates an allow-list; nil means absent.
func checkEnumList[T enum](field string, list *[]T, allowed ...T) error {
	if list == nil {
		return nil
	}
	for i, v := range *list {
		if err := checkEnum(indexPath(field, i), v, allowed...); err != nil {
			return err
		}
	}
	return nil
}

func checkNonEmptyList[T any](field string, list []T) error {
	if list != nil && len(list) == 0 {
		return invalid(field, "must contain at least one item")
	}
	return nil
}
