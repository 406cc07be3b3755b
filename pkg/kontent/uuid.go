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

import "github.com/google/uuid"

// DefaultLanguageID is the id of every environment's default language.
const DefaultLanguageID = "00000000-0000-0000-0000-000000000000"

// IsUUID reports whether s is a hyphenated 36-character UUID. Braced, URN
// and compact forms accepted by uuid.Parse are rejected.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func checkUUID(field, s string) error {
	if !IsUUID(s) {
		return invalid(field, "must be a valid UUID, got %q", s)
	}
	return nil
}
