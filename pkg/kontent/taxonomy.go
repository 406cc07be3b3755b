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

// TaxonomyTerm is a node of a taxonomy term tree. Terms is required at
// every level; leaves carry an empty list.
type TaxonomyTerm struct {
	Name       string         `json:"name"`
	Codename   string         `json:"codename,omitempty"`
	ExternalID string         `json:"external_id,omitempty"`
	Terms      []TaxonomyTerm `json:"terms"`
}

// TaxonomyGroup is the body of a taxonomy group create request.
type TaxonomyGroup struct {
	Name       string         `json:"name"`
	Codename   string         `json:"codename,omitempty"`
	ExternalID string         `json:"external_id,omitempty"`
	Terms      []TaxonomyTerm `json:"terms"`
}

// Validate walks the whole tree.
func (g TaxonomyGroup) Validate() error {
	if g.Name == "" {
		return invalid("name", "is required")
	}
	return validateTerms(g.Terms, "terms")
}

func validateTerms(terms []TaxonomyTerm, field string) error {
	if terms == nil {
		return invalid(field, "is required; use [] for a term without children")
	}
	for i, t := range terms {
		path := indexPath(field, i)
		if t.Name == "" {
			return invalid(joinPath(path, "name"), "is required")
		}
		if err := validateTerms(t.Terms, joinPath(path, "terms")); err != nil {
			return err
		}
	}
	return nil
}

// CountTerms returns the number of terms in the tree.
func (g TaxonomyGroup) CountTerms() int {
	var count func([]TaxonomyTerm) int
	count = func(ts []TaxonomyTerm) int {
		n := len(ts)
		for _, t := range ts {
			n += count(t.Terms)
		}
		return n
	}
	return count(g.Terms)
}
