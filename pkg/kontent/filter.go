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

import "net/mail"

type CompletionStatus string

const (
	CompletionUnfinished    CompletionStatus = "unfinished"
	CompletionCompleted     CompletionStatus = "completed"
	CompletionNotTranslated CompletionStatus = "not_translated"
	CompletionAllDone       CompletionStatus = "all_done"
)

type OrderBy string

const (
	OrderByName         OrderBy = "name"
	OrderByDue          OrderBy = "due"
	OrderByLastModified OrderBy = "last_modified"
)

type OrderDirection string

const (
	OrderAscending  OrderDirection = "asc"
	OrderDescending OrderDirection = "desc"
)

// UserReference addresses a contributor by id or email.
type UserReference struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// WorkflowStepFilter matches variants in any of the given steps of a workflow.
type WorkflowStepFilter struct {
	WorkflowIdentifier Reference   `json:"workflow_identifier"`
	StepIdentifiers    []Reference `json:"step_identifiers"`
}

// TaxonomyFilter matches variants tagged with any of the given terms.
type TaxonomyFilter struct {
	TaxonomyIdentifier   Reference   `json:"taxonomy_identifier"`
	TermIdentifiers      []Reference `json:"term_identifiers"`
	IncludeUncategorized *bool       `json:"include_uncategorized"`
}

// FilterFacets are combined with AND semantics. A nil facet is not applied.
type FilterFacets struct {
	SearchPhrase       string               `json:"search_phrase,omitempty"`
	ContentTypes       []Reference          `json:"content_types,omitempty"`
	Contributors       []UserReference      `json:"contributors,omitempty"`
	HasNoContributors  *bool                `json:"has_no_contributors,omitempty"`
	CompletionStatuses []CompletionStatus   `json:"completion_statuses,omitempty"`
	Language           *Reference           `json:"language,omitempty"`
	WorkflowSteps      []WorkflowStepFilter `json:"workflow_steps,omitempty"`
	TaxonomyGroups     []TaxonomyFilter     `json:"taxonomy_groups,omitempty"`
}

// FilterOrder is the API's ordering clause.
type FilterOrder struct {
	By        OrderBy `json:"by"`
	Direction string  `json:"direction"`
}

// FilterRequest is the body of a variant filter request. Order is encoded
// as null when no ordering was requested.
type FilterRequest struct {
	Filters FilterFacets `json:"filters"`
	Order   *FilterOrder `json:"order"`
}

// Validate applies the facet rules: lists that are present must be
// non-empty, enums must be known and emails well formed.
func (f FilterFacets) Validate() error {
	for _, err := range []error{
		checkNonEmptyList("content_types", f.ContentTypes),
		checkNonEmptyList("contributors", f.Contributors),
		checkNonEmptyList("completion_statuses", f.CompletionStatuses),
		checkNonEmptyList("workflow_steps", f.WorkflowSteps),
		checkNonEmptyList("taxonomy_groups", f.TaxonomyGroups),
	} {
		if err != nil {
			return err
		}
	}
	for i, c := range f.Contributors {
		if c.Email == "" {
			continue
		}
		if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
			return invalid(joinPath(indexPath("contributors", i), "email"), "must be a valid email address, got %q", c.Email)
		}
	}
	for i, s := range f.CompletionStatuses {
		if err := checkEnum(indexPath("completion_statuses", i), s,
			CompletionUnfinished, CompletionCompleted, CompletionNotTranslated, CompletionAllDone); err != nil {
			return err
		}
	}
	for i, ws := range f.WorkflowSteps {
		if len(ws.StepIdentifiers) == 0 {
			return invalid(joinPath(indexPath("workflow_steps", i), "step_identifiers"), "must contain at least one item")
		}
	}
	for i, tg := range f.TaxonomyGroups {
		if tg.TermIdentifiers == nil {
			return invalid(joinPath(indexPath("taxonomy_groups", i), "term_identifiers"), "is required")
		}
		if tg.IncludeUncategorized == nil {
			return invalid(joinPath(indexPath("taxonomy_groups", i), "include_uncategorized"), "is required")
		}
	}
	return nil
}

// NewFilterRequest builds the request body. Direction defaults to
// ascending and is ignored when by is empty.
func NewFilterRequest(facets FilterFacets, by OrderBy, direction OrderDirection) (FilterRequest, error) {
	if err := facets.Validate(); err != nil {
		return FilterRequest{}, err
	}
	if err := checkOptionalEnum("order_by", by, OrderByName, OrderByDue, OrderByLastModified); err != nil {
		return FilterRequest{}, err
	}
	if err := checkOptionalEnum("order_direction", direction, OrderAscending, OrderDescending); err != nil {
		return FilterRequest{}, err
	}
	req := FilterRequest{Filters: facets}
	if by != "" {
		req.Order = &FilterOrder{By: by, Direction: "Ascending"}
		if direction == OrderDescending {
			req.Order.Direction = "Descending"
		}
	}
	return req, nil
}
