package kontent

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentItemCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    ContentItemCreate
		wantErr bool
	}{
		{"ok", ContentItemCreate{Name: "Hello", Type: ByCodename("article")}, false},
		{"empty name", ContentItemCreate{Name: "", Type: ByCodename("article")}, true},
		{"200 characters", ContentItemCreate{Name: strings.Repeat("a", 200)}, false},
		{"201 characters", ContentItemCreate{Name: strings.Repeat("a", 201)}, true},
		{"multibyte counted as characters", ContentItemCreate{Name: strings.Repeat("é", 200)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContentItemUpdate_Validate(t *testing.T) {
	err := ContentItemUpdate{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No update data provided. At least one field (name or collection) must be specified.")

	name := "New name"
	assert.NoError(t, ContentItemUpdate{Name: &name}.Validate())
	assert.NoError(t, ContentItemUpdate{Collection: ref(ByCodename("default"))}.Validate())

	empty := ""
	assert.Error(t, ContentItemUpdate{Name: &empty}.Validate())
}

func TestTaxonomyGroup_Validate(t *testing.T) {
	var g TaxonomyGroup
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Topics",
		"terms": [
			{"name": "Tech", "terms": [{"name": "Go", "terms": []}]},
			{"name": "Travel", "terms": []}
		]
	}`), &g))
	require.NoError(t, g.Validate())
	assert.Equal(t, 3, g.CountTerms())

	var missing TaxonomyGroup
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Topics","terms":[{"name":"Tech","terms":[{"name":"Go"}]}]}`), &missing))
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terms[0].terms[0].terms")
}

func TestParseWorkflows(t *testing.T) {
	valid := `[{
		"id": "00000000-0000-0000-0000-000000000000",
		"name": "Default",
		"codename": "default",
		"scopes": [],
		"steps": [{"id": "eee6db3b-545a-4785-8e86-e3772c8756f9", "name": "Draft", "codename": "draft", "transitions_to": ["03b6ebd3-2f49-4621-92fd-4977b33681d1"], "role_ids": []}],
		"published_step": {"id": "c199950d-99f0-4983-b711-6c4c91624b22", "name": "Published", "codename": "published"},
		"scheduled_step": {"id": "9d2b0228-4d0d-4c23-8b49-01a698857709", "name": "Scheduled", "codename": "scheduled"},
		"archived_step": {"id": "7a535a69-ad34-47f8-806a-def1fdf4d391", "name": "Archived", "codename": "archived"}
	}]`

	workflows, err := ParseWorkflows([]byte(valid))
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, "draft", workflows[0].Steps[0].Codename)

	broken := strings.Replace(valid, `"03b6ebd3-2f49-4621-92fd-4977b33681d1"`, `"not-a-uuid"`, 1)
	_, err = ParseWorkflows([]byte(broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflows[0].steps[0].transitions_to[0]")
}

func TestNewFilterRequest(t *testing.T) {
	t.Run("order defaults to ascending", func(t *testing.T) {
		req, err := NewFilterRequest(FilterFacets{SearchPhrase: "launch"}, OrderByName, "")
		require.NoError(t, err)
		require.NotNil(t, req.Order)
		assert.Equal(t, "Ascending", req.Order.Direction)
	})

	t.Run("descending", func(t *testing.T) {
		req, err := NewFilterRequest(FilterFacets{}, OrderByDue, OrderDescending)
		require.NoError(t, err)
		assert.Equal(t, "Descending", req.Order.Direction)
	})

	t.Run("no order encodes null", func(t *testing.T) {
		req, err := NewFilterRequest(FilterFacets{ContentTypes: []Reference{ByCodename("article")}}, "", OrderDescending)
		require.NoError(t, err)
		body, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"filters":{"content_types":[{"codename":"article"}]},"order":null}`, string(body))
	})

	t.Run("taxonomy filter keeps explicit false", func(t *testing.T) {
		no := false
		facets := FilterFacets{TaxonomyGroups: []TaxonomyFilter{{
			TaxonomyIdentifier:   ByCodename("tags"),
			TermIdentifiers:      []Reference{ByCodename("news")},
			IncludeUncategorized: &no,
		}}}
		req, err := NewFilterRequest(facets, "", "")
		require.NoError(t, err)
		body, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"filters":{"taxonomy_groups":[{"taxonomy_identifier":{"codename":"tags"},"term_identifiers":[{"codename":"news"}],"include_uncategorized":false}]},"order":null}`, string(body))
	})

	t.Run("rejects", func(t *testing.T) {
		no := false
		tests := []struct {
			name    string
			facets  FilterFacets
			by      OrderBy
			wantErr string
		}{
			{"empty content types", FilterFacets{ContentTypes: []Reference{}}, "", "content_types"},
			{"bad email", FilterFacets{Contributors: []UserReference{{Email: "nobody"}}}, "", "contributors[0].email"},
			{"bad status", FilterFacets{CompletionStatuses: []CompletionStatus{"done"}}, "", "completion_statuses[0]"},
			{"step filter without steps", FilterFacets{WorkflowSteps: []WorkflowStepFilter{{WorkflowIdentifier: ByCodename("default")}}}, "", "step_identifiers"},
			{"taxonomy filter without terms", FilterFacets{TaxonomyGroups: []TaxonomyFilter{{TaxonomyIdentifier: ByCodename("tags"), IncludeUncategorized: &no}}}, "", "term_identifiers"},
			{"taxonomy filter without include_uncategorized", FilterFacets{TaxonomyGroups: []TaxonomyFilter{{TaxonomyIdentifier: ByCodename("tags"), TermIdentifiers: []Reference{ByCodename("news")}}}}, "", "taxonomy_groups[0].include_uncategorized"},
			{"bad order", FilterFacets{}, "created", "order_by"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewFilterRequest(tt.facets, tt.by, "")
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}

func TestSchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Schedule
		wantErr string
	}{
		{"immediate", Schedule{}, ""},
		{"utc", Schedule{ScheduledTo: "2025-06-01T09:00:00Z"}, ""},
		{"offset with millis", Schedule{ScheduledTo: "2025-06-01T09:00:00.250+02:00", DisplayTimezone: "Europe/Prague"}, ""},
		{"no offset", Schedule{ScheduledTo: "2025-06-01T09:00:00"}, "scheduledTo"},
		{"timezone without time", Schedule{DisplayTimezone: "UTC"}, "The 'displayTimezone' parameter can only be used in combination with 'scheduledTo' parameter for scheduled publishing."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate("publishing")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(DefaultLanguageID))
	assert.True(t, IsUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, IsUUID("123e4567e89b12d3a456426614174000"))
	assert.False(t, IsUUID("{123e4567-e89b-12d3-a456-426614174000}"))
	assert.False(t, IsUUID("article"))
}
