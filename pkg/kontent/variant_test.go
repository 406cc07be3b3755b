package kontent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariantElements_ArrayForm(t *testing.T) {
	els, err := ParseVariantElements(`[
		{"element": {"codename": "title"}, "value": "Hello"},
		{"element": {"id": "123e4567-e89b-12d3-a456-426614174000"}, "value": 3},
		{"element": {"codename": "tags"}, "value": [{"codename": "news"}]},
		{"element": {"codename": "body"}, "value": "<p>x</p>", "components": []},
		{"element": {"codename": "published"}, "value": null, "display_timezone": "Europe/Prague"},
	]`)
	require.NoError(t, err)
	require.Len(t, els, 5)

	assert.Equal(t, ByCodename("title"), els[0].Element)
	assert.Equal(t, `"Hello"`, string(els[0].Value))
	assert.Equal(t, ReferenceByID, els[1].Element.Kind())
	assert.Contains(t, els[3].Extra, "components")

	out, err := json.Marshal(els[4])
	require.NoError(t, err)
	assert.JSONEq(t, `{"element":{"codename":"published"},"value":null,"display_timezone":"Europe/Prague"}`, string(out))
}

func TestParseVariantElements_MapForm(t *testing.T) {
	els, err := ParseVariantElements(`{
		// comments are allowed
		"title": {"value": "Hello"},
		"123e4567-e89b-12d3-a456-426614174000": {"value": 1}
	}`)
	require.NoError(t, err)
	require.Len(t, els, 2)

	// keys are sorted, so the UUID comes first
	assert.Equal(t, ByID("123e4567-e89b-12d3-a456-426614174000"), els[0].Element)
	assert.Equal(t, ByCodename("title"), els[1].Element)
}

func TestParseVariantElements_SyntaxError(t *testing.T) {
	_, err := ParseVariantElements(`[{"element": {"codename": "title"}, "value": }]`)

	var syntaxErr *ElementsSyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Contains(t, syntaxErr.Error(), "Invalid JSON format in elements parameter. ")
}

func TestParseVariantElements_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"scalar", `"title"`, "must be a JSON array"},
		{"missing element", `[{"value":"x"}]`, "elements[0].element"},
		{"empty element reference", `[{"element":{},"value":"x"}]`, "reference must set"},
		{"missing value", `[{"element":{"codename":"t"}}]`, "elements[0].value"},
		{"object value", `[{"element":{"codename":"t"},"value":{"a":1}}]`, "must be a string"},
		{"boolean value", `[{"element":{"codename":"t"},"value":true}]`, "must be a string"},
		{"non-reference item", `[{"element":{"codename":"t"},"value":["news"]}]`, "reference object"},
		{"map entry without value", `{"title":{"text":"x"}}`, "elements.title.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVariantElements(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVariantUpsert_Marshal(t *testing.T) {
	els, err := ParseVariantElements(`[{"element":{"codename":"title"},"value":"Hi"}]`)
	require.NoError(t, err)

	body, err := json.Marshal(VariantUpsert{Elements: els, WorkflowStep: ref(ByCodename("draft"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"elements":[{"element":{"codename":"title"},"value":"Hi"}],"workflow_step":{"codename":"draft"}}`, string(body))

	body, err = json.Marshal(VariantUpsert{Elements: els})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "workflow_step")
}
