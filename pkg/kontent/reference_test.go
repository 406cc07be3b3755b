package kontent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  ReferenceKind
		wantValue string
		wantJSON  string
	}{
		{
			name:      "id only",
			input:     `{"id":"a3b7c2d1-0000-4000-8000-000000000001"}`,
			wantKind:  ReferenceByID,
			wantValue: "a3b7c2d1-0000-4000-8000-000000000001",
			wantJSON:  `{"id":"a3b7c2d1-0000-4000-8000-000000000001"}`,
		},
		{
			name:      "codename only",
			input:     `{"codename":"article"}`,
			wantKind:  ReferenceByCodename,
			wantValue: "article",
			wantJSON:  `{"codename":"article"}`,
		},
		{
			name:      "external id only",
			input:     `{"external_id":"ext-1"}`,
			wantKind:  ReferenceByExternalID,
			wantValue: "ext-1",
			wantJSON:  `{"external_id":"ext-1"}`,
		},
		{
			name:      "id wins over codename",
			input:     `{"codename":"article","id":"x"}`,
			wantKind:  ReferenceByID,
			wantValue: "x",
			wantJSON:  `{"id":"x"}`,
		},
		{
			name:      "codename wins over external id",
			input:     `{"external_id":"ext","codename":"article"}`,
			wantKind:  ReferenceByCodename,
			wantValue: "article",
			wantJSON:  `{"codename":"article"}`,
		},
		{
			name:      "empty strings are skipped",
			input:     `{"id":"","codename":"","external_id":"ext"}`,
			wantKind:  ReferenceByExternalID,
			wantValue: "ext",
			wantJSON:  `{"external_id":"ext"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Reference
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ref))
			assert.Equal(t, tt.wantKind, ref.Kind())
			assert.Equal(t, tt.wantValue, ref.Value())

			out, err := json.Marshal(ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(out))
		})
	}
}

func TestReference_EmptyDecodesButFailsResolve(t *testing.T) {
	var ref Reference
	require.NoError(t, json.Unmarshal([]byte(`{}`), &ref))
	assert.True(t, ref.IsZero())

	_, _, err := ref.Resolve()
	var missing *MissingReferenceFieldError
	require.True(t, errors.As(err, &missing))
	assert.Empty(t, missing.Field)

	out, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestReference_RejectsNonObject(t *testing.T) {
	var ref Reference
	assert.Error(t, json.Unmarshal([]byte(`"article"`), &ref))
}

func TestReference_FieldAccessors(t *testing.T) {
	ref := ByCodename("article")

	got, err := ref.Codename()
	require.NoError(t, err)
	assert.Equal(t, "article", got)

	_, err = ref.ID()
	var missing *MissingReferenceFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "id", missing.Field)

	_, err = ref.ExternalID()
	assert.Error(t, err)
}

func TestParseReferenceSegment(t *testing.T) {
	tests := []struct {
		seg    string
		want   Reference
		wantOK bool
	}{
		{"id:123e4567-e89b-12d3-a456-426614174000", ByID("123e4567-e89b-12d3-a456-426614174000"), true},
		{"codename:title", ByCodename("title"), true},
		{"external_id:ext", ByExternalID("ext"), true},
		{"codename:", Reference{}, false},
		{"title", Reference{}, false},
		{"0", Reference{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			got, ok := ParseReferenceSegment(tt.seg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Equal(t, tt.seg, got.Segment())
			}
		})
	}
}

func TestReferenceFromIdentifier(t *testing.T) {
	assert.Equal(t, ReferenceByID, ReferenceFromIdentifier("123e4567-e89b-12d3-a456-426614174000").Kind())
	assert.Equal(t, ReferenceByCodename, ReferenceFromIdentifier("title").Kind())
	assert.Equal(t, ReferenceByCodename, ReferenceFromIdentifier("123e4567e89b12d3a456426614174000").Kind())
}
