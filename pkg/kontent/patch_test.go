package kontent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	elementID = "123e4567-e89b-12d3-a456-426614174000"
	optionID  = "987fcdeb-51a2-43d1-9f4e-123456789abc"
	groupID   = "456e7890-a12b-34c5-d678-901234567def"
)

func TestParsePatchPath(t *testing.T) {
	p, err := ParsePatchPath("/elements/id:" + elementID + "/options/id:" + optionID)
	require.NoError(t, err)

	refs := p.Entities()
	require.Len(t, refs, 2)
	assert.Equal(t, ByID(elementID), refs[0])
	assert.Equal(t, ByID(optionID), refs[1])
	assert.Equal(t, SegmentEntity, p.Last().Kind)
}

func TestParsePatchPath_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantReason string
	}{
		{"relative", "elements", "must start with '/'"},
		{"empty", "", "must start with '/'"},
		{"root only", "/", "empty"},
		{"trailing slash", "/elements/", "empty"},
		{"bare ordinal", "/elements/0", "bare ordinal"},
		{"json pointer append", "/elements/-", "bare ordinal"},
		{"nested ordinal", "/elements/codename:size/options/2", "bare ordinal"},
		{"unprefixed member", "/elements/title", "must be id:{value}"},
		{"reference where property expected", "/codename:title", "expected a property name"},
		{"unknown literal", "/elements/codename:body/allowed_blocks/video", "not a valid member"},
		{"segment after literal", "/elements/codename:body/allowed_blocks/images/x", "after array member"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatchPath(tt.path)
			var perr *InvalidPatchPathError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Contains(t, perr.Reason, tt.wantReason)
		})
	}
}

func TestParsePatchOperations_PreservesOrderAndShape(t *testing.T) {
	// N replaces clearing content_group followed by M removals of groups
	var b strings.Builder
	b.WriteString("[")
	const n, m = 3, 2
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `{"op":"replace","path":"/elements/codename:el_%d/content_group","value":null},`, i)
	}
	for i := 0; i < m; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"op":"remove","path":"/content_groups/codename:group_%d"}`, i)
	}
	b.WriteString("]")

	ops, err := ParsePatchOperations([]byte(b.String()))
	require.NoError(t, err)
	require.Len(t, ops, n+m)

	for i := 0; i < n; i++ {
		assert.Equal(t, OpReplace, ops[i].Op)
		assert.Equal(t, fmt.Sprintf("/elements/codename:el_%d/content_group", i), ops[i].Path)
		assert.Equal(t, "null", string(ops[i].Value))
	}
	for i := 0; i < m; i++ {
		assert.Equal(t, OpRemove, ops[n+i].Op)
	}
	require.NoError(t, ops.Validate())

	out, err := json.Marshal(ops.Normalized())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"value":null`)
}

func TestParsePatchOperations_Permissive(t *testing.T) {
	ops, err := ParsePatchOperations([]byte(`[
		{"op":"move","path":"/elements/codename:a","before":{"codename":"b"},"after":{"codename":"c"}},
		{"op":"move","path":"/elements/codename:a"},
		{"op":"addInto","path":"/elements","value":42}
	]`))
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.NotNil(t, ops[0].Before)
	assert.NotNil(t, ops[0].After)
}

func TestParsePatchOperations_StructuralFailures(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{"empty batch", `[]`, "operations"},
		{"not an array", `{"op":"remove"}`, "operations"},
		{"unknown op", `[{"op":"copy","path":"/name"}]`, "operations[0].op"},
		{"missing path", `[{"op":"remove","path":"/elements/codename:a"},{"op":"remove"}]`, "operations[1].path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatchOperations([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func ref(r Reference) *Reference { return &r }

func TestPatchOperation_Validate(t *testing.T) {
	rawOp := func(s string) PatchOperation {
		var op PatchOperation
		require.NoError(t, json.Unmarshal([]byte(s), &op))
		return op
	}

	tests := []struct {
		name    string
		op      PatchOperation
		wantErr string
	}{
		{
			name: "move with before",
			op:   Move("/elements/id:"+elementID, ref(ByCodename("title")), nil),
		},
		{
			name: "move option with after",
			op:   Move("/elements/id:"+elementID+"/options/id:"+optionID, nil, ref(ByCodename("small"))),
		},
		{
			name:    "move with both anchors",
			op:      Move("/elements/id:"+elementID, ref(ByCodename("a")), ref(ByCodename("b"))),
			wantErr: "exactly one of before or after",
		},
		{
			name:    "move with no anchor",
			op:      Move("/elements/id:"+elementID, nil, nil),
			wantErr: "requires one of before or after",
		},
		{
			name:    "move with empty anchor",
			op:      Move("/elements/id:"+elementID, ref(Reference{}), nil),
			wantErr: "before",
		},
		{
			name:    "move a property",
			op:      Move("/elements", ref(ByCodename("a")), nil),
			wantErr: "move must target",
		},
		{
			name: "add element",
			op:   rawOp(`{"op":"addInto","path":"/elements","value":{"type":"text","name":"Subtitle"}}`),
		},
		{
			name:    "add invalid element",
			op:      rawOp(`{"op":"addInto","path":"/elements","value":{"type":"text"}}`),
			wantErr: "value.name",
		},
		{
			name:    "add unknown element type",
			op:      rawOp(`{"op":"addInto","path":"/elements","value":{"type":"video","name":"V"}}`),
			wantErr: "unknown element type",
		},
		{
			name: "add content group",
			op:   rawOp(`{"op":"addInto","path":"/content_groups","value":{"name":"SEO"}}`),
		},
		{
			name:    "add content group without name",
			op:      rawOp(`{"op":"addInto","path":"/content_groups","value":{"codename":"seo"}}`),
			wantErr: "name",
		},
		{
			name: "add option",
			op:   rawOp(`{"op":"addInto","path":"/elements/codename:size/options","value":{"name":"XL"}}`),
		},
		{
			name: "add allowed content type",
			op:   rawOp(`{"op":"addInto","path":"/elements/codename:body/allowed_content_types","value":{"codename":"article"}}`),
		},
		{
			name:    "add empty reference",
			op:      rawOp(`{"op":"addInto","path":"/elements/codename:body/allowed_content_types","value":{}}`),
			wantErr: "reference must set",
		},
		{
			name: "add allowed block",
			op:   rawOp(`{"op":"addInto","path":"/elements/codename:body/allowed_blocks","value":"tables"}`),
		},
		{
			name:    "add unknown formatting",
			op:      rawOp(`{"op":"addInto","path":"/elements/codename:body/allowed_formatting","value":"underline"}`),
			wantErr: "must be one of",
		},
		{
			name:    "add into a scalar",
			op:      rawOp(`{"op":"addInto","path":"/name","value":"x"}`),
			wantErr: "addInto must target an array property",
		},
		{
			name:    "add without value",
			op:      rawOp(`{"op":"addInto","path":"/elements"}`),
			wantErr: "value",
		},
		{
			name: "remove element",
			op:   Remove("/elements/id:" + elementID),
		},
		{
			name: "remove content group",
			op:   Remove("/content_groups/id:" + groupID),
		},
		{
			name: "remove allowed block",
			op:   Remove("/elements/codename:body/allowed_blocks/images"),
		},
		{
			name:    "remove a property",
			op:      Remove("/elements"),
			wantErr: "remove must target",
		},
		{
			name: "replace name",
			op:   rawOp(`{"op":"replace","path":"/name","value":"Blog post"}`),
		},
		{
			name: "replace option codename",
			op:   rawOp(`{"op":"replace","path":"/elements/id:` + elementID + `/options/id:` + optionID + `/codename","value":"xl"}`),
		},
		{
			name: "clear content group",
			op:   rawOp(`{"op":"replace","path":"/elements/codename:title/content_group","value":null}`),
		},
		{
			name:    "replace external id",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:title/external_id","value":"x"}`),
			wantErr: "external_id cannot be replaced",
		},
		{
			name:    "replace id",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:title/id","value":"x"}`),
			wantErr: "id cannot be replaced",
		},
		{
			name:    "replace type",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:title/type","value":"number"}`),
			wantErr: "type cannot be replaced",
		},
		{
			name:    "replace an array",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:body/allowed_blocks","value":["text"]}`),
			wantErr: "use addInto and remove",
		},
		{
			name:    "replace elements",
			op:      rawOp(`{"op":"replace","path":"/elements","value":[]}`),
			wantErr: "use addInto and remove",
		},
		{
			name:    "replace inside an object",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:title/validation_regex/regex","value":"^a"}`),
			wantErr: "replace the whole object",
		},
		{
			name:    "replace an entity",
			op:      rawOp(`{"op":"replace","path":"/elements/codename:title","value":{}}`),
			wantErr: "replace must target a property",
		},
		{
			name:    "replace without value",
			op:      rawOp(`{"op":"replace","path":"/name"}`),
			wantErr: "value",
		},
		{
			name:    "ordinal path",
			op:      Remove("/elements/0"),
			wantErr: "bare ordinal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPatchOperations_ValidateReportsIndex(t *testing.T) {
	ops := PatchOperations{
		Remove("/elements/codename:a"),
		Move("/elements/codename:b", nil, nil),
	}
	err := ops.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operations[1]")
}

func TestPatchOperation_Normalized(t *testing.T) {
	var op PatchOperation
	require.NoError(t, json.Unmarshal([]byte(`{"op":"remove","path":"/elements/codename:a","value":1,"before":{"codename":"x"}}`), &op))

	out, err := json.Marshal(op.Normalized())
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"remove","path":"/elements/codename:a"}`, string(out))
}

func TestPatchBuilders(t *testing.T) {
	add, err := AddInto("/content_groups", ContentGroup{Name: "SEO"})
	require.NoError(t, err)
	assert.NoError(t, add.Validate())

	clearGroup, err := Replace("/elements/codename:title/content_group", nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(clearGroup.Value))
	assert.NoError(t, clearGroup.Validate())
}
