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

// RichTextBlock is a block kind a rich text element can allow.
type RichTextBlock string

const (
	BlockImages             RichTextBlock = "images"
	BlockText               RichTextBlock = "text"
	BlockTables             RichTextBlock = "tables"
	BlockComponentsAndItems RichTextBlock = "components-and-items"
)

// TableBlock is a block kind allowed inside rich text tables.
type TableBlock string

const (
	TableBlockImages TableBlock = "images"
	TableBlockText   TableBlock = "text"
)

// TextFormatting is an inline formatting option.
type TextFormatting string

const (
	FormattingUnstyled    TextFormatting = "unstyled"
	FormattingBold        TextFormatting = "bold"
	FormattingItalic      TextFormatting = "italic"
	FormattingCode        TextFormatting = "code"
	FormattingLink        TextFormatting = "link"
	FormattingSubscript   TextFormatting = "subscript"
	FormattingSuperscript TextFormatting = "superscript"
)

// TextBlock is a paragraph-level text style.
type TextBlock string

const (
	TextBlockParagraph     TextBlock = "paragraph"
	TextBlockHeadingOne    TextBlock = "heading-one"
	TextBlockHeadingTwo    TextBlock = "heading-two"
	TextBlockHeadingThree  TextBlock = "heading-three"
	TextBlockHeadingFour   TextBlock = "heading-four"
	TextBlockHeadingFive   TextBlock = "heading-five"
	TextBlockHeadingSix    TextBlock = "heading-six"
	TextBlockOrderedList   TextBlock = "ordered-list"
	TextBlockUnorderedList TextBlock = "unordered-list"
)

var (
	richTextBlocks = []RichTextBlock{BlockImages, BlockText, BlockTables, BlockComponentsAndItems}
	tableBlocks    = []TableBlock{TableBlockImages, TableBlockText}
	formattings    = []TextFormatting{
		FormattingUnstyled, FormattingBold, FormattingItalic, FormattingCode,
		FormattingLink, FormattingSubscript, FormattingSuperscript,
	}
	textBlocks = []TextBlock{
		TextBlockParagraph, TextBlockHeadingOne, TextBlockHeadingTwo, TextBlockHeadingThree,
		TextBlockHeadingFour, TextBlockHeadingFive, TextBlockHeadingSix,
		TextBlockOrderedList, TextBlockUnorderedList,
	}
)

// RichTextElement is the rich text element kind. Every allow-list is a
// pointer so that an explicit empty list ("allow everything") survives a
// decode/encode round trip while an absent list stays absent.
type RichTextElement struct {
	NamedElement
	AllowedBlocks          *[]RichTextBlock  `json:"allowed_blocks,omitempty"`
	AllowedFormatting      *[]TextFormatting `json:"allowed_formatting,omitempty"`
	AllowedTextBlocks      *[]TextBlock      `json:"allowed_text_blocks,omitempty"`
	AllowedTableBlocks     *[]TableBlock     `json:"allowed_table_blocks,omitempty"`
	AllowedTableFormatting *[]TextFormatting `json:"allowed_table_formatting,omitempty"`
	AllowedTableTextBlocks *[]TextBlock      `json:"allowed_table_text_blocks,omitempty"`
	AllowedContentTypes    *[]Reference      `json:"allowed_content_types,omitempty"`
	AllowedItemLinkTypes   *[]Reference      `json:"allowed_item_link_types,omitempty"`
	ImageWidthLimit        *CountLimit       `json:"image_width_limit,omitempty"`
	ImageHeightLimit       *CountLimit       `json:"image_height_limit,omitempty"`
	AllowedImageTypes      FileTypes         `json:"allowed_image_types,omitempty"`
	MaximumImageSize       *float64          `json:"maximum_image_size,omitempty"`
	MaximumTextLength      *TextLengthLimit  `json:"maximum_text_length,omitempty"`
}

func (e *RichTextElement) validate(path string) error {
	checks := []error{
		checkEnumList(joinPath(path, "allowed_blocks"), e.AllowedBlocks, richTextBlocks...),
		checkEnumList(joinPath(path, "allowed_formatting"), e.AllowedFormatting, formattings...),
		checkEnumList(joinPath(path, "allowed_text_blocks"), e.AllowedTextBlocks, textBlocks...),
		checkEnumList(joinPath(path, "allowed_table_blocks"), e.AllowedTableBlocks, tableBlocks...),
		checkEnumList(joinPath(path, "allowed_table_formatting"), e.AllowedTableFormatting, formattings...),
		checkEnumList(joinPath(path, "allowed_table_text_blocks"), e.AllowedTableTextBlocks, textBlocks...),
		e.ImageWidthLimit.validate(joinPath(path, "image_width_limit")),
		e.ImageHeightLimit.validate(joinPath(path, "image_height_limit")),
		checkOptionalEnum(joinPath(path, "allowed_image_types"), e.AllowedImageTypes, FileTypesAdjustable, FileTypesAny),
		e.MaximumTextLength.validate(joinPath(path, "maximum_text_length")),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// richTextListValues returns the literals a rich text allow-list accepts.
func richTextListValues(property string) []string {
	var out []string
	switch property {
	case "allowed_blocks":
		for _, v := range richTextBlocks {
			out = append(out, string(v))
		}
	case "allowed_table_blocks":
		for _, v := range tableBlocks {
			out = append(out, string(v))
		}
	case "allowed_formatting", "allowed_table_formatting":
		for _, v := range formattings {
			out = append(out, string(v))
		}
	case "allowed_text_blocks", "allowed_table_text_blocks":
		for _, v := range textBlocks {
			out = append(out, string(v))
		}
	}
	return out
}
