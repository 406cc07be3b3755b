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

/*
Package kontent holds the Kontent.ai data model used by the MCP tools and
the pure validators that run before any request is sent.

# References

Entities are addressed by exactly one of id, codename or external_id:

	ref := kontent.ByCodename("article")
	kind, value, err := ref.Resolve()

Decoding keeps the first non-empty field by precedence id, codename,
external_id. An empty reference decodes but fails Resolve.

# Elements

Content type elements form a union discriminated by "type". ParseElement
fails closed on unknown kinds; ParseSnippetElement additionally rejects
url_slug and snippet elements.

# Patch operations

ParsePatchOperations decodes a batch structurally and preserves order.
PatchOperations.Validate applies the addressing and per-op rules:

	ops, err := kontent.ParsePatchOperations(raw)
	if err == nil {
		err = ops.Validate()
	}

Paths address array members as id:{v}, codename:{v} or external_id:{v};
bare ordinal indexes are rejected.
*/
package kontent
