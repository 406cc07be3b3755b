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

package server

import (
	"context"
	_ "embed"
)

//go:embed guide.md
var guide string

func (t *toolset) getInitialContext(_ context.Context, _ noArgs) (any, error) {
	return rawText(guide), nil
}

type datetimeResult struct {
	Datetime string `json:"datetime"`
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func (t *toolset) getCurrentDatetime(_ context.Context, _ noArgs) (any, error) {
	return datetimeResult{Datetime: t.now().UTC().Format(isoMillis)}, nil
}
