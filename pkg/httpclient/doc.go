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

// Package httpclient builds the *http.Client used for Kontent.ai API calls.
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Headers = map[string]string{"X-KC-SOURCE": "kontent-mcp;1.4.0"}
//	client, err := httpclient.New(cfg)
//
// Every request gets the configured User-Agent and static headers, the
// correlation id from its context, and a structured log line with the
// sanitized URL and duration. Requests are paced with a shared token bucket
// (10 per second by default). Retries are off by default; when enabled
// only GET and HEAD requests are repeated.
package httpclient
