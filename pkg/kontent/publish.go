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

import "time"

// Schedule is an optional publish or unpublish time. A zero ScheduledTo
// means "now".
type Schedule struct {
	ScheduledTo     string `json:"scheduled_to,omitempty"`
	DisplayTimezone string `json:"display_timezone,omitempty"`
}

// IsScheduled reports whether a time was given.
func (s Schedule) IsScheduled() bool { return s.ScheduledTo != "" }

// Validate requires an RFC 3339 time with an explicit offset and rejects a
// display timezone without a time. action names the operation in the
// error message ("publishing" or "unpublishing").
func (s Schedule) Validate(action string) error {
	if s.ScheduledTo == "" {
		if s.DisplayTimezone != "" {
			return invalid("",
				"The 'displayTimezone' parameter can only be used in combination with 'scheduledTo' parameter for scheduled %s.", action)
		}
		return nil
	}
	if _, err := time.Parse(time.RFC3339Nano, s.ScheduledTo); err != nil {
		return invalid("scheduledTo", "must be an ISO 8601 date-time with a timezone offset (e.g. 2025-01-31T09:00:00Z), got %q", s.ScheduledTo)
	}
	return nil
}
