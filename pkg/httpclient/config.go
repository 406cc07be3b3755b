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

package httpclient

import (
	"fmt"
	"time"
)

// Config configures the outbound client used for Kontent.ai API calls.
type Config struct {
	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration

	// RetryAttempts is the number of retries after the first try.
	// Default: 0. Tool calls are not retried unless configured.
	RetryAttempts int

	// RetryBackoff is the delay before the first retry.
	RetryBackoff time.Duration

	// MaxBackoff caps the exponential backoff.
	MaxBackoff time.Duration

	// UserAgent is sent when the request carries none.
	UserAgent string

	// Headers are added to every request that does not already set them
	// (e.g. X-KC-SOURCE).
	Headers map[string]string

	// RequestsPerSecond paces outbound requests. 0 disables pacing.
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the steady rate.
	Burst int
}

// DefaultConfig returns the settings used when nothing is configured. The
// pacing matches the Management API's 10 requests per second allowance.
func DefaultConfig() Config {
	return Config{
		Timeout:           60 * time.Second,
		RetryAttempts:     0,
		RetryBackoff:      250 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		UserAgent:         "kontent-mcp",
		RequestsPerSecond: 10,
		Burst:             10,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0, got %d", c.RetryAttempts)
	}
	if c.RetryAttempts > 0 {
		if c.RetryBackoff <= 0 {
			return fmt.Errorf("retry_backoff must be > 0 when retry_attempts > 0, got %v", c.RetryBackoff)
		}
		if c.MaxBackoff < c.RetryBackoff {
			return fmt.Errorf("max_backoff (%v) must be >= retry_backoff (%v)", c.MaxBackoff, c.RetryBackoff)
		}
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0, got %v", c.RequestsPerSecond)
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 when requests_per_second is set, got %d", c.Burst)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}
	return nil
}
