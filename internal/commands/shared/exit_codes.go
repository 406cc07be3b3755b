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


package shared

import (
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/tombee/kontent-mcp/pkg/errors"
)

const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitConfigError   = 2
	ExitUsageError    = 3
	ExitKeychainError = 4
)

// ExitError carries a process exit code through cobra's RunE.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

func NewFailure(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitFailure, Message: msg, Cause: cause}
}

func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitConfigError, Message: msg, Cause: cause}
}

func NewUsageError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitUsageError, Message: msg, Cause: cause}
}

func NewKeychainError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitKeychainError, Message: msg, Cause: cause}
}

// ExitCode returns the exit code err should terminate the process with.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var cfgErr *pkgerrors.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitFailure
}

// HandleExitError prints err to stderr and exits. It returns when err is nil.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	WriteError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

// WriteError prints err and, when one is found in the chain, the
// suggestion of a UserVisibleError.
func WriteError(w io.Writer, err error) {
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(w, "Error:", msg)
	}
	writeSuggestion(w, err)
}

func writeSuggestion(w io.Writer, err error) {
	for err != nil {
		if userErr, ok := err.(pkgerrors.UserVisibleError); ok {
			if userErr.IsUserVisible() {
				if suggestion := userErr.Suggestion(); suggestion != "" {
					fmt.Fprintf(w, "\nSuggestion: %s\n", suggestion)
				}
			}
			return
		}
		err = errors.Unwrap(err)
	}
}
