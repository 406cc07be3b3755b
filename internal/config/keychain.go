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

package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeychainService is the service name under which API keys are stored,
// keyed by environment id.
const KeychainService = "kontent-mcp"

// ErrKeyNotFound is returned when no key is stored for an environment.
var ErrKeyNotFound = errors.New("no API key stored for environment")

// KeyStore stores Management API keys per environment.
type KeyStore interface {
	Get(environmentID string) (string, error)
	Set(environmentID, apiKey string) error
	Delete(environmentID string) error
}

// Keychain is the KeyStore backed by the OS keychain (macOS Keychain,
// Secret Service on Linux, Windows Credential Manager).
type Keychain struct{}

// Get implements KeyStore.
func (Keychain) Get(environmentID string) (string, error) {
	key, err := keyring.Get(KeychainService, environmentID)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, environmentID)
	}
	if err != nil {
		return "", fmt.Errorf("keychain error: %w", err)
	}
	return key, nil
}

// Set implements KeyStore.
func (Keychain) Set(environmentID, apiKey string) error {
	if err := keyring.Set(KeychainService, environmentID, apiKey); err != nil {
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}

// Delete implements KeyStore.
func (Keychain) Delete(environmentID string) error {
	err := keyring.Delete(KeychainService, environmentID)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, environmentID)
	}
	if err != nil {
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}
