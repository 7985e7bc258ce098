// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModuleKey is the sentinel error wrapped by InvalidModuleKeyError.
var ErrInvalidModuleKey = errors.New("invalid module key")

type (
	// ModuleKey identifies a build module as "<group>:<artifact>".
	// Keys are unique within one conversion run and are used verbatim as
	// flattening prefix segments, so they never contain whitespace.
	ModuleKey string

	// InvalidModuleKeyError is returned when a ModuleKey is not of the
	// form "<group>:<artifact>" with both parts non-empty.
	InvalidModuleKeyError struct {
		Value ModuleKey
	}
)

// NewModuleKey joins a group and artifact identifier into a ModuleKey.
func NewModuleKey(group, artifact string) ModuleKey {
	return ModuleKey(group + ":" + artifact)
}

// Error implements the error interface.
func (e *InvalidModuleKeyError) Error() string {
	return fmt.Sprintf("invalid module key %q: expected <group>:<artifact>", string(e.Value))
}

// Unwrap returns ErrInvalidModuleKey for errors.Is() compatibility.
func (e *InvalidModuleKeyError) Unwrap() error { return ErrInvalidModuleKey }

// String returns the string representation of the ModuleKey.
func (k ModuleKey) String() string { return string(k) }

// Group returns the part before the first colon.
func (k ModuleKey) Group() string {
	group, _, _ := strings.Cut(string(k), ":")
	return group
}

// Artifact returns the part after the first colon.
func (k ModuleKey) Artifact() string {
	_, artifact, _ := strings.Cut(string(k), ":")
	return artifact
}

// Validate returns an error if the key is malformed.
func (k ModuleKey) Validate() error {
	group, artifact, ok := strings.Cut(string(k), ":")
	if !ok || group == "" || artifact == "" || strings.ContainsAny(string(k), " \t\r\n,") {
		return &InvalidModuleKeyError{Value: k}
	}
	return nil
}
