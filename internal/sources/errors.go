// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"errors"
	"fmt"

	"github.com/scanprops/scanprops/pkg/types"
)

// ErrMissingOverridePath is the sentinel wrapped by MissingOverridePathError.
var ErrMissingOverridePath = errors.New("override path does not exist")

// MissingOverridePathError reports an overridden source path that does not
// exist on a leaf module.
type MissingOverridePathError struct {
	ModuleID types.ModuleKey
	Path     string
	Property string
}

// Error implements the error interface.
func (e *MissingOverridePathError) Error() string {
	return fmt.Sprintf("the directory '%s' does not exist for module %s; please check the property %s",
		e.Path, e.ModuleID, e.Property)
}

// Unwrap returns ErrMissingOverridePath for use with errors.Is().
func (e *MissingOverridePathError) Unwrap() error { return ErrMissingOverridePath }
