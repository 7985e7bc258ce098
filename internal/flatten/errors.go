// SPDX-License-Identifier: MPL-2.0

package flatten

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scanprops/scanprops/pkg/types"
)

// ErrStructuralInconsistency is the sentinel wrapped by StructuralInconsistencyError.
var ErrStructuralInconsistency = errors.New("structural inconsistency")

const (
	// ReasonRootMissing means the root module is not in the working map.
	ReasonRootMissing Reason = "root-missing"
	// ReasonOrphan means modules were left unplaced after the walk.
	ReasonOrphan Reason = "orphan"
	// ReasonDuplicateKey means a property key was written twice.
	ReasonDuplicateKey Reason = "duplicate-key"
)

type (
	// Reason classifies a StructuralInconsistencyError.
	Reason string

	// StructuralInconsistencyError reports a module set that cannot be
	// flattened into a single tree.
	StructuralInconsistencyError struct {
		Reason  Reason
		Modules []types.ModuleKey
		// Key is the offending property key for ReasonDuplicateKey.
		Key   string
		Cause error
	}
)

// Error implements the error interface.
func (e *StructuralInconsistencyError) Error() string {
	switch e.Reason {
	case ReasonRootMissing:
		return fmt.Sprintf("root module %s is not part of the module set (was it skipped?)", joinKeys(e.Modules))
	case ReasonOrphan:
		return fmt.Sprintf("unable to determine the structure of the project: %s not reachable from the root module (orphan)",
			joinKeys(e.Modules))
	case ReasonDuplicateKey:
		return fmt.Sprintf("property %q written twice while placing %s", e.Key, joinKeys(e.Modules))
	default:
		return ErrStructuralInconsistency.Error()
	}
}

// Unwrap returns ErrStructuralInconsistency for use with errors.Is().
func (e *StructuralInconsistencyError) Unwrap() error { return ErrStructuralInconsistency }

func joinKeys(keys []types.ModuleKey) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(s, ", ")
}
