// SPDX-License-Identifier: MPL-2.0

package reactor

import (
	"cuelang.org/go/cue"

	"github.com/scanprops/scanprops/pkg/cueutil"
)

type (
	// Query answers configuration lookups such as
	// "maven-compiler-plugin.release" or "maven-war-plugin.overlays[0].target".
	// Missing keys and non-scalar values report false.
	Query interface {
		Get(key string) (string, bool)
	}

	// MapQuery is a Query over pre-flattened keys.
	MapQuery map[string]string

	// cueQuery is a Query over a CUE struct value.
	cueQuery struct {
		value cue.Value
	}
)

// Get implements Query.
func (q MapQuery) Get(key string) (string, bool) {
	v, ok := q[key]
	return v, ok
}

// NewCUEQuery returns a Query that resolves keys below v.
func NewCUEQuery(v cue.Value) Query {
	return &cueQuery{value: v}
}

// Get implements Query.
func (q *cueQuery) Get(key string) (string, bool) {
	if !q.value.Exists() {
		return "", false
	}
	return cueutil.LookupString(q.value, key)
}
