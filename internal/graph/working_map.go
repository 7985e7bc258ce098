// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"slices"

	"github.com/scanprops/scanprops/pkg/reactor"
	"github.com/scanprops/scanprops/pkg/types"
)

type (
	// Entry pairs a module with its own properties.
	Entry struct {
		Module     *reactor.Module
		Properties map[string]string
	}

	// WorkingMap holds the modules not yet placed in the hierarchy.
	// Iteration follows the builder's input order.
	WorkingMap struct {
		entries []*Entry
	}
)

// NewWorkingMap creates a map from entries, keeping their order.
func NewWorkingMap(entries ...*Entry) *WorkingMap {
	return &WorkingMap{entries: slices.Clone(entries)}
}

// Len returns the number of remaining modules.
func (w *WorkingMap) Len() int { return len(w.entries) }

// Contains reports whether m is still unplaced.
func (w *WorkingMap) Contains(m *reactor.Module) bool {
	return w.index(m.Key) >= 0
}

// Remove takes the entry of m out of the map.
func (w *WorkingMap) Remove(m *reactor.Module) (*Entry, bool) {
	i := w.index(m.Key)
	if i < 0 {
		return nil, false
	}
	e := w.entries[i]
	w.entries = slices.Delete(w.entries, i, i+1)
	return e, true
}

// Remaining returns the unplaced modules in input order.
func (w *WorkingMap) Remaining() []*reactor.Module {
	out := make([]*reactor.Module, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.Module
	}
	return out
}

func (w *WorkingMap) index(k types.ModuleKey) int {
	return slices.IndexFunc(w.entries, func(e *Entry) bool { return e.Module.Key == k })
}
