// SPDX-License-Identifier: MPL-2.0

package props

import (
	"errors"
	"fmt"
	"maps"
)

// ErrDuplicateKey is returned when a Bag key is written twice.
var ErrDuplicateKey = errors.New("duplicate property key")

// Bag is an append-only string map. It is not safe for concurrent use.
type Bag struct {
	values map[string]string
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]string)}
}

// Put adds key. Writing an existing key fails with ErrDuplicateKey
// and leaves the bag unchanged.
func (b *Bag) Put(key, value string) error {
	if prev, exists := b.values[key]; exists {
		return fmt.Errorf("%w: %q (already %q)", ErrDuplicateKey, key, prev)
	}
	b.values[key] = value
	return nil
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Len returns the number of keys.
func (b *Bag) Len() int { return len(b.values) }

// Map returns a copy of the contents.
func (b *Bag) Map() map[string]string {
	return maps.Clone(b.values)
}
