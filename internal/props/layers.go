// SPDX-License-Identifier: MPL-2.0

package props

import "strings"

const (
	// TierNone means no tier defines the key.
	TierNone Tier = iota
	// TierUser is the explicit caller-supplied tier.
	TierUser
	// TierEnvironment is the environment-sourced tier.
	TierEnvironment
	// TierModule is the module-local declared tier.
	TierModule
)

type (
	// Tier identifies which override layer supplied a value.
	Tier int

	// Layers carries the run-wide override tiers. Module-local properties
	// are supplied per lookup since they differ for every module.
	Layers struct {
		User        map[string]string
		Environment map[string]string
	}
)

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierUser:
		return "user"
	case TierEnvironment:
		return "environment"
	case TierModule:
		return "module"
	default:
		return "none"
	}
}

// Lookup returns the value of key from the highest tier that defines it.
func (l Layers) Lookup(key string, local map[string]string) (string, Tier, bool) {
	if v, ok := defined(l.User, key); ok {
		return v, TierUser, true
	}
	if v, ok := defined(l.Environment, key); ok {
		return v, TierEnvironment, true
	}
	if v, ok := defined(local, key); ok {
		return v, TierModule, true
	}
	return "", TierNone, false
}

// Defines reports whether any run-wide or local tier defines key.
func (l Layers) Defines(key string, local map[string]string) bool {
	_, _, ok := l.Lookup(key, local)
	return ok
}

func defined(m map[string]string, key string) (string, bool) {
	v, ok := m[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
