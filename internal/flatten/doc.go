// SPDX-License-Identifier: MPL-2.0

// Package flatten places every module of a working map into one flat,
// prefix-namespaced property bag.
//
// The walk starts at the root with an empty prefix. Each declared sub-module
// reference is matched against the modules not yet placed (by descriptor
// file first, then by directory), so the real topology is rediscovered from
// disk instead of trusted. A child is written under
// "<parent prefix><child key>." and listed in its parent's sonar.modules.
// Modules never reached are orphans and fail the run.
package flatten
