// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes GOOS names used for platform-specific
// configuration lookups and test skips.
package platform
