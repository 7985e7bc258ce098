// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include platform gating (SkipOnWindows) and fixture trees
// written to an afero filesystem (MustWriteFiles, MustMkdirAll).
package testutil
