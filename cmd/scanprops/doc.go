// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for scanprops.
//
// This package implements the Cobra command hierarchy: the root command,
// 'flatten' and 'modules' over a reactor manifest, configuration management
// and the 'explain' issue catalog.
package cmd
