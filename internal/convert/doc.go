// SPDX-License-Identifier: MPL-2.0

// Package convert runs one conversion: it loads a reactor manifest, assembles
// the override tiers, builds the working map, flattens the hierarchy and,
// when requested, crawls the project for files no module covers.
//
// Every fatal error is returned as an *issue.ActionableError tagged with the
// issue.Id that 'scanprops explain' documents.
package convert
