// SPDX-License-Identifier: MPL-2.0

// Package sources computes the effective main and test source roots of a module.
//
// An override (user, then environment, then module-local tier) replaces the
// build tool's declared roots entirely. Override paths of leaf modules must
// exist; aggregator overrides and declared defaults are filtered instead:
// paths below the build directory and missing paths are dropped, then any
// path nested strictly inside another kept path is removed.
package sources
