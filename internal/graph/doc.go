// SPDX-License-Identifier: MPL-2.0

// Package graph turns a reactor's module list into the working map consumed
// by the flattener: one entry per non-skipped module carrying its own
// (unprefixed) analysis properties, in input order.
package graph
