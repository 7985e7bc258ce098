// SPDX-License-Identifier: MPL-2.0

// Package discovery crawls a project tree for files that no module's source
// roots cover. The crawl is best-effort: I/O failures and bad exclusion
// patterns become Diagnostics and never abort the conversion.
package discovery
