// SPDX-License-Identifier: MPL-2.0

// Package reactor models the module list handed over by the host build tool
// (its "reactor") and loads it from a reactor.cue manifest.
//
// A manifest declares a schema_version. The major version selects one
// Adapter, once, before decoding: v1 manifests use the flat legacy layout
// (id, sources, test_sources, target), v2 manifests the structured layout
// (group/artifact, roots, build, classpath, plugins). Both produce the same
// Module values, with every path already resolved to an absolute path.
//
// Plugin configuration is exposed through Query, a read-only lookup that
// accepts dotted and indexed keys. Each Module carries its own Query, so no
// ambient "current module" is needed when reading plugin settings.
package reactor
