// SPDX-License-Identifier: MPL-2.0

package types

const (
	// PackagingJar is the default leaf packaging.
	PackagingJar Packaging = "jar"
	// PackagingWar is a deployable web artifact; it contributes a web-resource root.
	PackagingWar Packaging = "war"
	// PackagingPom marks an aggregator module with no own sources.
	PackagingPom Packaging = "pom"

	// KindLeaf is any module that owns sources.
	KindLeaf PackagingKind = "leaf"
	// KindAggregator is a module that only groups children.
	KindAggregator PackagingKind = "aggregator"
)

type (
	// Packaging is the build tool's packaging identifier (jar, war, pom, ...).
	// Unknown values are accepted and treated as leaves.
	Packaging string

	// PackagingKind classifies a Packaging as leaf or aggregator.
	PackagingKind string
)

// String returns the string representation of the Packaging.
func (p Packaging) String() string { return string(p) }

// Kind returns KindAggregator for pom packaging and KindLeaf otherwise.
// The empty packaging defaults to jar, as build tools do.
func (p Packaging) Kind() PackagingKind {
	if p == PackagingPom {
		return KindAggregator
	}
	return KindLeaf
}

// IsAggregator reports whether the packaging groups children without own sources.
func (p Packaging) IsAggregator() bool { return p.Kind() == KindAggregator }

// IsWebArtifact reports whether the packaging carries a web-resource root.
func (p Packaging) IsWebArtifact() bool { return p == PackagingWar }
