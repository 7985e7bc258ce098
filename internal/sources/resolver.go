// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"slices"

	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/pkg/fspath"
	"github.com/scanprops/scanprops/pkg/reactor"
)

const (
	// KindMain selects production sources (sonar.sources).
	KindMain Kind = iota
	// KindTest selects test sources (sonar.tests).
	KindTest
)

const (
	// SourcesProperty holds main source paths.
	SourcesProperty = "sonar.sources"
	// TestsProperty holds test source paths.
	TestsProperty = "sonar.tests"
	// WebappProperty overrides the web-resource root of war modules.
	WebappProperty = "sonar.webapp"
	// WarSourceDirSetting is the war plugin setting naming the web-resource root.
	WarSourceDirSetting = "maven-war-plugin.warSourceDirectory"
	// DefaultWebappDir is the conventional web-resource root.
	DefaultWebappDir = "src/main/webapp"
)

type (
	// Kind selects main or test sources.
	Kind int

	// Resolver resolves source roots against a fixed set of override tiers.
	Resolver struct {
		fs     afero.Fs
		layers props.Layers
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// String returns "main" or "test".
func (k Kind) String() string {
	if k == KindTest {
		return "test"
	}
	return "main"
}

// Property returns the override property key for the kind.
func (k Kind) Property() string {
	if k == KindTest {
		return TestsProperty
	}
	return SourcesProperty
}

// WithFs sets the filesystem used for existence checks.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) { r.fs = fs }
}

// NewResolver creates a Resolver over the given override tiers.
func NewResolver(layers props.Layers, opts ...Option) *Resolver {
	r := &Resolver{fs: afero.NewOsFs(), layers: layers}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the absolute source roots of m for kind, in a deterministic
// order without duplicates. Main sources always end with the module descriptor.
func (r *Resolver) Resolve(m *reactor.Module, kind Kind) ([]string, error) {
	var roots []string

	value, _, overridden := r.layers.Lookup(kind.Property(), m.Properties)
	switch {
	case overridden && !m.Packaging.IsAggregator():
		paths := absolute(props.SplitList(value), m.Basedir)
		for _, p := range paths {
			if !r.exists(p) {
				return nil, &MissingOverridePathError{ModuleID: m.Key, Path: p, Property: kind.Property()}
			}
		}
		roots = paths
		if kind == KindMain {
			if webapp, ok := r.webappRoot(m); ok && r.exists(webapp) {
				roots = append(roots, webapp)
			}
		}
	default:
		candidates := m.MainRoots
		if kind == KindTest {
			candidates = m.TestRoots
		}
		if overridden {
			candidates = props.SplitList(value)
		}
		candidates = absolute(candidates, m.Basedir)
		if kind == KindMain {
			if webapp, ok := r.webappRoot(m); ok {
				candidates = append(candidates, webapp)
			}
		}
		roots = RemoveNested(r.existingOutsideBuild(candidates, m.BuildDir))
	}

	if kind == KindMain && m.Descriptor != "" {
		roots = append(roots, m.Descriptor)
	}
	return dedupe(roots), nil
}

// webappRoot returns the web-resource root of war modules.
func (r *Resolver) webappRoot(m *reactor.Module) (string, bool) {
	if !m.Packaging.IsWebArtifact() {
		return "", false
	}
	dir, _, ok := r.layers.Lookup(WebappProperty, m.Properties)
	if !ok {
		dir, ok = m.PluginSetting(WarSourceDirSetting)
	}
	if !ok || dir == "" {
		dir = DefaultWebappDir
	}
	return fspath.ResolveAbsolute(dir, m.Basedir), true
}

func (r *Resolver) existingOutsideBuild(paths []string, buildDir string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if buildDir != "" && fspath.IsWithin(p, buildDir) {
			continue
		}
		if !r.exists(p) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (r *Resolver) exists(p string) bool {
	ok, err := afero.Exists(r.fs, p)
	return err == nil && ok
}

// RemoveNested drops every path that lies strictly inside another path of
// the set. Containment is per path component, so "src" and "src-gen" are
// unrelated. Input order is preserved.
func RemoveNested(paths []string) []string {
	out := make([]string, 0, len(paths))
	for i, p := range paths {
		nested := slices.ContainsFunc(paths, func(q string) bool {
			return fspath.IsStrictChild(p, q)
		})
		if nested || slices.Contains(paths[:i], p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func absolute(paths []string, base string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, fspath.ResolveAbsolute(p, base))
	}
	return out
}

func dedupe(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
