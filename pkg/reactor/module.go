// SPDX-License-Identifier: MPL-2.0

package reactor

import (
	"strings"

	"github.com/scanprops/scanprops/pkg/types"
)

const (
	// DefaultDescriptorName is the descriptor file looked up when a declared
	// sub-module path names a directory.
	DefaultDescriptorName = "pom.xml"

	// SkipProperty marks a module as excluded from the analysis when "true".
	SkipProperty = "sonar.skip"
)

type (
	// Module is one node of the build tool's module tree.
	Module struct {
		// Key is "<group>:<artifact>", unique within one reactor.
		Key types.ModuleKey
		// Version is the declared module version.
		Version string
		// Name is the human readable name; empty when not declared.
		Name string
		// Description is the declared description; empty when not declared.
		Description string
		// Packaging drives aggregator and web-artifact handling.
		Packaging types.Packaging
		// Basedir is the absolute module directory.
		Basedir string
		// Descriptor is the absolute path of the module's build descriptor.
		// It need not be named DefaultDescriptorName nor live directly in Basedir.
		Descriptor string
		// SubModules are the declared child references, relative to Basedir.
		// Each names either a directory or a descriptor file.
		SubModules []string
		// Properties are the module-local declared properties.
		Properties map[string]string
		// MainRoots and TestRoots are the build tool's default source roots.
		MainRoots []string
		TestRoots []string
		// BuildDir is the absolute build/output directory (e.g. target).
		BuildDir string
		// OutputDir and TestOutputDir hold compiled main/test binaries.
		OutputDir     string
		TestOutputDir string
		// MainClasspath and TestClasspath list resolved library entries.
		MainClasspath []string
		TestClasspath []string
		// Links are the declared project links.
		Links Links
		// Config answers plugin configuration lookups for this module only.
		Config Query
	}

	// Links holds the project URLs a module may declare.
	Links struct {
		Homepage string
		CI       string
		Issues   string
		SCM      string
	}
)

// Property returns a module-local declared property.
func (m *Module) Property(key string) (string, bool) {
	v, ok := m.Properties[key]
	return v, ok
}

// Skipped reports whether the module's local properties exclude it.
func (m *Module) Skipped() bool {
	v, ok := m.Property(SkipProperty)
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// String returns the module key.
func (m *Module) String() string { return m.Key.String() }

// DisplayName returns Name, falling back to the artifact id.
func (m *Module) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Key.Artifact()
}

// query returns Config, or an empty query when none was set.
func (m *Module) query() Query {
	if m.Config == nil {
		return MapQuery(nil)
	}
	return m.Config
}

// PluginSetting looks up a plugin configuration key through the module's Query.
func (m *Module) PluginSetting(key string) (string, bool) {
	return m.query().Get(key)
}
