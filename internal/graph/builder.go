// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/pkg/fspath"
	"github.com/scanprops/scanprops/pkg/reactor"
)

// Analysis property keys computed per module.
const (
	ProjectKey         = "sonar.projectKey"
	ProjectVersion     = "sonar.projectVersion"
	ProjectName        = "sonar.projectName"
	ProjectDescription = "sonar.projectDescription"
	ProjectBaseDir     = "sonar.projectBaseDir"
	ProjectBuildDir    = "sonar.projectBuildDir"
	SourceEncoding     = "sonar.sourceEncoding"
	JavaSource         = "sonar.java.source"
	JavaTarget         = "sonar.java.target"
	JavaRelease        = "sonar.java.release"
	JavaEnablePreview  = "sonar.java.enablePreview"
	JavaBinaries       = "sonar.java.binaries"
	JavaTestBinaries   = "sonar.java.test.binaries"
	JavaLibraries      = "sonar.java.libraries"
	JavaTestLibraries  = "sonar.java.test.libraries"
	JUnitReportPaths   = "sonar.junit.reportPaths"
	LinksHomepage      = "sonar.links.homepage"
	LinksCI            = "sonar.links.ci"
	LinksIssue         = "sonar.links.issue"
	LinksSCM           = "sonar.links.scm"
	ModulesProperty    = "sonar.modules"

	buildEncodingProperty = "project.build.sourceEncoding"
	compilerPlugin        = "maven-compiler-plugin"
	surefireReportsDir    = "maven-surefire-plugin.reportsDirectory"
	defaultReportsDir     = "surefire-reports"
)

// reserved keys are written by the flattener and never copied from local properties.
var reserved = map[string]bool{
	ProjectKey:              true,
	ModulesProperty:         true,
	"sonar.sources":         true,
	"sonar.tests":           true,
	reactor.SkipProperty:    true,
	"sonar.scanner.scanAll": true,
}

type (
	// LinkResolver infers the SCM URL of the repository enclosing dir.
	LinkResolver interface {
		SCMLink(dir string) (string, error)
	}

	// Builder computes the working map.
	Builder struct {
		fs     afero.Fs
		layers props.Layers
		links  LinkResolver
		logger *slog.Logger
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithFs sets the filesystem used for existence checks.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithLayers sets the override tiers consulted for link defaults.
func WithLayers(l props.Layers) Option {
	return func(b *Builder) { b.layers = l }
}

// WithLinkResolver enables SCM link inference for modules declaring none.
func WithLinkResolver(r LinkResolver) Option {
	return func(b *Builder) { b.links = r }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{fs: afero.NewOsFs(), logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the working map of every module not marked skipped.
// Each skipped module produces exactly one INFO record.
func (b *Builder) Build(modules []*reactor.Module) (*WorkingMap, error) {
	wm := &WorkingMap{}
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if seen[m.Key.String()] {
			return nil, fmt.Errorf("%w: %s", reactor.ErrDuplicateModule, m.Key)
		}
		seen[m.Key.String()] = true

		if m.Skipped() {
			b.logger.Info("module excluded from analysis",
				"module", m.Key.String(),
				"descriptor", m.Descriptor,
				"property", reactor.SkipProperty)
			continue
		}
		wm.entries = append(wm.entries, &Entry{Module: m, Properties: b.OwnProperties(m)})
	}
	return wm, nil
}

// OwnProperties returns the unprefixed analysis properties of m, without
// source paths. Module-local sonar.* properties replace computed values.
func (b *Builder) OwnProperties(m *reactor.Module) map[string]string {
	p := map[string]string{
		ProjectKey:     m.Key.String(),
		ProjectName:    m.DisplayName(),
		ProjectBaseDir: m.Basedir,
	}
	setIf(p, ProjectVersion, m.Version)
	setIf(p, ProjectDescription, strings.TrimSpace(m.Description))
	setIf(p, ProjectBuildDir, m.BuildDir)
	if enc, ok := m.Property(buildEncodingProperty); ok {
		setIf(p, SourceEncoding, enc)
	}

	b.javaHints(p, m)
	b.linkProperties(p, m)

	if b.isDir(m.OutputDir) {
		p[JavaBinaries] = m.OutputDir
	}
	if b.isDir(m.TestOutputDir) {
		p[JavaTestBinaries] = m.TestOutputDir
	}
	setIf(p, JavaLibraries, props.JoinList(b.existing(m.MainClasspath)))
	setIf(p, JavaTestLibraries, props.JoinList(b.existing(m.TestClasspath)))
	if reports := b.reportsDir(m); b.isDir(reports) {
		p[JUnitReportPaths] = reports
	}

	for k, v := range m.Properties {
		if strings.HasPrefix(k, "sonar.") && !reserved[k] {
			p[k] = v
		}
	}
	return p
}

func (b *Builder) javaHints(p map[string]string, m *reactor.Module) {
	hints := []struct{ key, setting string }{
		{JavaSource, "source"},
		{JavaTarget, "target"},
		{JavaRelease, "release"},
		{JavaEnablePreview, "enablePreview"},
	}
	for _, h := range hints {
		v, ok := m.PluginSetting(compilerPlugin + "." + h.setting)
		if !ok {
			v, ok = m.Property("maven.compiler." + h.setting)
		}
		if ok {
			setIf(p, h.key, strings.TrimSpace(v))
		}
	}
}

// linkProperties fills project links that no tier already defines.
func (b *Builder) linkProperties(p map[string]string, m *reactor.Module) {
	scm := m.Links.SCM
	if scm == "" && b.links != nil && !b.layers.Defines(LinksSCM, m.Properties) {
		inferred, err := b.links.SCMLink(m.Basedir)
		if err != nil {
			b.logger.Debug("scm link inference failed", "module", m.Key.String(), "error", err)
		}
		scm = inferred
	}

	links := []struct{ key, value string }{
		{LinksHomepage, m.Links.Homepage},
		{LinksCI, m.Links.CI},
		{LinksIssue, m.Links.Issues},
		{LinksSCM, scm},
	}
	for _, l := range links {
		if !b.layers.Defines(l.key, m.Properties) {
			setIf(p, l.key, l.value)
		}
	}
}

func (b *Builder) reportsDir(m *reactor.Module) string {
	if dir, ok := m.PluginSetting(surefireReportsDir); ok && dir != "" {
		return fspath.ResolveAbsolute(dir, m.Basedir)
	}
	if m.BuildDir == "" {
		return ""
	}
	return fspath.ResolveAbsolute(defaultReportsDir, m.BuildDir)
}

func (b *Builder) existing(paths []string) []string {
	var out []string
	for _, path := range paths {
		if ok, err := afero.Exists(b.fs, path); err == nil && ok {
			out = append(out, path)
		}
	}
	return out
}

func (b *Builder) isDir(path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.IsDir(b.fs, path)
	return err == nil && ok
}

func setIf(p map[string]string, key, value string) {
	if value != "" {
		p[key] = value
	}
}
