// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/internal/discovery"
	"github.com/scanprops/scanprops/internal/flatten"
	"github.com/scanprops/scanprops/internal/graph"
	"github.com/scanprops/scanprops/internal/issue"
	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/internal/scm"
	"github.com/scanprops/scanprops/internal/sources"
	"github.com/scanprops/scanprops/pkg/fspath"
	"github.com/scanprops/scanprops/pkg/reactor"
	"github.com/scanprops/scanprops/pkg/types"
)

// ScanAllProperty enables the uncovered-file crawl when "true" in any tier.
const ScanAllProperty = "sonar.scanner.scanAll"

type (
	// Request describes one conversion.
	Request struct {
		// ManifestPath is the reactor manifest, or a directory holding reactor.cue.
		ManifestPath string
		// Defines are "-D key=value" user overrides.
		Defines []string
		// PropertiesFile is an optional .properties file of user overrides.
		PropertiesFile string
		// ParamsVar names the JSON environment variable; empty uses
		// props.ScannerParamsEnv.
		ParamsVar string
		// EnvFiles are dotenv files merged into the environment tier.
		EnvFiles []string
		// ScanAll requests the crawl regardless of the override tiers.
		ScanAll bool
		// Exclusions are doublestar globs skipped by the crawl.
		Exclusions []string
		// SCMLinks enables sonar.links.scm inference from git.
		SCMLinks bool
		// DescriptorName is the descriptor looked up in sub-module directories.
		DescriptorName string
	}

	// Result is the outcome of a successful conversion.
	Result struct {
		// Properties is the flat analysis property map.
		Properties map[string]string
		// BaseDir is the common base directory of every placed module.
		BaseDir string
		// Reactor is the loaded manifest.
		Reactor *reactor.Reactor
		// Skipped lists modules excluded from analysis, in manifest order.
		Skipped []types.ModuleKey
		// Diagnostics are non-fatal findings.
		Diagnostics []discovery.Diagnostic
	}

	// Converter runs conversions.
	Converter struct {
		fs     afero.Fs
		logger *slog.Logger
		getenv func(string) string
		links  graph.LinkResolver
	}

	// Option configures a Converter.
	Option func(*Converter)

	// linkRecorder turns SCM inference failures into a single diagnostic.
	linkRecorder struct {
		inner graph.LinkResolver
		diags *[]discovery.Diagnostic
		seen  bool
	}
)

// WithFs sets the filesystem holding the manifest and the project tree.
func WithFs(fs afero.Fs) Option {
	return func(c *Converter) { c.fs = fs }
}

// WithLogger sets the logger passed to every stage.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithGetenv replaces os.Getenv for the environment tier.
func WithGetenv(getenv func(string) string) Option {
	return func(c *Converter) { c.getenv = getenv }
}

// WithLinkResolver replaces the git-backed SCM link resolver.
func WithLinkResolver(r graph.LinkResolver) Option {
	return func(c *Converter) { c.links = r }
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
		getenv: os.Getenv,
		links:  scm.NewLinkResolver(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run performs the conversion described by req.
func (c *Converter) Run(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conversion canceled: %w", err)
	}

	r, err := reactor.Load(req.ManifestPath, reactor.WithFs(c.fs))
	if err != nil {
		return nil, manifestError(req.ManifestPath, err)
	}

	layers, err := c.layers(req)
	if err != nil {
		return nil, err
	}

	res := &Result{Reactor: r}
	for _, m := range r.Modules {
		if m.Skipped() {
			res.Skipped = append(res.Skipped, m.Key)
		}
	}

	builderOpts := []graph.Option{
		graph.WithFs(c.fs),
		graph.WithLayers(layers),
		graph.WithLogger(c.logger),
	}
	if req.SCMLinks && c.links != nil {
		builderOpts = append(builderOpts, graph.WithLinkResolver(&linkRecorder{inner: c.links, diags: &res.Diagnostics}))
	}
	wm, err := graph.NewBuilder(builderOpts...).Build(r.Modules)
	if err != nil {
		return nil, manifestError(r.Path, err)
	}

	descriptor := req.DescriptorName
	if descriptor == "" {
		descriptor = reactor.DefaultDescriptorName
	}
	resolver := sources.NewResolver(layers, sources.WithFs(c.fs))
	flattener := flatten.New(resolver, flatten.WithLogger(c.logger), flatten.WithDescriptorName(descriptor))

	bag, basedir, err := flattener.Flatten(r.Root, wm)
	if err != nil {
		return nil, flattenError(r.Path, err)
	}

	res.Properties = bag.Map()
	res.BaseDir = basedir

	if c.scanAllRequested(req, layers, r.Root) {
		if layers.Defines(sources.SourcesProperty, r.Root.Properties) {
			res.Diagnostics = append(res.Diagnostics, discovery.NewDiagnostic(discovery.SeverityWarning,
				discovery.CodeScanAllOverridden,
				fmt.Sprintf("%s ignored: %s of the root module is overridden", ScanAllProperty, sources.SourcesProperty)))
		} else {
			c.crawl(req, r, res)
		}
	}

	c.logger.Debug("conversion finished",
		"manifest", r.Path,
		"properties", len(res.Properties),
		"skipped", len(res.Skipped),
		"diagnostics", len(res.Diagnostics))
	return res, nil
}

// layers assembles the user and environment override tiers.
func (c *Converter) layers(req Request) (props.Layers, error) {
	defines, err := props.ParseDefines(req.Defines)
	if err != nil {
		return props.Layers{}, overridesError("-D", err)
	}
	var file map[string]string
	if req.PropertiesFile != "" {
		if file, err = props.LoadPropertiesFile(req.PropertiesFile); err != nil {
			return props.Layers{}, overridesError(req.PropertiesFile, err)
		}
	}

	paramsVar := req.ParamsVar
	if paramsVar == "" {
		paramsVar = props.ScannerParamsEnv
	}
	env, err := props.LoadEnvironment(c.getenv, paramsVar, req.EnvFiles...)
	if err != nil {
		return props.Layers{}, overridesError(paramsVar, err)
	}

	return props.Layers{User: props.MergeUser(defines, file), Environment: env}, nil
}

func (c *Converter) scanAllRequested(req Request, layers props.Layers, root *reactor.Module) bool {
	if req.ScanAll {
		return true
	}
	v, _, ok := layers.Lookup(ScanAllProperty, root.Properties)
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// crawl appends files no module covers to the root sonar.sources entry.
func (c *Converter) crawl(req Request, r *reactor.Reactor, res *Result) {
	var covered []string
	for k, v := range res.Properties {
		if k == sources.SourcesProperty || k == sources.TestsProperty ||
			strings.HasSuffix(k, "."+sources.SourcesProperty) || strings.HasSuffix(k, "."+sources.TestsProperty) {
			covered = append(covered, props.SplitList(v)...)
		}
	}

	var skipDirs []string
	for _, m := range r.Modules {
		if m.BuildDir != "" {
			skipDirs = append(skipDirs, m.BuildDir)
		}
		if m.Skipped() {
			skipDirs = append(skipDirs, m.Basedir)
		}
	}

	crawler := discovery.NewCrawler(discovery.WithFs(c.fs), discovery.WithExclusions(req.Exclusions...))
	found := crawler.Crawl(discovery.Request{Basedir: res.BaseDir, Covered: covered, SkipDirs: skipDirs})
	res.Diagnostics = append(res.Diagnostics, found.Diagnostics...)
	if len(found.Files) == 0 {
		return
	}

	c.logger.Info("uncovered files added to root sources", "count", len(found.Files))
	entries := append(props.SplitList(res.Properties[sources.SourcesProperty]), found.Files...)
	res.Properties[sources.SourcesProperty] = props.JoinList(entries)
}

// SCMLink implements graph.LinkResolver.
func (l *linkRecorder) SCMLink(dir string) (string, error) {
	link, err := l.inner.SCMLink(dir)
	if err != nil && !l.seen && !scm.IsNotRepository(err) {
		l.seen = true
		*l.diags = append(*l.diags, discovery.NewDiagnosticWithCause(discovery.SeverityWarning,
			discovery.CodeSCMLinkUnavailable, "scm link could not be inferred", dir, err))
	}
	return link, err
}

func manifestError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load reactor manifest").
		WithResource(path).
		Wrap(err)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.ManifestNotFoundId).
			WithSuggestion("Pass the manifest path or a directory containing " + reactor.ManifestName)
	case errors.Is(err, reactor.ErrUnsupportedSchema):
		ctx.WithIssue(issue.UnsupportedSchemaId).
			WithSuggestion("Set schema_version to \"1.x\" or \"2.x\"")
	case errors.Is(err, reactor.ErrRootNotDeclared):
		ctx.WithIssue(issue.RootModuleMissingId).
			WithSuggestion("Make 'root' name one of the declared modules")
	default:
		ctx.WithIssue(issue.ManifestInvalidId).
			WithSuggestion("Check the manifest against the reactor schema")
	}
	return ctx.BuildError()
}

func flattenError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("flatten module hierarchy").
		WithResource(path).
		Wrap(err)

	var structural *flatten.StructuralInconsistencyError
	var missing *sources.MissingOverridePathError
	switch {
	case errors.As(err, &missing):
		ctx.WithIssue(issue.MissingOverridePathId).
			WithModules(missing.ModuleID).
			WithSuggestions(
				fmt.Sprintf("Create %s", missing.Path),
				fmt.Sprintf("Or correct the %s override passed with -D, the scanner params or the module properties", missing.Property),
			)
	case errors.Is(err, fspath.ErrAmbiguousCommonRoot):
		ctx.WithIssue(issue.AmbiguousCommonRootId).
			WithSuggestion("Place every module below one common directory")
	case errors.As(err, &structural):
		ctx.WithModules(structural.Modules...)
		switch structural.Reason {
		case flatten.ReasonRootMissing:
			ctx.WithIssue(issue.RootModuleMissingId).
				WithSuggestion("The root module must not set sonar.skip=true")
		case flatten.ReasonOrphan:
			ctx.WithIssue(issue.OrphanModuleId).
				WithSuggestions(
					"List the module directory or descriptor in the 'modules' of its parent",
					"Or set sonar.skip=true in its properties to leave it out of the analysis",
				)
		case flatten.ReasonDuplicateKey:
			ctx.WithIssue(issue.DuplicatePropertyId).
				WithSuggestion(fmt.Sprintf("Remove the conflicting definition of %s", structural.Key))
		}
	}
	return ctx.BuildError()
}

func overridesError(resource string, err error) error {
	return issue.NewErrorContext().
		WithOperation("read property overrides").
		WithResource(resource).
		WithIssue(issue.OverridesInvalidId).
		Wrap(err).
		BuildError()
}
