// SPDX-License-Identifier: MPL-2.0

package reactor

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"golang.org/x/mod/semver"

	"github.com/scanprops/scanprops/pkg/cueutil"
	"github.com/scanprops/scanprops/pkg/fspath"
	"github.com/scanprops/scanprops/pkg/types"
)

//go:embed reactor_schema.cue
var reactorSchema []byte

// ErrUnsupportedSchema is returned when no Adapter handles a schema_version.
var ErrUnsupportedSchema = errors.New("unsupported reactor schema version")

type (
	// Adapter decodes one major version of the reactor manifest format.
	Adapter interface {
		// Major returns the semver major handled, e.g. "v2".
		Major() string
		// Decode parses data, resolving relative basedirs against dir. It
		// returns the declared root key and the modules in declaration order.
		Decode(data []byte, dir, filename string) (types.ModuleKey, []*Module, error)
	}

	v1Adapter struct{}
	v2Adapter struct{}

	manifestV1 struct {
		Root    string     `json:"root"`
		Modules []moduleV1 `json:"modules"`
	}

	moduleV1 struct {
		ID           string            `json:"id"`
		Version      string            `json:"version"`
		Name         string            `json:"name"`
		Description  string            `json:"description"`
		Packaging    string            `json:"packaging"`
		Basedir      string            `json:"basedir"`
		Pom          string            `json:"pom"`
		Modules      []string          `json:"modules"`
		Properties   map[string]string `json:"properties"`
		Sources      []string          `json:"sources"`
		TestSources  []string          `json:"test_sources"`
		Target       string            `json:"target"`
		Libraries    []string          `json:"libraries"`
		URL          string            `json:"url"`
		PluginConfig map[string]string `json:"plugin_config"`
	}

	manifestV2 struct {
		Root    string     `json:"root"`
		Modules []moduleV2 `json:"modules"`
	}

	moduleV2 struct {
		Group       string            `json:"group"`
		Artifact    string            `json:"artifact"`
		Version     string            `json:"version"`
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Packaging   string            `json:"packaging"`
		Basedir     string            `json:"basedir"`
		Descriptor  string            `json:"descriptor"`
		Modules     []string          `json:"modules"`
		Properties  map[string]string `json:"properties"`
		Roots       struct {
			Main []string `json:"main"`
			Test []string `json:"test"`
		} `json:"roots"`
		Build struct {
			Directory  string `json:"directory"`
			Output     string `json:"output"`
			TestOutput string `json:"test_output"`
		} `json:"build"`
		Classpath struct {
			Main []string `json:"main"`
			Test []string `json:"test"`
		} `json:"classpath"`
		Links struct {
			Homepage string `json:"homepage"`
			CI       string `json:"ci"`
			Issues   string `json:"issues"`
			SCM      string `json:"scm"`
		} `json:"links"`
	}
)

var adapters = map[string]Adapter{
	"v1": v1Adapter{},
	"v2": v2Adapter{},
}

// AdapterFor selects the Adapter for a schema_version such as "2.0".
func AdapterFor(schemaVersion string) (Adapter, error) {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(schemaVersion), "v")
	if !semver.IsValid(v) {
		return nil, fmt.Errorf("%w: %q is not a version", ErrUnsupportedSchema, schemaVersion)
	}
	a, ok := adapters[semver.Major(v)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSchema, schemaVersion)
	}
	return a, nil
}

// Major implements Adapter.
func (v1Adapter) Major() string { return "v1" }

// Decode implements Adapter.
func (v1Adapter) Decode(data []byte, dir, filename string) (types.ModuleKey, []*Module, error) {
	result, err := cueutil.ParseAndDecode[manifestV1](reactorSchema, data, "#ReactorV1", cueutil.WithFilename(filename))
	if err != nil {
		return "", nil, err
	}

	modules := make([]*Module, 0, len(result.Value.Modules))
	for _, raw := range result.Value.Modules {
		basedir := fspath.ResolveAbsolute(raw.Basedir, dir)
		buildDir := fspath.ResolveAbsolute(raw.Target, basedir)
		modules = append(modules, &Module{
			Key:           types.ModuleKey(raw.ID),
			Version:       raw.Version,
			Name:          raw.Name,
			Description:   raw.Description,
			Packaging:     types.Packaging(raw.Packaging),
			Basedir:       basedir,
			Descriptor:    fspath.ResolveAbsolute(raw.Pom, basedir),
			SubModules:    raw.Modules,
			Properties:    raw.Properties,
			MainRoots:     resolveAll(raw.Sources, basedir),
			TestRoots:     resolveAll(raw.TestSources, basedir),
			BuildDir:      buildDir,
			OutputDir:     fspath.ResolveAbsolute("classes", buildDir),
			TestOutputDir: fspath.ResolveAbsolute("test-classes", buildDir),
			MainClasspath: resolveAll(raw.Libraries, basedir),
			Links:         Links{Homepage: raw.URL},
			Config:        MapQuery(raw.PluginConfig),
		})
	}
	return types.ModuleKey(result.Value.Root), modules, nil
}

// Major implements Adapter.
func (v2Adapter) Major() string { return "v2" }

// Decode implements Adapter.
func (v2Adapter) Decode(data []byte, dir, filename string) (types.ModuleKey, []*Module, error) {
	result, err := cueutil.ParseAndDecode[manifestV2](reactorSchema, data, "#ReactorV2", cueutil.WithFilename(filename))
	if err != nil {
		return "", nil, err
	}

	modules := make([]*Module, 0, len(result.Value.Modules))
	for i, raw := range result.Value.Modules {
		basedir := fspath.ResolveAbsolute(raw.Basedir, dir)
		plugins := result.Unified.LookupPath(cue.MakePath(cue.Str("modules"), cue.Index(i), cue.Str("plugins")))
		modules = append(modules, &Module{
			Key:           types.NewModuleKey(raw.Group, raw.Artifact),
			Version:       raw.Version,
			Name:          raw.Name,
			Description:   raw.Description,
			Packaging:     types.Packaging(raw.Packaging),
			Basedir:       basedir,
			Descriptor:    fspath.ResolveAbsolute(raw.Descriptor, basedir),
			SubModules:    raw.Modules,
			Properties:    raw.Properties,
			MainRoots:     resolveAll(raw.Roots.Main, basedir),
			TestRoots:     resolveAll(raw.Roots.Test, basedir),
			BuildDir:      fspath.ResolveAbsolute(raw.Build.Directory, basedir),
			OutputDir:     fspath.ResolveAbsolute(raw.Build.Output, basedir),
			TestOutputDir: fspath.ResolveAbsolute(raw.Build.TestOutput, basedir),
			MainClasspath: resolveAll(raw.Classpath.Main, basedir),
			TestClasspath: resolveAll(raw.Classpath.Test, basedir),
			Links: Links{
				Homepage: raw.Links.Homepage,
				CI:       raw.Links.CI,
				Issues:   raw.Links.Issues,
				SCM:      raw.Links.SCM,
			},
			Config: NewCUEQuery(plugins),
		})
	}
	return types.ModuleKey(result.Value.Root), modules, nil
}

func resolveAll(paths []string, base string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = fspath.ResolveAbsolute(p, base)
	}
	return out
}
