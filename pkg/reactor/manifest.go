// SPDX-License-Identifier: MPL-2.0

package reactor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/pkg/cueutil"
	"github.com/scanprops/scanprops/pkg/types"
)

// ManifestName is the default reactor manifest file name.
const ManifestName = "reactor.cue"

var (
	// ErrDuplicateModule is returned when two modules share a key.
	ErrDuplicateModule = errors.New("duplicate module key")
	// ErrRootNotDeclared is returned when the root key names no module.
	ErrRootNotDeclared = errors.New("root module not declared")
)

type (
	// Reactor is a loaded module list with its designated root.
	Reactor struct {
		// Path is the absolute manifest path ("" when parsed from memory).
		Path string
		// SchemaVersion is the declared schema_version ("1.0" when omitted).
		SchemaVersion string
		// Root is the designated root module.
		Root *Module
		// Modules lists every declared module, root included, in declaration order.
		Modules []*Module
	}

	loadOptions struct {
		fs afero.Fs
	}

	// LoadOption configures Load.
	LoadOption func(*loadOptions)
)

// WithFs reads the manifest from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) LoadOption {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// Load reads and decodes the manifest at path. A directory path is
// expanded to <dir>/reactor.cue.
func Load(path string, opts ...LoadOption) (*Reactor, error) {
	o := loadOptions{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}
	if isDir, _ := afero.IsDir(o.fs, absPath); isDir {
		absPath = filepath.Join(absPath, ManifestName)
	}

	data, err := afero.ReadFile(o.fs, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read reactor manifest: %w", err)
	}

	r, err := Parse(data, filepath.Dir(absPath), absPath)
	if err != nil {
		return nil, err
	}
	r.Path = absPath
	return r, nil
}

// Parse decodes manifest bytes. Relative basedirs resolve against dir;
// filename only appears in error messages.
func Parse(data []byte, dir, filename string) (*Reactor, error) {
	version, ok, err := cueutil.PeekString(data, "schema_version", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	if !ok {
		version = "1.0"
	}

	adapter, err := AdapterFor(version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	rootKey, modules, err := adapter.Decode(data, dir, filename)
	if err != nil {
		return nil, err
	}

	r := &Reactor{SchemaVersion: version, Modules: modules}
	seen := make(map[types.ModuleKey]bool, len(modules))
	for _, m := range modules {
		if err := m.Key.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if seen[m.Key] {
			return nil, fmt.Errorf("%s: %w: %s", filename, ErrDuplicateModule, m.Key)
		}
		seen[m.Key] = true
	}
	root, ok := r.Lookup(rootKey)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", filename, ErrRootNotDeclared, rootKey)
	}
	r.Root = root
	return r, nil
}

// Lookup returns the module with key k.
func (r *Reactor) Lookup(k types.ModuleKey) (*Module, bool) {
	for _, m := range r.Modules {
		if m.Key == k {
			return m, true
		}
	}
	return nil, false
}
