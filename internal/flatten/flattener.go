// SPDX-License-Identifier: MPL-2.0

package flatten

import (
	"errors"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/scanprops/scanprops/internal/graph"
	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/internal/sources"
	"github.com/scanprops/scanprops/pkg/fspath"
	"github.com/scanprops/scanprops/pkg/reactor"
	"github.com/scanprops/scanprops/pkg/types"
)

type (
	// SourceResolver computes a module's source roots.
	SourceResolver interface {
		Resolve(m *reactor.Module, kind sources.Kind) ([]string, error)
	}

	// Flattener writes a module hierarchy into a props.Bag.
	Flattener struct {
		sources        SourceResolver
		logger         *slog.Logger
		descriptorName string
	}

	// Option configures a Flattener.
	Option func(*Flattener)

	// walk is the state of one Flatten call.
	walk struct {
		bag     *props.Bag
		wm      *graph.WorkingMap
		basedir string
	}
)

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(f *Flattener) { f.logger = l }
}

// WithDescriptorName sets the descriptor file looked up under a sub-module
// directory (reactor.DefaultDescriptorName by default).
func WithDescriptorName(name string) Option {
	return func(f *Flattener) {
		if name != "" {
			f.descriptorName = name
		}
	}
}

// New creates a Flattener resolving sources through r.
func New(r SourceResolver, opts ...Option) *Flattener {
	f := &Flattener{
		sources:        r,
		logger:         slog.Default(),
		descriptorName: reactor.DefaultDescriptorName,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten places root and every module reachable from it, removing each from
// wm. It returns the bag and the common base directory of all placed modules,
// which is also written as the root's sonar.projectBaseDir.
//
// On success wm is empty; a module left behind fails the run as an orphan.
func (f *Flattener) Flatten(root *reactor.Module, wm *graph.WorkingMap) (*props.Bag, string, error) {
	if root == nil || !wm.Contains(root) {
		var keys []types.ModuleKey
		if root != nil {
			keys = append(keys, root.Key)
		}
		return nil, "", &StructuralInconsistencyError{Reason: ReasonRootMissing, Modules: keys}
	}

	w := &walk{bag: props.NewBag(), wm: wm, basedir: filepath.Clean(root.Basedir)}
	if err := f.place(w, root, ""); err != nil {
		return nil, "", err
	}

	if wm.Len() > 0 {
		var orphans []types.ModuleKey
		for _, m := range wm.Remaining() {
			orphans = append(orphans, m.Key)
		}
		return nil, "", &StructuralInconsistencyError{Reason: ReasonOrphan, Modules: orphans}
	}

	if err := put(w.bag, root, graph.ProjectBaseDir, w.basedir); err != nil {
		return nil, "", err
	}
	return w.bag, w.basedir, nil
}

// place writes m under prefix, then recurses into its declared sub-modules.
func (f *Flattener) place(w *walk, m *reactor.Module, prefix string) error {
	entry, _ := w.wm.Remove(m)

	for _, k := range slices.Sorted(maps.Keys(entry.Properties)) {
		if prefix == "" && k == graph.ProjectBaseDir {
			// root basedir is written once the common ancestor is known
			continue
		}
		if err := put(w.bag, m, prefix+k, entry.Properties[k]); err != nil {
			return err
		}
	}
	if err := f.putSources(w, m, prefix); err != nil {
		return err
	}

	var children []string
	for _, ref := range m.SubModules {
		path := fspath.ResolveAbsolute(ref, m.Basedir)
		child, ok := f.match(w.wm, path)
		if !ok {
			f.logger.Debug("sub-module reference not resolved", "module", m.Key.String(), "path", path)
			continue
		}

		childKey := child.Key.String()
		if err := f.place(w, child, prefix+childKey+"."); err != nil {
			return err
		}
		merged, err := fspath.CommonAncestor(w.basedir, child.Basedir)
		if err != nil {
			return err
		}
		w.basedir = merged
		children = append(children, childKey)
	}

	if len(children) > 0 {
		return put(w.bag, m, prefix+graph.ModulesProperty, props.JoinList(children))
	}
	return nil
}

func (f *Flattener) putSources(w *walk, m *reactor.Module, prefix string) error {
	main, err := f.sources.Resolve(m, sources.KindMain)
	if err != nil {
		return err
	}
	if err := put(w.bag, m, prefix+sources.SourcesProperty, props.JoinList(main)); err != nil {
		return err
	}

	tests, err := f.sources.Resolve(m, sources.KindTest)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return nil
	}
	return put(w.bag, m, prefix+sources.TestsProperty, props.JoinList(tests))
}

// match finds the unplaced module a sub-module reference points at. Candidates
// are tried in working map order, by decreasing specificity: the reference is
// the descriptor itself, the reference directory holds the default
// descriptor, the reference equals the module directory.
func (f *Flattener) match(wm *graph.WorkingMap, path string) (*reactor.Module, bool) {
	remaining := wm.Remaining()
	rules := []func(m *reactor.Module) bool{
		func(m *reactor.Module) bool { return samePath(m.Descriptor, path) },
		func(m *reactor.Module) bool { return samePath(m.Descriptor, filepath.Join(path, f.descriptorName)) },
		func(m *reactor.Module) bool { return samePath(m.Basedir, path) },
	}
	for _, rule := range rules {
		if i := slices.IndexFunc(remaining, rule); i >= 0 {
			return remaining[i], true
		}
	}
	return nil, false
}

func samePath(a, b string) bool {
	return a != "" && filepath.Clean(a) == filepath.Clean(b)
}

func put(bag *props.Bag, m *reactor.Module, key, value string) error {
	if err := bag.Put(key, value); err != nil {
		if errors.Is(err, props.ErrDuplicateKey) {
			return &StructuralInconsistencyError{
				Reason:  ReasonDuplicateKey,
				Modules: []types.ModuleKey{m.Key},
				Key:     key,
				Cause:   err,
			}
		}
		return err
	}
	return nil
}
