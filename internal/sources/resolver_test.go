// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/internal/testutil"
	"github.com/scanprops/scanprops/pkg/reactor"
	"github.com/scanprops/scanprops/pkg/types"
)

// newFs creates the given directories on an in-memory filesystem.
func newFs(t *testing.T, dirs ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutil.MustMkdirAll(t, fs, dirs...)
	return fs
}

func newModule(packaging types.Packaging, main, test []string) *reactor.Module {
	return &reactor.Module{
		Key:        types.NewModuleKey("com.acme", "app"),
		Packaging:  packaging,
		Basedir:    "/p",
		Descriptor: "/p/pom.xml",
		BuildDir:   "/p/target",
		MainRoots:  main,
		TestRoots:  test,
		Properties: map[string]string{},
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	tests := []struct {
		name string
		dirs []string
		main []string
		want []string
	}{
		{
			name: "nested path removed",
			dirs: []string{"/p/src", "/p/src/gen"},
			main: []string{"src", "src/gen"},
			want: []string{"/p/src", "/p/pom.xml"},
		},
		{
			name: "nested path removed regardless of order",
			dirs: []string{"/p/src", "/p/src/gen"},
			main: []string{"/p/src/gen", "/p/src"},
			want: []string{"/p/src", "/p/pom.xml"},
		},
		{
			name: "shared string prefix kept",
			dirs: []string{"/p/src", "/p/src-gen"},
			main: []string{"src", "src-gen"},
			want: []string{"/p/src", "/p/src-gen", "/p/pom.xml"},
		},
		{
			name: "missing path dropped",
			dirs: []string{"/p/src/main/java"},
			main: []string{"src/main/java", "src/main/kotlin"},
			want: []string{"/p/src/main/java", "/p/pom.xml"},
		},
		{
			name: "build directory dropped",
			dirs: []string{"/p/src/main/java", "/p/target/generated-sources/annotations"},
			main: []string{"src/main/java", "target/generated-sources/annotations"},
			want: []string{"/p/src/main/java", "/p/pom.xml"},
		},
		{
			name: "duplicates collapsed",
			dirs: []string{"/p/src"},
			main: []string{"src", "./src", "/p/src/"},
			want: []string{"/p/src", "/p/pom.xml"},
		},
		{
			name: "nothing declared",
			want: []string{"/p/pom.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(props.Layers{}, WithFs(newFs(t, tt.dirs...)))
			got, err := r.Resolve(newModule(types.PackagingJar, tt.main, nil), KindMain)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_TestKind(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := newFs(t, "/p/src/test/java")
	r := NewResolver(props.Layers{}, WithFs(fs))

	got, err := r.Resolve(newModule(types.PackagingJar, nil, []string{"src/test/java", "src/test/resources"}), KindTest)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/p/src/test/java"}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	got, err = r.Resolve(newModule(types.PackagingJar, nil, []string{"src/test/missing"}), KindTest)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Resolve() = %v, want empty", got)
	}
}

func TestResolve_MissingOverride(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := newFs(t, "/p/src/main/java")
	r := NewResolver(props.Layers{User: map[string]string{SourcesProperty: "nonexistent-folder"}}, WithFs(fs))

	m := newModule(types.PackagingJar, []string{"src/main/java"}, nil)
	_, err := r.Resolve(m, KindMain)
	if !errors.Is(err, ErrMissingOverridePath) {
		t.Fatalf("Resolve() error = %v, want ErrMissingOverridePath", err)
	}
	var missing *MissingOverridePathError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve() error type = %T, want *MissingOverridePathError", err)
	}
	want := &MissingOverridePathError{ModuleID: m.Key, Path: "/p/nonexistent-folder", Property: SourcesProperty}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}

	agg := newModule(types.PackagingPom, nil, nil)
	got, err := r.Resolve(agg, KindMain)
	if err != nil {
		t.Fatalf("Resolve() on aggregator error = %v", err)
	}
	if diff := cmp.Diff([]string{"/p/pom.xml"}, got); diff != "" {
		t.Errorf("Resolve() on aggregator mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_OverrideTiers(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := newFs(t, "/p/user", "/p/env", "/p/local", "/p/src/main/java", "/p/a,b")

	tests := []struct {
		name   string
		layers props.Layers
		local  map[string]string
		want   []string
	}{
		{
			name: "user beats environment and local",
			layers: props.Layers{
				User:        map[string]string{SourcesProperty: "user"},
				Environment: map[string]string{SourcesProperty: "env"},
			},
			local: map[string]string{SourcesProperty: "local"},
			want:  []string{"/p/user", "/p/pom.xml"},
		},
		{
			name:   "environment beats local",
			layers: props.Layers{Environment: map[string]string{SourcesProperty: "env"}},
			local:  map[string]string{SourcesProperty: "local"},
			want:   []string{"/p/env", "/p/pom.xml"},
		},
		{
			name:  "local replaces defaults",
			local: map[string]string{SourcesProperty: "local"},
			want:  []string{"/p/local", "/p/pom.xml"},
		},
		{
			name: "tiers are not merged",
			layers: props.Layers{
				User:        map[string]string{SourcesProperty: "user"},
				Environment: map[string]string{SourcesProperty: "env,local"},
			},
			want: []string{"/p/user", "/p/pom.xml"},
		},
		{
			name:  "quoted comma kept in one path",
			local: map[string]string{SourcesProperty: `"a,b", env`},
			want:  []string{"/p/a,b", "/p/env", "/p/pom.xml"},
		},
		{
			name:  "override keeps nested paths",
			local: map[string]string{SourcesProperty: "src/main/java,src"},
			want:  []string{"/p/src/main/java", "/p/src", "/p/pom.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(tt.layers, WithFs(fs))
			m := newModule(types.PackagingJar, []string{"src/main/java"}, nil)
			m.Properties = tt.local
			got, err := r.Resolve(m, KindMain)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_AggregatorOverrideFiltered(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := newFs(t, "/p/shared", "/p/shared/nested", "/p/target/generated")
	r := NewResolver(props.Layers{}, WithFs(fs))

	m := newModule(types.PackagingPom, nil, nil)
	m.Properties = map[string]string{SourcesProperty: "shared,shared/nested,gone,target/generated"}
	got, err := r.Resolve(m, KindMain)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/p/shared", "/p/pom.xml"}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Webapp(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	tests := []struct {
		name   string
		dirs   []string
		layers props.Layers
		config reactor.Query
		want   []string
	}{
		{
			name: "default root",
			dirs: []string{"/p/src/main/java", "/p/src/main/webapp"},
			want: []string{"/p/src/main/java", "/p/src/main/webapp", "/p/pom.xml"},
		},
		{
			name: "missing default root dropped",
			dirs: []string{"/p/src/main/java"},
			want: []string{"/p/src/main/java", "/p/pom.xml"},
		},
		{
			name:   "war plugin setting",
			dirs:   []string{"/p/src/main/java", "/p/web"},
			config: reactor.MapQuery{WarSourceDirSetting: "web"},
			want:   []string{"/p/src/main/java", "/p/web", "/p/pom.xml"},
		},
		{
			name:   "property beats plugin setting",
			dirs:   []string{"/p/src/main/java", "/p/web", "/p/site"},
			layers: props.Layers{Environment: map[string]string{WebappProperty: "site"}},
			config: reactor.MapQuery{WarSourceDirSetting: "web"},
			want:   []string{"/p/src/main/java", "/p/site", "/p/pom.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(tt.layers, WithFs(newFs(t, tt.dirs...)))
			m := newModule(types.PackagingWar, []string{"src/main/java"}, nil)
			m.Config = tt.config
			got, err := r.Resolve(m, KindMain)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := newFs(t, "/p/src/main/java", "/p/src/gen", "/p/src-gen")
	r := NewResolver(props.Layers{}, WithFs(fs))
	m := newModule(types.PackagingJar, []string{"src-gen", "src/main/java", "src/gen"}, nil)

	first, err := r.Resolve(m, KindMain)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for range 3 {
		again, err := r.Resolve(m, KindMain)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Resolve() not idempotent (-first +again):\n%s", diff)
		}
	}
}

func TestRemoveNested(t *testing.T) {
	t.Parallel()

	src := filepath.FromSlash("/p/src")
	gen := filepath.FromSlash("/p/src/gen")
	srcGen := filepath.FromSlash("/p/src-gen")

	if diff := cmp.Diff([]string{src}, RemoveNested([]string{src, gen})); diff != "" {
		t.Errorf("RemoveNested() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{src, srcGen}, RemoveNested([]string{src, srcGen})); diff != "" {
		t.Errorf("RemoveNested() mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingOverridePathError_Message(t *testing.T) {
	t.Parallel()

	err := &MissingOverridePathError{
		ModuleID: types.NewModuleKey("g", "a"),
		Path:     "/p/missing",
		Property: TestsProperty,
	}
	want := "the directory '/p/missing' does not exist for module g:a; please check the property sonar.tests"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
