// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/internal/props"
	"github.com/scanprops/scanprops/internal/testutil"
	"github.com/scanprops/scanprops/pkg/reactor"
	"github.com/scanprops/scanprops/pkg/types"
)

type stubLinks struct {
	url   string
	err   error
	calls int
}

func (s *stubLinks) SCMLink(string) (string, error) {
	s.calls++
	return s.url, s.err
}

func module(artifact string, local map[string]string) *reactor.Module {
	return &reactor.Module{
		Key:        types.NewModuleKey("com.acme", artifact),
		Version:    "1.0",
		Packaging:  types.PackagingJar,
		Basedir:    "/p/" + artifact,
		Descriptor: "/p/" + artifact + "/pom.xml",
		BuildDir:   "/p/" + artifact + "/target",
		Properties: local,
	}
}

func TestBuild_SkipsModules(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	modules := []*reactor.Module{
		module("a", nil),
		module("skipped", map[string]string{"sonar.skip": " TRUE "}),
		module("b", map[string]string{"sonar.skip": "false"}),
	}

	wm, err := NewBuilder(WithFs(afero.NewMemMapFs()), WithLogger(logger)).Build(modules)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var keys []string
	for _, m := range wm.Remaining() {
		keys = append(keys, m.Key.String())
	}
	if diff := cmp.Diff([]string{"com.acme:a", "com.acme:b"}, keys); diff != "" {
		t.Errorf("Remaining() mismatch (-want +got):\n%s", diff)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log records, want exactly 1:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log record is not JSON: %v", err)
	}
	if rec["level"] != "INFO" || rec["module"] != "com.acme:skipped" ||
		rec["descriptor"] != "/p/skipped/pom.xml" || rec["property"] != "sonar.skip" {
		t.Errorf("unexpected skip record: %v", rec)
	}
}

func TestBuild_DuplicateKey(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().Build([]*reactor.Module{module("a", nil), module("a", nil)})
	if !errors.Is(err, reactor.ErrDuplicateModule) {
		t.Errorf("Build() error = %v, want ErrDuplicateModule", err)
	}
}

func TestOwnProperties(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	fs := afero.NewMemMapFs()
	for _, d := range []string{"/p/app/target/classes", "/p/app/target/surefire-reports", "/repo/lib"} {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := afero.WriteFile(fs, "/repo/lib/a.jar", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	m := module("app", map[string]string{
		"project.build.sourceEncoding": "UTF-8",
		"maven.compiler.source":        "11",
		"sonar.exclusions":             "**/gen/**",
		"sonar.projectKey":             "ignored",
		"sonar.sources":                "ignored",
		"other.property":               "ignored",
	})
	m.Name = "The App"
	m.Description = "  desc  "
	m.OutputDir = "/p/app/target/classes"
	m.TestOutputDir = "/p/app/target/test-classes"
	m.MainClasspath = []string{"/repo/lib/a.jar", "/repo/lib/missing.jar"}
	m.Config = reactor.MapQuery{"maven-compiler-plugin.release": "17", "maven-compiler-plugin.enablePreview": "true"}
	m.Links = reactor.Links{Homepage: "https://acme.example", Issues: "https://acme.example/issues"}

	got := NewBuilder(WithFs(fs)).OwnProperties(m)
	want := map[string]string{
		ProjectKey:         "com.acme:app",
		ProjectVersion:     "1.0",
		ProjectName:        "The App",
		ProjectDescription: "desc",
		ProjectBaseDir:     "/p/app",
		ProjectBuildDir:    "/p/app/target",
		SourceEncoding:     "UTF-8",
		JavaSource:         "11",
		JavaRelease:        "17",
		JavaEnablePreview:  "true",
		JavaBinaries:       "/p/app/target/classes",
		JavaLibraries:      "/repo/lib/a.jar",
		JUnitReportPaths:   "/p/app/target/surefire-reports",
		LinksHomepage:      "https://acme.example",
		LinksIssue:         "https://acme.example/issues",
		"sonar.exclusions": "**/gen/**",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OwnProperties() mismatch (-want +got):\n%s", diff)
	}
}

func TestOwnProperties_NameFallback(t *testing.T) {
	t.Parallel()

	got := NewBuilder(WithFs(afero.NewMemMapFs())).OwnProperties(module("core", map[string]string{"sonar.projectName": "Local"}))
	if got[ProjectName] != "Local" {
		t.Errorf("local sonar.projectName = %q, want Local", got[ProjectName])
	}

	got = NewBuilder(WithFs(afero.NewMemMapFs())).OwnProperties(module("core", nil))
	if got[ProjectName] != "core" {
		t.Errorf("fallback sonar.projectName = %q, want core", got[ProjectName])
	}
}

func TestOwnProperties_Links(t *testing.T) {
	t.Parallel()

	t.Run("tier defined link is not set", func(t *testing.T) {
		t.Parallel()
		links := &stubLinks{url: "https://git.example/acme.git"}
		b := NewBuilder(
			WithFs(afero.NewMemMapFs()),
			WithLinkResolver(links),
			WithLayers(props.Layers{User: map[string]string{LinksSCM: "https://user"}}),
		)
		m := module("a", nil)
		m.Links.Homepage = "https://home"
		got := b.OwnProperties(m)
		if _, ok := got[LinksSCM]; ok {
			t.Errorf("sonar.links.scm set despite user override: %q", got[LinksSCM])
		}
		if links.calls != 0 {
			t.Errorf("link resolver called %d times, want 0", links.calls)
		}
		if got[LinksHomepage] != "https://home" {
			t.Errorf("sonar.links.homepage = %q", got[LinksHomepage])
		}
	})

	t.Run("inferred scm link", func(t *testing.T) {
		t.Parallel()
		links := &stubLinks{url: "https://git.example/acme.git"}
		b := NewBuilder(WithFs(afero.NewMemMapFs()), WithLinkResolver(links))
		got := b.OwnProperties(module("a", nil))
		if got[LinksSCM] != "https://git.example/acme.git" {
			t.Errorf("sonar.links.scm = %q", got[LinksSCM])
		}
	})

	t.Run("declared scm link wins", func(t *testing.T) {
		t.Parallel()
		links := &stubLinks{url: "https://inferred"}
		b := NewBuilder(WithFs(afero.NewMemMapFs()), WithLinkResolver(links))
		m := module("a", nil)
		m.Links.SCM = "https://declared"
		got := b.OwnProperties(m)
		if got[LinksSCM] != "https://declared" || links.calls != 0 {
			t.Errorf("sonar.links.scm = %q (calls %d)", got[LinksSCM], links.calls)
		}
	})

	t.Run("inference failure ignored", func(t *testing.T) {
		t.Parallel()
		b := NewBuilder(WithFs(afero.NewMemMapFs()), WithLinkResolver(&stubLinks{err: errors.New("no repo")}))
		got := b.OwnProperties(module("a", nil))
		if _, ok := got[LinksSCM]; ok {
			t.Errorf("sonar.links.scm = %q, want unset", got[LinksSCM])
		}
	})
}

func TestWorkingMap(t *testing.T) {
	t.Parallel()

	a, b, c := module("a", nil), module("b", nil), module("c", nil)
	wm := NewWorkingMap(&Entry{Module: a}, &Entry{Module: b}, &Entry{Module: c})

	if _, ok := wm.Remove(b); !ok {
		t.Fatal("Remove(b) = false")
	}
	if _, ok := wm.Remove(b); ok {
		t.Error("second Remove(b) = true")
	}
	if wm.Contains(b) || !wm.Contains(c) {
		t.Error("Contains() inconsistent after Remove")
	}
	if diff := cmp.Diff([]*reactor.Module{a, c}, wm.Remaining()); diff != "" {
		t.Errorf("Remaining() mismatch (-want +got):\n%s", diff)
	}
	if wm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", wm.Len())
	}
}
