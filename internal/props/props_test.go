// SPDX-License-Identifier: MPL-2.0

package props

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBag_AppendOnly(t *testing.T) {
	t.Parallel()

	b := NewBag()
	if err := b.Put("a.sonar.sources", "/x"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := b.Put("sonar.modules", "a"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	err := b.Put("a.sonar.sources", "/y")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Put() duplicate error = %v, want ErrDuplicateKey", err)
	}
	if v, _ := b.Get("a.sonar.sources"); v != "/x" {
		t.Errorf("Get() = %q, want unchanged /x", v)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	m := b.Map()
	if diff := cmp.Diff(map[string]string{"a.sonar.sources": "/x", "sonar.modules": "a"}, m); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	m["mutated"] = "x"
	if _, ok := b.Get("mutated"); ok {
		t.Error("Map() returned a live view")
	}
}

func TestLayers_Lookup(t *testing.T) {
	t.Parallel()

	layers := Layers{
		User:        map[string]string{"sonar.sources": "u", "blank": "  "},
		Environment: map[string]string{"sonar.sources": "e", "sonar.tests": "e", "blank": "e"},
	}
	local := map[string]string{"sonar.sources": "l", "sonar.tests": "l", "sonar.java.binaries": "l"}

	tests := []struct {
		key       string
		wantValue string
		wantTier  Tier
		wantOK    bool
	}{
		{"sonar.sources", "u", TierUser, true},
		{"sonar.tests", "e", TierEnvironment, true},
		{"sonar.java.binaries", "l", TierModule, true},
		{"blank", "e", TierEnvironment, true},
		{"unknown", "", TierNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			v, tier, ok := layers.Lookup(tt.key, local)
			if v != tt.wantValue || tier != tt.wantTier || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tt.key, v, tier, ok, tt.wantValue, tt.wantTier, tt.wantOK)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "src/main/java", []string{"src/main/java"}},
		{"trimmed", " a , b ,c ", []string{"a", "b", "c"}},
		{"empty entries", "a,,b,", []string{"a", "b"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"quoted after space", `a, "b,c"`, []string{"a", "b,c"}},
		{"newline separated", "a,\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, SplitList(tt.input)); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	got := JoinList([]string{"/a", "/b,c", "/d"})
	if want := `/a,"/b,c",/d`; got != want {
		t.Errorf("JoinList() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"/a", "/b,c", "/d"}, SplitList(got)); diff != "" {
		t.Errorf("SplitList(JoinList()) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	envFile := filepath.Join(dir, "scan.env")
	content := "sonar.sources=from-dotenv\nsonar.tests=from-dotenv\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	getenv := func(name string) string {
		if name == ScannerParamsEnv {
			return `{"sonar.sources":"from-json"}`
		}
		return ""
	}

	env, err := LoadEnvironment(getenv, "", envFile)
	if err != nil {
		t.Fatalf("LoadEnvironment() error = %v", err)
	}
	want := map[string]string{"sonar.sources": "from-json", "sonar.tests": "from-dotenv"}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("LoadEnvironment() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment_InvalidJSON(t *testing.T) {
	t.Parallel()

	getenv := func(string) string { return "{not json" }
	if _, err := LoadEnvironment(getenv, "CUSTOM_PARAMS"); err == nil {
		t.Fatal("LoadEnvironment() expected error for malformed JSON")
	}
}

func TestParseDefines(t *testing.T) {
	t.Parallel()

	got, err := ParseDefines([]string{"sonar.sources=a,b", "empty=", "eq=x=y"})
	if err != nil {
		t.Fatalf("ParseDefines() error = %v", err)
	}
	want := map[string]string{"sonar.sources": "a,b", "empty": "", "eq": "x=y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDefines() mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := ParseDefines([]string{bad}); !errors.Is(err, ErrInvalidDefine) {
			t.Errorf("ParseDefines(%q) error = %v, want ErrInvalidDefine", bad, err)
		}
	}
}

func TestPropertiesFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.properties")
	in := map[string]string{
		"sonar.modules":     "a,b",
		"a.sonar.sources":   "/root/a/src",
		"sonar.projectName": "${unexpanded}",
	}

	var sb strings.Builder
	if err := WriteProperties(&sb, in); err != nil {
		t.Fatalf("WriteProperties() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPropertiesFile(path)
	if err != nil {
		t.Fatalf("LoadPropertiesFile() error = %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUser(t *testing.T) {
	t.Parallel()

	got := MergeUser(map[string]string{"k": "flag"}, map[string]string{"k": "file", "other": "file"})
	want := map[string]string{"k": "flag", "other": "file"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeUser() mismatch (-want +got):\n%s", diff)
	}
}
