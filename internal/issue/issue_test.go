// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	slugs := make(map[string]bool)
	for _, i := range Values() {
		if seen[i.Id()] {
			t.Errorf("duplicate ID: %d", i.Id())
		}
		seen[i.Id()] = true
		if i.Slug() == "" || slugs[i.Slug()] {
			t.Errorf("issue %d has empty or duplicate slug %q", i.Id(), i.Slug())
		}
		slugs[i.Slug()] = true
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %s has no message", i.Slug())
		}
	}

	if ManifestNotFoundId != 1 {
		t.Errorf("ManifestNotFoundId = %d, want 1", ManifestNotFoundId)
	}
	if len(seen) != int(OutputWriteFailedId) {
		t.Errorf("catalog has %d issues, want %d", len(seen), OutputWriteFailedId)
	}
}

func TestValues_Ordered(t *testing.T) {
	values := Values()
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Fatalf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestParseId(t *testing.T) {
	tests := []struct {
		in     string
		want   Id
		wantOK bool
	}{
		{"orphan-module", OrphanModuleId, true},
		{" Missing-Override-Path ", MissingOverridePathId, true},
		{"7", MissingOverridePathId, true},
		{"999", 999, false},
		{"nope", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseId(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseId(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestId_String(t *testing.T) {
	if got := AmbiguousCommonRootId.String(); got != "ambiguous-common-root" {
		t.Errorf("String() = %q", got)
	}
	if got := Id(0).String(); got != "" {
		t.Errorf("Id(0).String() = %q, want empty", got)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	msg := Get(MissingOverridePathId).MarkdownMsg()
	if !strings.Contains(string(msg), "sonar.sources") {
		t.Error("MarkdownMsg() should mention sonar.sources")
	}
}

func TestIssue_Render(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var gotInput, gotStyle string
	render = func(in, style string) (string, error) {
		gotInput, gotStyle = in, style
		return "rendered", nil
	}

	i := &Issue{id: 99, slug: "test", mdMsg: "# Title", extLinks: []HttpLink{"https://example.com/doc"}}
	out, err := i.Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" || gotStyle != "dark" {
		t.Errorf("Render() = %q with style %q", out, gotStyle)
	}
	if !strings.HasPrefix(gotInput, "# Title") || !strings.Contains(gotInput, "- <https://example.com/doc>") {
		t.Errorf("render input = %q", gotInput)
	}
}

func TestIssue_RenderGlamour(t *testing.T) {
	out, err := Get(OrphanModuleId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Unable to determine the structure of the project") {
		t.Errorf("Render() output missing heading:\n%s", out)
	}
}
