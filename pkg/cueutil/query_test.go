// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"

	"github.com/scanprops/scanprops/pkg/cueutil"
)

const pluginConfig = `
"maven-compiler-plugin": {
	release: "17"
	enablePreview: true
	fork: 2
}
"org.codehaus.mojo:build-helper": {
	sources: ["gen/a", "gen/b"]
}
executions: [{goal: "compile"}, {goal: "test-compile", phase: "test"}]
`

func TestLookupString(t *testing.T) {
	t.Parallel()

	v := cuecontext.New().CompileString(pluginConfig)
	if v.Err() != nil {
		t.Fatalf("compile: %v", v.Err())
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"maven-compiler-plugin.release", "17", true},
		{"maven-compiler-plugin.enablePreview", "true", true},
		{"maven-compiler-plugin.fork", "2", true},
		{`"org.codehaus.mojo:build-helper".sources[1]`, "gen/b", true},
		{"executions[1].goal", "test-compile", true},
		{"executions[1].phase", "test", true},
		{"executions[0].phase", "", false},
		{"executions[5].goal", "", false},
		{"maven-compiler-plugin", "", false},
		{"missing.key", "", false},
		{"bad..key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, ok := cueutil.LookupString(v, tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LookupString(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseQueryKey_Invalid(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", ".a", "a..b", "a[", "a[x]", `"open`} {
		if _, err := cueutil.ParseQueryKey(key); !errors.Is(err, cueutil.ErrInvalidQueryKey) {
			t.Errorf("ParseQueryKey(%q) error = %v, want ErrInvalidQueryKey", key, err)
		}
	}
}

func TestPeekString(t *testing.T) {
	t.Parallel()

	got, ok, err := cueutil.PeekString([]byte(`schema_version: "2.0"`+"\nmodules: []"), "schema_version",
		cueutil.WithFilename("reactor.cue"))
	if err != nil {
		t.Fatalf("PeekString() error = %v", err)
	}
	if !ok || got != "2.0" {
		t.Errorf("PeekString() = (%q, %v), want (2.0, true)", got, ok)
	}

	if _, _, err := cueutil.PeekString([]byte("schema_version: "), "schema_version"); err == nil {
		t.Error("PeekString() should fail on syntax errors")
	}
}
