// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/pkg/platform"
)

// SkipOnWindows skips tests whose fixtures are written with POSIX absolute
// paths.
func SkipOnWindows(t testing.TB) {
	t.Helper()
	if runtime.GOOS == platform.Windows {
		t.Skip("POSIX path fixtures")
	}
}

// MustMkdirAll creates each directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, fs afero.Fs, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("failed to create directory %s: %v", d, err)
		}
	}
}

// MustWriteFiles writes files (path to content) below root, creating parent
// directories. Slash-separated relative paths are joined to root; root may
// be empty when the paths are absolute. Files are written in sorted order.
func MustWriteFiles(t testing.TB, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		full := filepath.FromSlash(p)
		if root != "" {
			full = filepath.Join(root, full)
		}
		MustMkdirAll(t, fs, filepath.Dir(full))
		if err := afero.WriteFile(fs, full, []byte(files[p]), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", full, err)
		}
	}
}
