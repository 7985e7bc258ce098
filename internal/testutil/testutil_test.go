// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestMustWriteFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/proj")
	MustWriteFiles(t, fs, root, map[string]string{
		"pom.xml":              "<project/>",
		"core/src/main/A.java": "class A {}",
	})

	data, err := afero.ReadFile(fs, filepath.Join(root, "core", "src", "main", "A.java"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "class A {}" {
		t.Errorf("content = %q", data)
	}
	if ok, _ := afero.IsDir(fs, filepath.Join(root, "core", "src")); !ok {
		t.Error("parent directories were not created")
	}
}

func TestMustMkdirAll(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := filepath.FromSlash("/a/b/c")
	MustMkdirAll(t, fs, dir)
	if ok, _ := afero.IsDir(fs, dir); !ok {
		t.Errorf("%s was not created", dir)
	}
}
