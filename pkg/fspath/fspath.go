// SPDX-License-Identifier: MPL-2.0

// Package fspath provides the path arithmetic used when flattening a module
// tree: absolute resolution against a module basedir, component-wise
// containment checks, and common-ancestor search between module basedirs.
//
// All functions are purely lexical. They never touch the filesystem, so
// symlinks are compared by name, not by target.
package fspath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrAmbiguousCommonRoot is the sentinel error wrapped by AmbiguousCommonRootError.
var ErrAmbiguousCommonRoot = errors.New("ambiguous common root")

// AmbiguousCommonRootError is returned when two paths share no named
// ancestor. The filesystem root is never accepted as a common ancestor.
type AmbiguousCommonRootError struct {
	First  string
	Second string
}

// Error implements the error interface.
func (e *AmbiguousCommonRootError) Error() string {
	return fmt.Sprintf("unable to find a common parent between two module basedirs: '%s' and '%s'", e.First, e.Second)
}

// Unwrap returns ErrAmbiguousCommonRoot for errors.Is() compatibility.
func (e *AmbiguousCommonRootError) Unwrap() error { return ErrAmbiguousCommonRoot }

// ResolveAbsolute returns p as a cleaned absolute path. Relative inputs
// (forward slashes accepted on every platform) are joined onto base.
func ResolveAbsolute(p, base string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	if !filepath.IsAbs(p) {
		// base itself was relative; anchor it to the working directory
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	}
	return filepath.Clean(p)
}

// IsWithin reports whether child equals parent or lies below it.
// Containment is decided per path component: "src-gen" is not within "src".
func IsWithin(child, parent string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsStrictChild reports whether child lies below parent and is not parent itself.
func IsStrictChild(child, parent string) bool {
	return filepath.Clean(child) != filepath.Clean(parent) && IsWithin(child, parent)
}

// CommonAncestor returns the deepest path that contains both a and b.
//
// If one path contains the other the outer one is returned unchanged.
// Otherwise the ancestors of a are searched bottom-up for one that also
// contains b. Reaching the filesystem root (or "." for relative inputs)
// without a match yields an AmbiguousCommonRootError.
func CommonAncestor(a, b string) (string, error) {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if IsWithin(b, a) {
		return a, nil
	}
	if IsWithin(a, b) {
		return b, nil
	}
	for p := filepath.Dir(a); !isTopLevel(p); p = filepath.Dir(p) {
		if IsWithin(b, p) {
			return p, nil
		}
	}
	return "", &AmbiguousCommonRootError{First: a, Second: b}
}

// isTopLevel reports whether p has no named segment left to climb from.
func isTopLevel(p string) bool {
	if p == "." || filepath.Dir(p) == p {
		return true
	}
	vol := filepath.VolumeName(p)
	return p == vol || p == vol+string(filepath.Separator)
}
