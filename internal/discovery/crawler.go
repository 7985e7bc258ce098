// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/spf13/afero"

	"github.com/scanprops/scanprops/pkg/fspath"
)

type (
	// Crawler walks a project tree looking for uncovered files.
	Crawler struct {
		fs         afero.Fs
		exclusions []string
	}

	// Option configures a Crawler.
	Option func(*Crawler)

	// Request describes one crawl.
	Request struct {
		// Basedir is the directory walked.
		Basedir string
		// Covered are the files and directories already analyzed; files at or
		// below any of them are not reported.
		Covered []string
		// SkipDirs are directories never entered (module build directories).
		SkipDirs []string
	}

	// CrawlResult bundles uncovered files with the diagnostics of the walk.
	CrawlResult struct {
		Files       []string
		Diagnostics []Diagnostic
	}
)

// WithFs sets the filesystem walked.
func WithFs(fs afero.Fs) Option {
	return func(c *Crawler) { c.fs = fs }
}

// WithExclusions sets doublestar globs, matched against slash-separated paths
// relative to the basedir. A matching directory is not entered.
func WithExclusions(patterns ...string) Option {
	return func(c *Crawler) { c.exclusions = append(c.exclusions, patterns...) }
}

// NewCrawler creates a Crawler.
func NewCrawler(opts ...Option) *Crawler {
	c := &Crawler{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl walks req.Basedir in lexical order and returns every regular file not
// covered, not hidden, not inside a skipped directory and not excluded.
func (c *Crawler) Crawl(req Request) CrawlResult {
	var res CrawlResult
	bad := make(map[string]bool)
	excluded := func(path string) bool {
		rel, err := filepath.Rel(req.Basedir, path)
		if err != nil {
			return false
		}
		rel = filepath.ToSlash(rel)
		for _, p := range c.exclusions {
			if bad[p] {
				continue
			}
			ok, err := doublestar.Match(p, rel)
			if err != nil {
				bad[p] = true
				res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithCause(SeverityWarning, CodeInvalidExclusion,
					fmt.Sprintf("ignoring malformed exclusion pattern %q", p), "", err))
				continue
			}
			if ok {
				return true
			}
		}
		return false
	}

	walkErr := afero.Walk(c.fs, req.Basedir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == req.Basedir {
				res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithCause(SeverityWarning, CodeCrawlRootUnavailable,
					"project base directory could not be read; no additional files collected", path, err))
				return filepath.SkipDir
			}
			res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithCause(SeverityWarning, CodeCrawlEntryFailed,
				fmt.Sprintf("skipping unreadable entry: %v", err), path, err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == req.Basedir {
			return nil
		}

		if skipped(path, info, req.SkipDirs) || excluded(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && !covered(path, req.Covered) {
			res.Files = append(res.Files, path)
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, filepath.SkipDir) {
		res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithCause(SeverityWarning, CodeCrawlEntryFailed,
			"crawl aborted", req.Basedir, walkErr))
	}
	return res
}

// skipped reports hidden entries and module build directories.
func skipped(path string, info os.FileInfo, skipDirs []string) bool {
	if strings.HasPrefix(info.Name(), ".") {
		return true
	}
	return info.IsDir() && slices.ContainsFunc(skipDirs, func(d string) bool {
		return d != "" && filepath.Clean(d) == filepath.Clean(path)
	})
}

func covered(path string, roots []string) bool {
	return slices.ContainsFunc(roots, func(root string) bool {
		return fspath.IsWithin(path, root)
	})
}
