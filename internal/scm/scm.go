// SPDX-License-Identifier: MPL-2.0

// Package scm infers project SCM links from the git repository enclosing a
// module directory.
package scm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote whose URL is reported.
const DefaultRemote = "origin"

// ErrNoRemoteURL is returned when the remote exists but declares no URL.
var ErrNoRemoteURL = errors.New("remote has no URL")

type (
	// LinkResolver reads remote URLs with go-git.
	LinkResolver struct {
		remote string
	}

	// Option configures a LinkResolver.
	Option func(*LinkResolver)
)

// WithRemote selects the remote name (DefaultRemote otherwise).
func WithRemote(name string) Option {
	return func(r *LinkResolver) {
		if name != "" {
			r.remote = name
		}
	}
}

// NewLinkResolver creates a LinkResolver.
func NewLinkResolver(opts ...Option) *LinkResolver {
	r := &LinkResolver{remote: DefaultRemote}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SCMLink returns the first URL of the configured remote of the repository
// containing dir, searching parent directories for .git. Credentials embedded
// in http(s) URLs are removed.
func (r *LinkResolver) SCMLink(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository for %s: %w", dir, err)
	}
	remote, err := repo.Remote(r.remote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", r.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRemoteURL, r.remote)
	}
	return redact(strings.TrimSpace(urls[0])), nil
}

// IsNotRepository reports whether err means dir is not inside a git
// repository.
func IsNotRepository(err error) bool {
	return errors.Is(err, git.ErrRepositoryNotExists)
}

// redact strips userinfo from URLs that carry a scheme; scp-style
// "git@host:path" addresses are returned unchanged.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.User == nil {
		return raw
	}
	if u.Scheme == "ssh" {
		u.User = url.User(u.User.Username())
		return u.String()
	}
	u.User = nil
	return u.String()
}
