// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
)

// ErrInvalidQueryKey is returned when a lookup key cannot be parsed.
var ErrInvalidQueryKey = errors.New("invalid query key")

// ParseQueryKey converts a dotted/indexed key into a CUE path.
//
// Segments are separated by '.', array elements are addressed with "[n]",
// and a segment may be double-quoted to keep dots or brackets in a label:
//
//	maven-compiler-plugin.release
//	executions[1].goals[0]
//	"org.codehaus.mojo:build-helper".sources[0]
//
// Unlike cue.ParsePath, labels need not be valid CUE identifiers.
func ParseQueryKey(key string) (cue.Path, error) {
	var (
		selectors []cue.Selector
		label     strings.Builder
		quoted    bool
		hasLabel  bool
		afterIdx  bool
	)

	flush := func() {
		if hasLabel {
			selectors = append(selectors, cue.Str(label.String()))
		}
		label.Reset()
		hasLabel = false
	}

	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case quoted && c == '"':
			quoted = false
		case quoted:
			label.WriteByte(c)
		case c == '"':
			quoted = true
			hasLabel = true
		case c == '.':
			if !hasLabel && !afterIdx {
				return cue.Path{}, fmt.Errorf("%w %q: empty segment at offset %d", ErrInvalidQueryKey, key, i)
			}
			flush()
		case c == '[':
			end := strings.IndexByte(key[i:], ']')
			if end < 0 {
				return cue.Path{}, fmt.Errorf("%w %q: unterminated index", ErrInvalidQueryKey, key)
			}
			n, err := strconv.Atoi(key[i+1 : i+end])
			if err != nil || n < 0 {
				return cue.Path{}, fmt.Errorf("%w %q: bad index %q", ErrInvalidQueryKey, key, key[i+1:i+end])
			}
			flush()
			selectors = append(selectors, cue.Index(n))
			afterIdx = true
			i += end
			continue
		default:
			label.WriteByte(c)
			hasLabel = true
		}
		afterIdx = false
	}
	if quoted {
		return cue.Path{}, fmt.Errorf("%w %q: unterminated quote", ErrInvalidQueryKey, key)
	}
	flush()

	if len(selectors) == 0 {
		return cue.Path{}, fmt.Errorf("%w: empty key", ErrInvalidQueryKey)
	}
	return cue.MakePath(selectors...), nil
}

// LookupString resolves key against v and renders the value as a string.
// Strings are returned verbatim; booleans and numbers use their CUE literal
// form. Missing, non-concrete, or composite values report false.
func LookupString(v cue.Value, key string) (string, bool) {
	path, err := ParseQueryKey(key)
	if err != nil {
		return "", false
	}
	found := v.LookupPath(path)
	if !found.Exists() || found.Err() != nil || !found.IsConcrete() {
		return "", false
	}

	switch found.Kind() {
	case cue.StringKind:
		s, err := found.String()
		return s, err == nil
	case cue.BoolKind:
		b, err := found.Bool()
		return strconv.FormatBool(b), err == nil
	case cue.IntKind:
		n, err := found.Int64()
		return strconv.FormatInt(n, 10), err == nil
	case cue.FloatKind, cue.NumberKind:
		f, err := found.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64), err == nil
	default:
		return "", false
	}
}
