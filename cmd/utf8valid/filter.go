package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// filter selects files found while walking directories.
//
// A pattern without a slash is matched against the base name, otherwise
// against the slash-separated path. Exclusion wins over inclusion, and an
// empty include list includes everything.
type filter struct {
	include []pattern
	exclude []pattern
}

type pattern struct {
	g        glob.Glob
	fullPath bool
}

func newFilter(include, exclude []string) (*filter, error) {
	f := &filter{}
	var err error
	if f.include, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compilePatterns(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compilePatterns(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, pattern{g: g, fullPath: strings.Contains(p, "/")})
	}
	return out, nil
}

func (f *filter) match(name string) bool {
	name = filepath.ToSlash(name)
	base := path.Base(name)

	matches := func(ps []pattern) bool {
		for _, p := range ps {
			if p.fullPath && p.g.Match(name) || !p.fullPath && p.g.Match(base) {
				return true
			}
		}
		return false
	}

	if matches(f.exclude) {
		return false
	}
	return len(f.include) == 0 || matches(f.include)
}
