// Package vfs reads files into, and writes files out of, pipelines
package vfs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/thatguystone/uglify/sourcemap"
	"github.com/thatguystone/uglify/vfile"
)

type src struct {
	cwd        string
	base       string
	read       bool
	sourceMaps bool
}

// Src finds every file matching globs, relative to cwd. Globs starting with
// "!" exclude matches. Each file's Base is the static part of the glob that
// found it.
func Src(cwd string, globs []string, opts ...SrcOption) ([]*vfile.File, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}

	s := src{
		cwd:  abs,
		read: true,
	}

	for _, opt := range opts {
		opt.applyToSrc(&s)
	}

	var include, exclude []string
	for _, g := range globs {
		g = strings.TrimPrefix(filepath.ToSlash(g), "./")

		if strings.HasPrefix(g, "!") {
			exclude = append(exclude, strings.TrimPrefix(g[1:], "./"))
		} else {
			include = append(include, g)
		}

		if !doublestar.ValidatePattern(strings.TrimPrefix(g, "!")) {
			return nil, fmt.Errorf("invalid glob: %q", g)
		}
	}

	return s.find(include, exclude)
}

func (s *src) find(include, exclude []string) ([]*vfile.File, error) {
	fsys := os.DirFS(s.cwd)
	errs := make(Errors)
	seen := make(map[string]bool)

	var files []*vfile.File
	for _, g := range include {
		matches, err := doublestar.Glob(fsys, g)
		if err != nil {
			errs.add(g, err)
			continue
		}

		sort.Strings(matches)

		globBase, _ := doublestar.SplitPattern(g)
		base := s.base
		if base == "" {
			base = filepath.Join(s.cwd, filepath.FromSlash(globBase))
		}

		for _, m := range matches {
			if seen[m] || excluded(exclude, m) {
				continue
			}

			info, err := fs.Stat(fsys, m)
			if err != nil {
				errs.add(m, err)
				continue
			}

			if info.IsDir() {
				continue
			}

			seen[m] = true

			f, err := s.load(base, m)
			if err != nil {
				errs.add(m, err)
				continue
			}

			files = append(files, f)
		}
	}

	err := errs.getError()
	if err != nil {
		return nil, err
	}

	return files, nil
}

func excluded(exclude []string, name string) bool {
	for _, pattern := range exclude {
		ok, _ := doublestar.Match(pattern, name)
		if ok {
			return true
		}
	}

	return false
}

func (s *src) load(base, name string) (*vfile.File, error) {
	p := filepath.Join(s.cwd, filepath.FromSlash(path.Clean(name)))

	if !s.read {
		return &vfile.File{
			Cwd:  s.cwd,
			Base: base,
			Path: p,
		}, nil
	}

	f, err := vfile.Read(s.cwd, base, p)
	if err != nil {
		return nil, err
	}

	if s.sourceMaps {
		f.SourceMap = sourcemap.Init(f.Relative(), string(f.Contents))
	}

	return f, nil
}
