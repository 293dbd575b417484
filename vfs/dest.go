package vfs

import (
	"fmt"
	"io/ioutil"
	"path"
	"path/filepath"

	"github.com/thatguystone/cog/cfs"
	"github.com/thatguystone/uglify/stream"
	"github.com/thatguystone/uglify/vfile"
)

type dest struct {
	dir      string
	mapFiles bool
}

// Dest creates a stream that writes every file into dir, at its relative path.
// Written files are re-based onto dir.
func Dest(dir string, opts ...DestOption) *stream.Stream {
	d := &dest{
		dir: dir,
	}

	for _, opt := range opts {
		opt.applyToDest(d)
	}

	return stream.New(d.transform, stream.Name("dest"))
}

func (d *dest) transform(s *stream.Stream, f *vfile.File, done stream.Done) {
	if f.IsNull() {
		done(f, nil)
		return
	}

	if f.IsStream() {
		done(nil, fmt.Errorf("%s: streaming not supported", f.Path))
		return
	}

	rel := f.Relative()
	dst := filepath.Join(d.dir, filepath.FromSlash(rel))

	contents := f.Contents
	if d.mapFiles && f.SourceMap != nil {
		err := d.writeMap(f, dst)
		if err != nil {
			done(nil, err)
			return
		}

		url := path.Base(rel) + ".map"
		contents = append(contents[:len(contents):len(contents)],
			mapComment(rel, url)...)
	}

	err := cfs.CreateParents(dst)
	if err == nil {
		err = ioutil.WriteFile(dst, contents, 0640)
	}

	if err != nil {
		done(nil, err)
		return
	}

	f.SetContents(contents)
	f.Base = d.dir
	f.Path = dst

	done(f, nil)
}

func (d *dest) writeMap(f *vfile.File, dst string) error {
	b, err := f.SourceMap.Marshal()
	if err != nil {
		return err
	}

	err = cfs.CreateParents(dst)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(dst+".map", b, 0640)
}

func mapComment(rel, url string) string {
	if path.Ext(rel) == ".css" {
		return fmt.Sprintf("\n/*# sourceMappingURL=%s */", url)
	}

	return fmt.Sprintf("\n//# sourceMappingURL=%s", url)
}
