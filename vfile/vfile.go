// Package vfile implements the file objects that flow through a pipeline
package vfile

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/thatguystone/uglify/sourcemap"
)

// ErrNotBuffered is returned when buffered contents are required
var ErrNotBuffered = errors.New("file contents are not buffered")

// A File is a single unit of work in a pipeline.
//
// Contents are tri-state: nil Contents and nil Stream is a null file, a non-nil
// Stream is a live stream, anything else is a buffer.
type File struct {
	Cwd       string         // Working directory the file was found from
	Base      string         // Directory that Relative() is computed from
	Path      string         // Full path to the file
	Contents  []byte         // Buffered contents
	Stream    io.ReadCloser  // Streamed contents
	SourceMap *sourcemap.Map // Attached source map
}

// New creates a buffered file
func New(base, path string, contents []byte) *File {
	if contents == nil {
		contents = []byte{}
	}

	return &File{
		Base:     base,
		Path:     path,
		Contents: contents,
	}
}

// Read reads a file from disk into a buffered File
func Read(cwd, base, path string) (*File, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := New(base, path, b)
	f.Cwd = cwd

	return f, nil
}

// Open opens a file from disk into a streamed File
func Open(cwd, base, path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &File{
		Cwd:    cwd,
		Base:   base,
		Path:   path,
		Stream: r,
	}, nil
}

// IsNull checks if the file has no contents at all
func (f *File) IsNull() bool {
	return f.Contents == nil && f.Stream == nil
}

// IsStream checks if the file's contents are a live stream
func (f *File) IsStream() bool {
	return f.Stream != nil
}

// IsBuffer checks if the file's contents are in memory
func (f *File) IsBuffer() bool {
	return f.Stream == nil && f.Contents != nil
}

// SetContents replaces the file's contents with a buffer
func (f *File) SetContents(b []byte) {
	if b == nil {
		b = []byte{}
	}

	f.Contents = b
	f.Stream = nil
}

// String gets the buffered contents as a string
func (f *File) String() (string, error) {
	if !f.IsBuffer() {
		return "", ErrNotBuffered
	}

	return string(f.Contents), nil
}

// Relative gets the file's path relative to Base, using forward slashes
func (f *File) Relative() string {
	if f.Base == "" {
		return filepath.ToSlash(f.Path)
	}

	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(f.Path)
	}

	return filepath.ToSlash(rel)
}

// ApplySourceMap attaches a new map to the file. When the file already has a
// map with mappings, the new map is composed onto it; otherwise it replaces
// whatever was there.
func (f *File) ApplySourceMap(m *sourcemap.Map) error {
	err := m.Validate()
	if err != nil {
		return err
	}

	m.File = f.Relative()
	for i, src := range m.Sources {
		m.Sources[i] = filepath.ToSlash(src)
	}

	if f.SourceMap == nil || f.SourceMap.Mappings == "" {
		f.SourceMap = m
		return nil
	}

	composed, err := m.Compose(f.SourceMap)
	if err != nil {
		return fmt.Errorf("failed to apply source map to %s: %w", f.Path, err)
	}

	f.SourceMap = composed
	return nil
}
