// Package testutil holds helpers shared by tests
package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/thatguystone/cog/check"
)

// A TmpDir is a scratch directory for a single test
type TmpDir struct {
	c    *check.C
	root string
}

// NewTmpDir creates a new temp directory holding the given files
func NewTmpDir(c *check.C, files map[string]string) *TmpDir {
	root, err := ioutil.TempDir("", "uglify-test-")
	c.Must.Nil(err)

	tmp := &TmpDir{
		c:    c,
		root: root,
	}

	for path, content := range files {
		tmp.WriteFile(path, content)
	}

	return tmp
}

// Remove removes the temp dir and everything in it
func (tmp *TmpDir) Remove() {
	err := os.RemoveAll(tmp.root)
	tmp.c.Nil(err)
}

// Path gets the absolute path to something in the temp dir
func (tmp *TmpDir) Path(p string) string {
	return filepath.Join(tmp.root, filepath.Clean(p))
}

// GetFiles gets every file in the temp dir, keyed by "/"-rooted relative path
func (tmp *TmpDir) GetFiles() map[string]string {
	m := make(map[string]string)

	filepath.Walk(tmp.root,
		func(path string, info os.FileInfo, err error) error {
			tmp.c.Must.Nil(err)

			if info.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(tmp.root, path)
			tmp.c.Must.Nil(err)

			m["/"+filepath.ToSlash(rel)] = tmp.ReadFile(rel)
			return nil
		})

	return m
}

// ReadFile reads a file from the temp dir
func (tmp *TmpDir) ReadFile(path string) string {
	b, err := ioutil.ReadFile(tmp.Path(path))
	tmp.c.Must.Nil(err)
	return string(b)
}

// WriteFile writes a file to the temp dir, creating parents as necessary
func (tmp *TmpDir) WriteFile(path string, content string) {
	path = tmp.Path(path)

	err := os.MkdirAll(filepath.Dir(path), 0750)
	tmp.c.Must.Nil(err)

	err = ioutil.WriteFile(path, []byte(content), 0640)
	tmp.c.Must.Nil(err)
}
