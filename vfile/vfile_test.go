package vfile

import (
	"io/ioutil"
	"testing"

	"github.com/thatguystone/cog/check"
	"github.com/thatguystone/uglify/internal/testutil"
	"github.com/thatguystone/uglify/sourcemap"
)

func TestContentsStates(t *testing.T) {
	c := check.New(t)

	f := &File{Path: "/a/b.js"}
	c.True(f.IsNull())
	c.False(f.IsBuffer())
	c.False(f.IsStream())

	_, err := f.String()
	c.Equal(err, ErrNotBuffered)

	f.SetContents(nil)
	c.False(f.IsNull())
	c.True(f.IsBuffer())

	s, err := f.String()
	c.Must.Nil(err)
	c.Equal(s, "")

	f.Stream = ioutil.NopCloser(nil)
	c.True(f.IsStream())
	c.False(f.IsBuffer())

	f.SetContents([]byte("abc"))
	c.False(f.IsStream())
	c.Equal(string(f.Contents), "abc")
}

func TestRelative(t *testing.T) {
	c := check.New(t)

	tests := []struct {
		base, path, rel string
	}{
		{"/src", "/src/js/app.js", "js/app.js"},
		{"/src/", "/src/app.js", "app.js"},
		{"", "js/app.js", "js/app.js"},
		{"/other", "/src/app.js", "/src/app.js"},
	}

	for _, test := range tests {
		f := New(test.base, test.path, nil)
		c.Equal(f.Relative(), test.rel)
	}
}

func TestReadOpen(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"src/app.js": "var a = 1;",
	})
	defer tmp.Remove()

	f, err := Read(tmp.Path(""), tmp.Path("src"), tmp.Path("src/app.js"))
	c.Must.Nil(err)
	c.True(f.IsBuffer())
	c.Equal(string(f.Contents), "var a = 1;")
	c.Equal(f.Relative(), "app.js")

	f, err = Open(tmp.Path(""), tmp.Path("src"), tmp.Path("src/app.js"))
	c.Must.Nil(err)
	c.True(f.IsStream())
	c.Nil(f.Stream.Close())

	_, err = Read("", "", tmp.Path("nope.js"))
	c.NotNil(err)
}

func TestApplySourceMapReplaces(t *testing.T) {
	c := check.New(t)

	f := New("/src", "/src/js/app.js", []byte("x"))
	f.SourceMap = sourcemap.Init("js/app.js", "x")

	m := &sourcemap.Map{
		Version:  sourcemap.Version,
		File:     "whatever.js",
		Sources:  []string{`js\app.js`},
		Names:    []string{},
		Mappings: "AAAA",
	}

	err := f.ApplySourceMap(m)
	c.Must.Nil(err)
	c.True(f.SourceMap == m)
	c.Equal(f.SourceMap.File, "js/app.js")
}

func TestApplySourceMapComposes(t *testing.T) {
	c := check.New(t)

	f := New("/src", "/src/app.js", []byte("x"))
	f.SourceMap = &sourcemap.Map{
		Version: sourcemap.Version,
		File:    "app.js",
		Sources: []string{"app.ts"},
		Names:   []string{},
		Mappings: sourcemap.EncodeMappings([]sourcemap.Segment{
			{GenLine: 0, GenCol: 0, Source: 0, OrigLine: 4, OrigCol: 2, Name: -1},
		}),
	}

	err := f.ApplySourceMap(&sourcemap.Map{
		Version: sourcemap.Version,
		Sources: []string{"app.js"},
		Names:   []string{},
		Mappings: sourcemap.EncodeMappings([]sourcemap.Segment{
			{GenLine: 0, GenCol: 0, Source: 0, OrigLine: 0, OrigCol: 3, Name: -1},
		}),
	})
	c.Must.Nil(err)
	c.Equal(f.SourceMap.Sources, []string{"app.ts"})

	segs, err := sourcemap.DecodeMappings(f.SourceMap.Mappings)
	c.Must.Nil(err)
	c.Len(segs, 1)
	c.Equal(segs[0].OrigLine, 4)
	c.Equal(segs[0].OrigCol, 2)
}

func TestApplySourceMapErrors(t *testing.T) {
	c := check.New(t)

	f := New("", "app.js", nil)
	err := f.ApplySourceMap(&sourcemap.Map{Version: sourcemap.Version})
	c.Equal(err, sourcemap.ErrMissingFields)

	f.SourceMap = &sourcemap.Map{
		Version:  sourcemap.Version,
		Sources:  []string{"a"},
		Mappings: "AAAA",
	}
	err = f.ApplySourceMap(&sourcemap.Map{
		Version:  sourcemap.Version,
		Sources:  []string{"a"},
		Mappings: "*",
	})
	c.NotNil(err)
}
