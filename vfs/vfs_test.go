package vfs

import (
	"context"
	"errors"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/thatguystone/cog/check"
	"github.com/thatguystone/uglify/internal/testutil"
	"github.com/thatguystone/uglify/sourcemap"
	"github.com/thatguystone/uglify/stream"
	"github.com/thatguystone/uglify/vfile"
)

func relatives(fs []*vfile.File) []string {
	var rels []string
	for _, f := range fs {
		rels = append(rels, f.Relative())
	}

	return rels
}

func TestSrc(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"src/app.js":          "var a = 1;",
		"src/lib/util.js":     "var b = 2;",
		"src/lib/util.min.js": "var c=3;",
		"src/style.css":       "a{}",
		"other/x.js":          "x",
	})
	defer tmp.Remove()

	files, err := Src(tmp.Path(""), []string{
		"src/**/*.js",
		"!src/**/*.min.js",
		"./src/app.js",
	})
	c.Must.Nil(err)
	c.Equal(relatives(files), []string{"app.js", "lib/util.js"})
	c.Equal(string(files[0].Contents), "var a = 1;")
	c.Equal(files[0].Cwd, tmp.Path(""))
	c.Equal(files[0].Base, tmp.Path("src"))
	c.True(files[0].SourceMap == nil)
}

func TestSrcOptions(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"src/js/app.js": "var a = 1;",
	})
	defer tmp.Remove()

	files, err := Src(tmp.Path(""), []string{"src/**/*.js"},
		SourceMaps(true),
		Base(tmp.Path("")))
	c.Must.Nil(err)
	c.Len(files, 1)
	c.Equal(files[0].Relative(), "src/js/app.js")
	c.Equal(files[0].SourceMap, sourcemap.Init("src/js/app.js", "var a = 1;"))

	files, err = Src(tmp.Path(""), []string{"src/**/*.js"}, Read(false))
	c.Must.Nil(err)
	c.Len(files, 1)
	c.True(files[0].IsNull())
}

func TestSrcInvalidGlob(t *testing.T) {
	c := check.New(t)

	_, err := Src(".", []string{"src/[.js"})
	c.NotNil(err)
}

func TestDest(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, nil)
	defer tmp.Remove()

	js := vfile.New("/src", "/src/js/app.js", []byte("a()"))
	js.SourceMap = sourcemap.Init("js/app.js", "a ( )")

	css := vfile.New("/src", "/src/site.css", []byte("a{}"))
	css.SourceMap = sourcemap.Init("site.css", "a { }")

	plain := vfile.New("/src", "/src/plain.js", []byte("b()"))
	null := &vfile.File{Base: "/src", Path: "/src/null.js"}

	out, err := stream.Pipeline(
		context.Background(),
		[]*vfile.File{js, css, plain, null},
		Dest(tmp.Path("public"), MapFiles(true)))
	c.Must.Nil(err)
	c.Len(out, 4)

	c.Equal(tmp.GetFiles()["/public/js/app.js"],
		"a()\n//# sourceMappingURL=app.js.map")
	c.Equal(tmp.GetFiles()["/public/site.css"],
		"a{}\n/*# sourceMappingURL=site.css.map */")
	c.Equal(tmp.GetFiles()["/public/plain.js"], "b()")
	c.Contains(tmp.ReadFile("public/js/app.js.map"), `"sources":["js/app.js"]`)

	_, ok := tmp.GetFiles()["/public/null.js"]
	c.False(ok)

	c.Equal(js.Path, tmp.Path("public/js/app.js"))
	c.Equal(js.Relative(), "js/app.js")
}

func TestDestStream(t *testing.T) {
	c := check.New(t)

	f := &vfile.File{
		Path:   "/src/app.js",
		Stream: ioutil.NopCloser(strings.NewReader("a()")),
	}

	_, err := Dest("/nope").Process(f)
	c.NotNil(err)
}

func TestErrors(t *testing.T) {
	c := check.New(t)

	errs := make(Errors)
	c.Nil(errs.getError())

	errs.add("b.js", errors.New("two\nlines"))
	errs.add("a.js", errors.New("one"))

	err := errs.getError()
	c.Must.NotNil(err)

	msg := err.Error()
	c.True(strings.Index(msg, `"a.js"`) < strings.Index(msg, `"b.js"`))
	c.Contains(msg, ErrIndent+ErrIndent+"lines")
}
