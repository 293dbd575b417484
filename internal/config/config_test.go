package config

import (
	"testing"

	"github.com/thatguystone/cog/check"
	"github.com/thatguystone/uglify/internal/testutil"
)

func TestLoadErrors(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"invalid.yml": "src: [",
		"engine.yml":  "engine: closure",
		"nosrc.yml":   "src: []",
	})
	defer tmp.Remove()

	cfg := New()
	c.NotNil(cfg.Load(tmp.Path("narp.yml")))

	c.Run("Invalid", func(c *check.C) {
		c.NotNil(New().Load(tmp.Path("invalid.yml")))
	})

	c.Run("Engine", func(c *check.C) {
		c.NotNil(New().Load(tmp.Path("engine.yml")))
	})

	c.Run("NoSrc", func(c *check.C) {
		c.NotNil(New().Load(tmp.Path("nosrc.yml")))
	})
}

func TestLoadLayers(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"one.yml": "" +
			"cwd: site\n" +
			"src: [js/**/*.js]\n" +
			"options:\n" +
			"  mangle: false\n" +
			"  output:\n" +
			"    preserveComments: some\n",
		"two.yml": "" +
			"engine: esbuild\n" +
			"sourceMaps: true\n" +
			"dest: /srv/www\n",
	})
	defer tmp.Remove()

	cfg := New()
	err := cfg.Load(tmp.Path("one.yml"), tmp.Path("two.yml"))
	c.Must.Nil(err)

	c.Equal(cfg.Cwd, "site")
	c.Equal(cfg.Src, []string{"js/**/*.js"})
	c.Equal(cfg.Engine, EngineESBuild)
	c.True(cfg.SourceMaps)
	c.False(cfg.Watch)
	c.Equal(cfg.Options["mangle"], false)
	c.Equal(cfg.DestDir(), "/srv/www")
}

func TestDestDir(t *testing.T) {
	c := check.New(t)

	cfg := New()
	cfg.Cwd = "site"
	c.Equal(cfg.DestDir(), "site/public")
}

func TestInDir(t *testing.T) {
	c := check.New(t)

	cfg := New()
	cfg.Cwd = "site"

	in := cfg.InDir("/etc/uglify")
	c.Equal(in.Cwd, "/etc/uglify/site")
	c.Equal(in.DestDir(), "/etc/uglify/site/public")
	c.Equal(cfg.Cwd, "site")

	in.Cwd = "/abs"
	c.Equal(in.InDir("/etc").Cwd, "/abs")
}

func TestGlobs(t *testing.T) {
	c := check.New(t)

	cfg := New()
	cfg.Cwd = "/site"
	c.Equal(cfg.Globs(), []string{"**/*.js", "!**/*.min.js", "!public/**"})
	c.Equal(cfg.Src, []string{"**/*.js", "!**/*.min.js"})

	cfg.Dest = "/srv/www"
	c.Equal(cfg.Globs(), cfg.Src)

	cfg.Dest = "../www"
	c.Equal(cfg.Globs(), cfg.Src)

	cfg.Dest = "build/js/"
	c.Equal(cfg.Globs()[2], "!build/js/**")
}
