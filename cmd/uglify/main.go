// Command uglify minifies files matched by a yaml config
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/thatguystone/uglify"
	"github.com/thatguystone/uglify/engine/esbuild"
	"github.com/thatguystone/uglify/engine/tdmin"
	"github.com/thatguystone/uglify/internal"
	"github.com/thatguystone/uglify/internal/config"
	"github.com/thatguystone/uglify/stream"
	"github.com/thatguystone/uglify/vfs"
	"github.com/thatguystone/uglify/watch"
)

// Exit codes
const (
	exitOK = iota
	exitBuild
	exitConfig
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, logOut io.Writer) int {
	logf := log.New(logOut, "", log.LstdFlags).Printf

	cfg, err := loadConfig(args)
	if err != nil {
		logf("E: config: %v", err)
		return exitConfig
	}

	r := runner{
		cfg:  cfg,
		eng:  newEngine(cfg.Engine),
		logf: logf,
		log:  internal.NewLogger("build", logf),
	}

	err = r.build(ctx)
	if !cfg.Watch {
		if err != nil {
			return exitBuild
		}

		return exitOK
	}

	err = r.watch(ctx)
	if err != nil {
		r.log.Error(err, "watch failed")
		return exitBuild
	}

	return exitOK
}

func loadConfig(args []string) (*config.C, error) {
	cfg := config.New()

	err := cfg.Load(args...)
	if err != nil {
		return nil, err
	}

	dir := "."
	if len(args) > 0 {
		dir = filepath.Dir(args[len(args)-1])
	}

	return cfg.InDir(dir), nil
}

func newEngine(name string) uglify.Engine {
	if name == config.EngineESBuild {
		return esbuild.New()
	}

	return tdmin.New()
}

type runner struct {
	cfg  *config.C
	eng  uglify.Engine
	logf func(string, ...interface{})
	log  uglify.Logger
}

func (r *runner) build(ctx context.Context) error {
	files, err := vfs.Src(r.cfg.Cwd, r.cfg.Globs(), vfs.SourceMaps(r.cfg.SourceMaps))
	if err != nil {
		r.log.Error(err, "failed to find sources")
		return err
	}

	ug := uglify.New(r.cfg.Options, r.eng, uglify.LogTo(r.logf))
	ug.On(stream.EventWarning, func(v interface{}) {
		internal.Warning(r.log, v)
	})

	out, err := stream.Pipeline(ctx, files,
		ug,
		vfs.Dest(r.cfg.DestDir(), vfs.MapFiles(r.cfg.SourceMaps)))
	if err != nil {
		r.log.Error(err, "build failed")
		return err
	}

	r.log.Log(fmt.Sprintf("minified %d files into %s", len(out), r.cfg.DestDir()))
	return nil
}

func (r *runner) watch(ctx context.Context) error {
	dest, err := filepath.Abs(r.cfg.DestDir())
	if err != nil {
		return err
	}

	w, err := watch.New(r.cfg.Cwd)
	if err != nil {
		return err
	}

	defer w.Stop()

	changed := make(chan struct{}, 1)
	w.Notify(watch.WatcherFunc(func(evs watch.Events) {
		if !outside(evs.Paths(), dest) {
			return
		}

		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	r.log.Log(fmt.Sprintf("watching %s for changes", r.cfg.Cwd))

	for {
		select {
		case <-changed:
			r.build(ctx)

		case <-ctx.Done():
			return nil
		}
	}
}

// outside checks if any path lives outside of dir
func outside(paths []string, dir string) bool {
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
