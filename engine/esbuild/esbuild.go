// Package esbuild implements an uglify.Engine on top of esbuild's transform API
package esbuild

import (
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/thatguystone/uglify"
)

var loaders = map[string]api.Loader{
	".css":  api.LoaderCSS,
	".jsx":  api.LoaderJSX,
	".ts":   api.LoaderTS,
	".tsx":  api.LoaderTSX,
	".json": api.LoaderJSON,
}

// An Engine minifies with esbuild. It produces a source map whenever one is
// asked for.
type Engine struct {
	target api.Target
}

// New creates a new Engine
func New(opts ...Option) *Engine {
	e := new(Engine)
	for _, opt := range opts {
		opt.applyTo(e)
	}

	return e
}

func (e *Engine) transformOptions(opts *uglify.EngineOptions) api.TransformOptions {
	name := opts.File
	if name == "" {
		name = opts.OutSourceMap
	}

	loader, ok := loaders[strings.ToLower(path.Ext(name))]
	if !ok {
		loader = api.LoaderJS
	}

	mangle := true
	if v, ok := opts.Raw["mangle"].(bool); ok {
		mangle = v
	}

	to := api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		Target:            e.target,
		MinifyWhitespace:  true,
		MinifyIdentifiers: mangle,
		MinifySyntax:      true,
		LegalComments:     api.LegalCommentsNone,
	}

	// esbuild only knows how to keep legal comments
	if opts.Comments != nil {
		to.LegalComments = api.LegalCommentsInline
	}

	if opts.OutSourceMap != "" {
		to.Sourcemap = api.SourceMapExternal
	}

	return to
}

// Minify implements uglify.Engine
func (e *Engine) Minify(src string, opts *uglify.EngineOptions) (*uglify.Result, error) {
	res := api.Transform(src, e.transformOptions(opts))
	if len(res.Errors) > 0 {
		return nil, syntaxError(opts.File, res.Errors[0])
	}

	return &uglify.Result{
		Code: string(res.Code),
		Map:  string(res.Map),
	}, nil
}

func syntaxError(file string, msg api.Message) error {
	err := &uglify.SyntaxError{
		Msg:  msg.Text,
		File: file,
	}

	if loc := msg.Location; loc != nil {
		err.Line = loc.Line
		err.Column = loc.Column
		if loc.File != "" {
			err.File = loc.File
		}
	}

	return err
}
