// Package tdmin implements an uglify.Engine on top of tdewolff/minify
package tdmin

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/parse/v2"
	"github.com/thatguystone/uglify"
)

const (
	jsType   = "application/javascript"
	cssType  = "text/css"
	htmlType = "text/html"
	jsonType = "application/json"
	svgType  = "image/svg+xml"
)

var (
	exts = map[string]string{
		".js":   jsType,
		".mjs":  jsType,
		".cjs":  jsType,
		".css":  cssType,
		".htm":  htmlType,
		".html": htmlType,
		".json": jsonType,
		".map":  jsonType,
		".svg":  svgType,
	}

	jsonRegexp = regexp.MustCompile(`[/+]json$`)
)

// An Engine minifies with tdewolff/minify. It never produces source maps.
type Engine struct {
	mediaType string
	mini      *minify.M
	keepNames *minify.M
}

// New creates a new Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		mini:      newMinifier(false),
		keepNames: newMinifier(true),
	}

	for _, opt := range opts {
		opt.applyTo(e)
	}

	return e
}

func newMinifier(keepVarNames bool) *minify.M {
	m := minify.New()
	m.AddFunc(cssType, css.Minify)
	m.AddFunc(htmlType, html.Minify)
	m.Add(jsType, &js.Minifier{KeepVarNames: keepVarNames})
	m.AddFuncRegexp(jsonRegexp, json.Minify)
	m.AddFunc(svgType, svg.Minify)

	return m
}

func (e *Engine) mediaTypeOf(opts *uglify.EngineOptions) (string, error) {
	if mt := opts.Raw.String("mediaType"); mt != "" {
		return mt, nil
	}

	if e.mediaType != "" {
		return e.mediaType, nil
	}

	name := opts.File
	if name == "" {
		name = opts.OutSourceMap
	}

	if name == "" {
		return jsType, nil
	}

	mt, ok := exts[strings.ToLower(path.Ext(name))]
	if !ok {
		return "", fmt.Errorf("no minifier for %q", name)
	}

	return mt, nil
}

// Minify implements uglify.Engine
func (e *Engine) Minify(src string, opts *uglify.EngineOptions) (*uglify.Result, error) {
	mt, err := e.mediaTypeOf(opts)
	if err != nil {
		return nil, err
	}

	m := e.mini
	if opts.Raw.Bool("keepVarNames") || opts.Raw["mangle"] == false {
		m = e.keepNames
	}

	code, err := m.String(mt, src)
	if err != nil {
		return nil, syntaxError(opts.File, err)
	}

	if opts.Comments != nil && mt == jsType {
		code, err = keepComments(opts.File, src, code, opts.Comments)
		if err != nil {
			return nil, syntaxError(opts.File, err)
		}
	}

	return &uglify.Result{Code: code}, nil
}

func syntaxError(file string, err error) error {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &uglify.SyntaxError{
			Msg:    perr.Message,
			File:   file,
			Line:   perr.Line,
			Column: perr.Column,
		}
	}

	return err
}
