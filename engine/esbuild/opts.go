package esbuild

import "github.com/evanw/esbuild/pkg/api"

// An Option is passed to New() to change default options
type Option interface {
	applyTo(e *Engine)
}

type option func(e *Engine)

func (o option) applyTo(e *Engine) { o(e) }

// Target sets the language version to output
func Target(t api.Target) Option {
	return option(func(e *Engine) {
		e.target = t
	})
}
