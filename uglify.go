// Package uglify plugs a minification Engine into a file stream.
//
// Every file that enters the stream either comes out with minified (or, when
// the engine fails, untouched) contents, or the stream fails with exactly one
// *PluginError.
package uglify

import (
	"errors"
	"log"
	"regexp"

	"github.com/thatguystone/uglify/sourcemap"
	"github.com/thatguystone/uglify/stream"
	"github.com/thatguystone/uglify/vfile"
)

// PluginName is used in errors and log messages
const PluginName = "uglify"

var errNoResult = errors.New("engine returned no result")

var reSourceMapComment = regexp.MustCompile(`\n//# sourceMappingURL=.+$`)

type adapter struct {
	opts      interface{}
	overrides Options
	eng       Engine
	logf      func(string, ...interface{})
}

// New creates a stream that runs every file through eng. opts may be nil; if
// it isn't an options record, it is logged and ignored.
func New(opts interface{}, eng Engine, options ...Option) *stream.Stream {
	a := &adapter{
		opts: opts,
		eng:  eng,
		logf: log.Printf,
	}

	for _, opt := range options {
		opt.applyTo(a)
	}

	return stream.New(a.transform, stream.Name(PluginName))
}

func (a *adapter) setup() (*EngineOptions, error) {
	caller, err := ParseOptions(a.opts)
	if err != nil {
		a.logf("%s expects an object, non-object provided", PluginName)
		caller = Options{}
	}

	return resolve(Merge(defaultOptions(), caller, a.overrides))
}

func (a *adapter) transform(s *stream.Stream, f *vfile.File, done stream.Done) {
	opts, err := a.setup()
	if err != nil {
		done(nil, newError(f, err))
		return
	}

	if f.IsNull() {
		done(f, nil)
		return
	}

	if f.IsStream() {
		done(nil, newStringError(f, "Streaming not supported"))
		return
	}

	opts.File = f.Relative()
	if f.SourceMap != nil {
		opts.setOutSourceMap(opts.File)
	}

	out := a.invoke(f, opts)
	switch out.kind {
	case fatal:
		done(nil, out.err)
		return

	case recovered:
		s.Emit(stream.EventWarning, Warning{
			Message: "Failed to minify file.",
			Path:    f.Path,
			Err:     out.err,
		})
	}

	f.SetContents([]byte(out.code))

	if f.SourceMap != nil && out.sourceMap != "" {
		err := applyMap(f, out.sourceMap)
		if err != nil {
			done(nil, newError(f, err))
			return
		}
	}

	done(f, nil)
}

type outcomeKind int

const (
	minified outcomeKind = iota
	recovered
	fatal
)

type outcome struct {
	kind      outcomeKind
	code      string
	sourceMap string
	err       error
}

// invoke runs the engine. Engine failures are recovered with the original
// contents; anything else that goes wrong is fatal.
func (a *adapter) invoke(f *vfile.File, opts *EngineOptions) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{
				kind: fatal,
				err:  newError(f, newPanicError(r)),
			}
		}
	}()

	src := string(f.Contents)

	res, err := a.minify(src, opts)
	if err != nil {
		return outcome{
			kind: recovered,
			code: src,
			err:  err,
		}
	}

	if res == nil {
		return outcome{
			kind: recovered,
			code: src,
			err:  errNoResult,
		}
	}

	return outcome{
		kind:      minified,
		code:      reSourceMapComment.ReplaceAllString(res.Code, ""),
		sourceMap: res.Map,
	}
}

func (a *adapter) minify(src string, opts *EngineOptions) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = newPanicError(r)
		}
	}()

	return a.eng.Minify(src, opts)
}

func applyMap(f *vfile.File, raw string) error {
	m, err := sourcemap.ParseString(raw)
	if err != nil {
		return err
	}

	m.Sources = []string{f.Relative()}

	return f.ApplySourceMap(m)
}
