package uglify

import "fmt"

// An Engine does the actual minification
type Engine interface {
	// Minify minifies src. Errors may implement
	// `interface{ LineNumber() int }` to report where things went wrong.
	Minify(src string, opts *EngineOptions) (*Result, error)
}

// EngineFunc is an Engine that is just a func
type EngineFunc func(src string, opts *EngineOptions) (*Result, error)

// Minify implements Engine
func (fn EngineFunc) Minify(src string, opts *EngineOptions) (*Result, error) {
	return fn(src, opts)
}

// A Result is what an Engine produces
type Result struct {
	Code string // Minified code
	Map  string // Source map JSON; "" if none
}

// A SyntaxError is returned by engines that can't parse their input
type SyntaxError struct {
	Msg    string
	File   string
	Line   int // 1-based; 0 if unknown
	Column int // 0-based
}

func (err *SyntaxError) Error() string {
	if err.Line == 0 {
		return err.Msg
	}

	return fmt.Sprintf("%s:%d:%d: %s", err.File, err.Line, err.Column, err.Msg)
}

// LineNumber gets the line the error is on
func (err *SyntaxError) LineNumber() int {
	return err.Line
}
