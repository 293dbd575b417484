package uglify

import (
	"fmt"
	"runtime/debug"

	"github.com/thatguystone/cog/stringc"
	"github.com/thatguystone/uglify/vfile"
)

const errIndent = "    "

// A PluginError is returned for every file that fails hard
type PluginError struct {
	Plugin     string // Always PluginName
	FileName   string // Path of the file that failed
	Message    string // "<path>: <what went wrong>"
	LineNumber int    // Line the error is on; 0 if unknown
	Stack      string // Stack trace, if there is one
	ShowStack  bool   // If Error() includes Stack
	Err        error  // Underlying error, if any
}

func (err *PluginError) Error() string {
	msg := fmt.Sprintf("%s: %s", err.Plugin, err.Message)
	if err.ShowStack && err.Stack != "" {
		msg += "\n" + stringc.Indent(err.Stack, errIndent)
	}

	return msg
}

func (err *PluginError) Unwrap() error {
	return err.Err
}

func newStringError(f *vfile.File, msg string) *PluginError {
	return &PluginError{
		Plugin:    PluginName,
		FileName:  f.Path,
		Message:   fmt.Sprintf("%s: %s", f.Path, msg),
		ShowStack: false,
	}
}

func newError(f *vfile.File, err error) *PluginError {
	msg := err.Error()
	if msg == "" {
		msg = "unspecified error"
	}

	perr := &PluginError{
		Plugin:    PluginName,
		FileName:  f.Path,
		Message:   fmt.Sprintf("%s: %s", f.Path, msg),
		ShowStack: false,
		Err:       err,
	}

	if le, ok := err.(interface{ LineNumber() int }); ok {
		perr.LineNumber = le.LineNumber()
	}

	if se, ok := err.(interface{ Stack() string }); ok {
		perr.Stack = se.Stack()
	}

	return perr
}

// panicError is a recovered panic
type panicError struct {
	v     interface{}
	stack string
}

func newPanicError(v interface{}) *panicError {
	return &panicError{
		v:     v,
		stack: string(debug.Stack()),
	}
}

func (err *panicError) Error() string {
	return fmt.Sprintf("panic: %v", err.v)
}

func (err *panicError) Stack() string {
	return err.stack
}

func (err *panicError) Unwrap() error {
	e, _ := err.v.(error)
	return e
}

// A Warning is emitted on the stream when the engine fails on a file and the
// file is passed through untouched
type Warning struct {
	Message string // Always "Failed to minify file."
	Path    string // Path of the file
	Err     error  // What the engine returned
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %v", w.Path, w.Message, w.Err)
}
