package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/thatguystone/cog/check"
	"github.com/thatguystone/uglify"
)

type testLog struct {
	lines []string
}

func (tl *testLog) logf(format string, a ...interface{}) {
	tl.lines = append(tl.lines, fmt.Sprintf(format, a...))
}

func TestLogger(t *testing.T) {
	c := check.New(t)

	tl := new(testLog)
	l := NewLogger("build", tl.logf)

	l.Log("starting")
	l.Error(errors.New("bad"), "failed")

	c.Equal(tl.lines, []string{
		"I: build: starting",
		"E: build: failed: bad",
	})
}

func TestLoggerWarning(t *testing.T) {
	c := check.New(t)

	tl := new(testLog)
	l := NewLogger("build", tl.logf)

	Warning(l, uglify.Warning{
		Message: "Failed to minify file.",
		Path:    "js/app.js",
		Err:     errors.New("unexpected token"),
	})
	Warning(l, "odd")

	c.Equal(tl.lines, []string{
		"E: build: js/app.js: Failed to minify file.: unexpected token",
		"I: build: warning: odd",
	})
}
