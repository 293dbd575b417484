package uglify

import (
	"regexp"
	"sync"
)

// A Comment is a single comment found by an Engine
type Comment struct {
	File  string // File the comment is in
	Value string // Text, without delimiters
	Line  int    // 1-based line the comment starts on
	Block bool   // If this is a /* */ comment
}

// A CommentPolicy decides which comments survive minification
type CommentPolicy interface {
	Keep(c Comment) bool
}

// CommentFunc is a CommentPolicy that is just a func
type CommentFunc func(c Comment) bool

// Keep implements CommentPolicy
func (fn CommentFunc) Keep(c Comment) bool { return fn(c) }

var (
	someRegexp    = regexp.MustCompile(`(?i)^!|@preserve|@license|@cc_on`)
	licenseRegexp = regexp.MustCompile(
		`(?im)^!|^@preserve|^@cc_on|\bMIT\b|\bMPL\b|\bGPL\b|\(c\)|License|Copyright`)

	// KeepAll keeps every comment
	KeepAll CommentPolicy = CommentFunc(func(Comment) bool {
		return true
	})

	// SomeComments keeps comments that start with a bang or carry a
	// @preserve, @license, or @cc_on directive
	SomeComments CommentPolicy = CommentFunc(func(c Comment) bool {
		return someRegexp.MatchString(c.Value)
	})
)

type licenseComments struct {
	mtx      sync.Mutex
	prevLine int
	prevFile string
}

// NewLicenseComments creates a policy that keeps license banners: comments
// that look like a license, that are on the first line, or that directly
// follow another kept comment.
func NewLicenseComments() CommentPolicy {
	return new(licenseComments)
}

func (l *licenseComments) Keep(c Comment) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if c.File != l.prevFile {
		l.prevLine = 0
	}

	keep := licenseRegexp.MatchString(c.Value) ||
		c.Line == 1 ||
		c.Line == l.prevLine+1

	if keep {
		l.prevLine = c.Line
	} else {
		l.prevLine = 0
	}

	l.prevFile = c.File

	return keep
}

// resolveComments translates a "preserveComments" value. mark is what ends up
// in output.comments.
func resolveComments(v interface{}) (policy CommentPolicy, mark interface{}) {
	switch p := v.(type) {
	case string:
		switch p {
		case "all":
			return KeepAll, true

		case "some":
			return SomeComments, SomeComments

		case "license":
			l := NewLicenseComments()
			return l, l
		}

	case CommentPolicy:
		return p, p

	case func(Comment) bool:
		return CommentFunc(p), CommentFunc(p)
	}

	return nil, nil
}
