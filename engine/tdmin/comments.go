package tdmin

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"github.com/thatguystone/uglify"
)

// Keywords after which a '/' starts a regular expression
var regexpKeywords = map[string]bool{
	"await":      true,
	"case":       true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"return":     true,
	"throw":      true,
	"typeof":     true,
	"void":       true,
	"yield":      true,
}

type comment struct {
	uglify.Comment
	raw string
}

// lexComments finds every comment in src, in source order
func lexComments(file, src string) ([]comment, error) {
	var comments []comment
	var prev []byte

	l := js.NewLexer(parse.NewInputString(src))
	line := 1

	for {
		tt, data := l.Next()
		if tt == js.ErrorToken {
			err := l.Err()
			if errors.Is(err, io.EOF) {
				return comments, nil
			}

			return nil, err
		}

		text := string(data)
		if (text == "/" || text == "/=") && startsRegexp(prev) {
			_, data = l.RegExp()
			text = string(data)
		}

		switch {
		case strings.HasPrefix(text, "//"):
			comments = append(comments, comment{
				Comment: uglify.Comment{
					File:  file,
					Value: text[2:],
					Line:  line,
				},
				raw: text,
			})

		case strings.HasPrefix(text, "/*"):
			comments = append(comments, comment{
				Comment: uglify.Comment{
					File:  file,
					Value: strings.TrimSuffix(text[2:], "*/"),
					Line:  line,
					Block: true,
				},
				raw: text,
			})

		case strings.TrimSpace(text) != "":
			prev = data
		}

		line += strings.Count(text, "\n")
	}
}

func startsRegexp(prev []byte) bool {
	if len(prev) == 0 {
		return true
	}

	if regexpKeywords[string(prev)] {
		return true
	}

	last := prev[len(prev)-1]
	switch {
	case last == ')' || last == ']' || last == '}':
		return false
	case last == '"' || last == '\'' || last == '`':
		return false
	case last == '_' || last == '$':
		return false
	case last >= '0' && last <= '9':
		return false
	case last >= 'a' && last <= 'z', last >= 'A' && last <= 'Z':
		return false
	case last >= 0x80:
		return false
	}

	return true
}

// keepComments puts the comments that policy keeps ahead of the minified code.
// The JS minifier only ever keeps "/*!" banners, so those are the only ones
// checked for in code.
func keepComments(
	file, src, code string,
	policy uglify.CommentPolicy) (string, error) {

	comments, err := lexComments(file, src)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	for _, c := range comments {
		if !policy.Keep(c.Comment) || minifierKept(code, c.raw) {
			continue
		}

		b.WriteString(c.raw)
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		return code, nil
	}

	b.WriteString(code)
	return b.String(), nil
}

func minifierKept(code, raw string) bool {
	return strings.HasPrefix(raw, "/*!") && strings.Contains(code, raw)
}
