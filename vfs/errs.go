package vfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thatguystone/cog/stringc"
)

// ErrIndent is used to indent nested errors
const ErrIndent = "    "

// Errors collects errors by the path they happened on
type Errors map[string][]error

func (errs Errors) add(path string, err error) {
	errs[path] = append(errs[path], err)
}

func (errs Errors) getError() error {
	if len(errs) == 0 {
		return nil
	}

	return errs
}

func (errs Errors) Error() string {
	var paths []string
	for path := range errs {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("the following paths have errors:\n")

	for _, path := range paths {
		fmt.Fprintf(&b, ErrIndent+"%q\n", path)

		for _, err := range errs[path] {
			b.WriteString(stringc.Indent(err.Error(), ErrIndent+ErrIndent))
			b.WriteString("\n")
		}
	}

	return b.String()
}
