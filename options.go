package uglify

import (
	"errors"
	"fmt"
)

// ErrOptionsNotObject is returned by ParseOptions for values that aren't
// key/value records
var ErrOptionsNotObject = errors.New("options must be an object")

// Options is a record of minifier options. Besides "preserveComments" and
// "output", every field is passed through to the Engine untouched.
type Options map[string]interface{}

func defaultOptions() Options {
	return Options{
		"fromString": true,
		"output":     Options{},
	}
}

// ParseOptions validates a caller-supplied options value. nil is empty
// options; Options, map[string]interface{}, and YAML-style
// map[interface{}]interface{} are accepted (nested maps included); anything
// else is ErrOptionsNotObject.
func ParseOptions(v interface{}) (Options, error) {
	switch o := v.(type) {
	case nil:
		return Options{}, nil

	case Options, map[string]interface{}, map[interface{}]interface{}:
		opts, _ := asOptions(normalize(o))
		return opts, nil
	}

	return nil, fmt.Errorf("%w: got %T", ErrOptionsNotObject, v)
}

func normalize(v interface{}) interface{} {
	switch o := v.(type) {
	case Options:
		out := make(Options, len(o))
		for k, v := range o {
			out[k] = normalize(v)
		}
		return out

	case map[string]interface{}:
		return normalize(Options(o))

	case map[interface{}]interface{}:
		out := make(Options, len(o))
		for k, v := range o {
			out[fmt.Sprint(k)] = normalize(v)
		}
		return out

	case []interface{}:
		out := make([]interface{}, len(o))
		for i, v := range o {
			out[i] = normalize(v)
		}
		return out
	}

	return v
}

func asOptions(v interface{}) (Options, bool) {
	switch o := v.(type) {
	case Options:
		return o, true
	case map[string]interface{}:
		return Options(o), true
	}

	return nil, false
}

// Merge deep-merges layers, left to right, into a fresh Options. Later layers
// win for scalars; nested records merge recursively. No layer is modified.
func Merge(layers ...Options) Options {
	out := Options{}
	for _, layer := range layers {
		mergeInto(out, layer)
	}

	return out
}

func mergeInto(dst, src Options) {
	for k, v := range src {
		sub, ok := asOptions(v)
		if !ok {
			dst[k] = clone(v)
			continue
		}

		into, ok := dst[k].(Options)
		if !ok {
			into = Options{}
			dst[k] = into
		}

		mergeInto(into, sub)
	}
}

// clone copies lists so that merged records never share them with a layer
func clone(v interface{}) interface{} {
	switch o := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(o))
		for i, v := range o {
			out[i] = clone(v)
		}
		return out

	case Options, map[string]interface{}:
		sub, _ := asOptions(o)
		out := Options{}
		mergeInto(out, sub)
		return out
	}

	return v
}

// Bool gets a bool field, false if missing or not a bool
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// String gets a string field, "" if missing or not a string
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Sub gets a nested record, nil if missing or not a record
func (o Options) Sub(key string) Options {
	sub, _ := asOptions(o[key])
	return sub
}

// EngineOptions are the resolved options handed to an Engine for a single
// file
type EngineOptions struct {
	File         string        // File's path, relative to its base
	FromString   bool          // Contents are passed as source text
	OutSourceMap string        // Name of the map to generate; "" for none
	Comments     CommentPolicy // Which comments to keep; nil for the engine's default
	Raw          Options       // Every merged option, for engine-specific fields
}

func resolve(merged Options) (*EngineOptions, error) {
	eo := &EngineOptions{
		FromString: merged.Bool("fromString"),
		Raw:        merged,
	}

	policy, mark := resolveComments(merged["preserveComments"])
	if policy == nil {
		return eo, nil
	}

	out, ok := merged["output"].(Options)
	if !ok {
		return nil, fmt.Errorf(
			"output options must be an object, got %T", merged["output"])
	}

	out["comments"] = mark
	eo.Comments = policy

	return eo, nil
}

func (eo *EngineOptions) setOutSourceMap(name string) {
	eo.OutSourceMap = name
	eo.Raw["outSourceMap"] = name
}
