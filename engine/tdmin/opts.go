package tdmin

// An Option is passed to New() to change default options
type Option interface {
	applyTo(e *Engine)
}

type option func(e *Engine)

func (o option) applyTo(e *Engine) { o(e) }

// MediaType forces every file to be minified as the given media type (eg.
// "text/css"), regardless of its extension
func MediaType(mt string) Option {
	return option(func(e *Engine) {
		e.mediaType = mt
	})
}
