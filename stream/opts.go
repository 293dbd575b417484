package stream

// An Option is passed to New() to change default options
type Option interface {
	applyTo(s *Stream)
}

type option func(s *Stream)

func (o option) applyTo(s *Stream) { o(s) }

// Name sets the stream's name, used in panics and errors
func Name(name string) Option {
	return option(func(s *Stream) {
		s.name = name
	})
}
