package uglify

// An Option is passed to New() to change default options
type Option interface {
	applyTo(a *adapter)
}

type option func(a *adapter)

func (o option) applyTo(a *adapter) { o(a) }

// LogTo sets the log function
func LogTo(cb func(string, ...interface{})) Option {
	return option(func(a *adapter) {
		a.logf = cb
	})
}

// Overrides layers opts on top of the caller's options for every file
func Overrides(opts Options) Option {
	return option(func(a *adapter) {
		a.overrides = opts
	})
}
