package uglify

// A Logger is used for all uglify logging
type Logger interface {
	Log(msg string)
	Error(err error, msg string)
}
