// Package stream implements ordered, one-file-at-a-time transform streams
package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/thatguystone/uglify/vfile"
)

// EventWarning is emitted for recoverable, per-file problems
const EventWarning = "warning"

// A Transform handles a single file. It must call done exactly once, either
// with the (possibly replaced) file or with an error. Calling done with a nil
// file and nil error drops the file.
type Transform func(s *Stream, f *vfile.File, done Done)

// Done completes a Transform
type Done func(f *vfile.File, err error)

// A Listener receives emitted events
type Listener func(v interface{})

// A Stream runs a Transform over files, one at a time, preserving order
type Stream struct {
	name string
	fn   Transform

	mtx       sync.Mutex
	listeners map[string][]Listener
}

// New creates a new Stream
func New(fn Transform, opts ...Option) *Stream {
	s := &Stream{
		name:      "stream",
		fn:        fn,
		listeners: make(map[string][]Listener),
	}

	for _, opt := range opts {
		opt.applyTo(s)
	}

	return s
}

// Name gets the stream's name
func (s *Stream) Name() string {
	return s.name
}

// On registers a listener for the given event
func (s *Stream) On(event string, l Listener) {
	s.mtx.Lock()
	s.listeners[event] = append(s.listeners[event], l)
	s.mtx.Unlock()
}

// Emit sends v to every listener of event, in registration order
func (s *Stream) Emit(event string, v interface{}) {
	s.mtx.Lock()
	ls := append([]Listener(nil), s.listeners[event]...)
	s.mtx.Unlock()

	for _, l := range ls {
		l(v)
	}
}

type result struct {
	f   *vfile.File
	err error
}

func (s *Stream) start(f *vfile.File) <-chan result {
	ch := make(chan result, 1)
	called := false

	var mtx sync.Mutex
	done := func(f *vfile.File, err error) {
		mtx.Lock()
		defer mtx.Unlock()

		if called {
			panic(fmt.Errorf("%s: done called multiple times", s.name))
		}

		called = true
		ch <- result{f: f, err: err}
	}

	s.fn(s, f, done)

	return ch
}

// Process runs a single file through the stream, waiting for it to finish
func (s *Stream) Process(f *vfile.File) (*vfile.File, error) {
	res := <-s.start(f)
	return res.f, res.err
}

func (s *Stream) process(ctx context.Context, f *vfile.File) (*vfile.File, error) {
	select {
	case res := <-s.start(f):
		return res.f, res.err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes files from in until it is closed, the context is canceled, or a
// file fails. Only one file is ever in flight. The output channel is closed
// when the run ends; the error channel receives at most one error.
func (s *Stream) Run(
	ctx context.Context,
	in <-chan *vfile.File) (<-chan *vfile.File, <-chan error) {

	out := make(chan *vfile.File)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		err := s.run(ctx, in, out)
		if err != nil {
			errc <- err
		}
	}()

	return out, errc
}

func (s *Stream) run(
	ctx context.Context,
	in <-chan *vfile.File,
	out chan<- *vfile.File) error {

	for {
		var f *vfile.File
		var ok bool

		select {
		case f, ok = <-in:
			if !ok {
				return nil
			}

		case <-ctx.Done():
			return ctx.Err()
		}

		f, err := s.process(ctx, f)
		if err != nil {
			return err
		}

		if f == nil {
			continue
		}

		select {
		case out <- f:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
