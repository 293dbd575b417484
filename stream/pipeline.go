package stream

import (
	"context"

	"github.com/thatguystone/uglify/vfile"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs src through each stage in turn. The first error from any stage
// stops the whole pipeline.
func Pipeline(
	ctx context.Context,
	src []*vfile.File,
	stages ...*Stream) ([]*vfile.File, error) {

	g, ctx := errgroup.WithContext(ctx)

	in := make(chan *vfile.File)
	g.Go(func() error {
		defer close(in)

		for _, f := range src {
			select {
			case in <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	var prev <-chan *vfile.File = in
	for _, st := range stages {
		st := st
		stageIn := prev
		out := make(chan *vfile.File)

		g.Go(func() error {
			defer close(out)
			return st.run(ctx, stageIn, out)
		})

		prev = out
	}

	var files []*vfile.File
	g.Go(func() error {
		for f := range prev {
			files = append(files, f)
		}

		return nil
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Collect drains the channels returned by Run
func Collect(out <-chan *vfile.File, errc <-chan error) ([]*vfile.File, error) {
	var files []*vfile.File
	for f := range out {
		files = append(files, f)
	}

	return files, <-errc
}
