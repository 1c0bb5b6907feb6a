package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/achilleasa/wavefront/asset/wavefront"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// Load one or more geometry files concurrently and display mesh info.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing geometry file(s)")
	}

	opts, err := loadOptions(ctx)
	if err != nil {
		return err
	}

	results, err := loadAll(context.Background(), ctx.Args(), opts)
	if err != nil {
		return err
	}

	for idx, res := range results {
		printResult(ctx.App.Writer, ctx.Args().Get(idx), res)
	}
	return nil
}

// Load files in parallel. The first failure cancels the remaining loads.
func loadAll(ctx context.Context, paths []string, opts wavefront.LoadOptions) ([]*wavefront.Result, error) {
	results := make([]*wavefront.Result, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		idx, path := idx, path
		group.Go(func() error {
			res, err := wavefront.LoadContext(groupCtx, path, opts)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Display mesh info and any warnings for a loaded file.
func printResult(w io.Writer, path string, res *wavefront.Result) {
	fmt.Fprintf(w, "%s\n%s", path, res.Stats())
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, warning.String())
	}
}
