package agent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source is one compilation unit: a named file, its AIR text, and the
// Options governing its run (each must carry a distinct OutputDir).
type Source struct {
	File    string
	Content string
	Options Options
}

// RunMany runs the agent loop over every Source concurrently (spec.md §5:
// "Multiple source files may be compiled in parallel by running the
// pipeline concurrently on disjoint outputs"). The incremental cache is
// the only resource shared per output directory, and each Source is
// expected to own a distinct OutputDir; RunMany does not deduplicate or
// serialize overlapping output directories itself.
//
// Results are returned in the same order as sources. ctx cancellation
// stops launching new runs but does not interrupt one already started,
// since no stage within Run polls for cancellation (spec.md §5).
func RunMany(ctx context.Context, sources []Source) ([]*LoopResult, error) {
	results := make([]*LoopResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Run(src.File, src.Content, src.Options)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
