package search

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pruner drops cached entries of documents that no longer exist.
type Pruner interface {
	Prune(ctx context.Context, keep []string) (int, error)
}

// IndexStats summarizes an Index run.
type IndexStats struct {
	Documents int // Documents found in the store.
	Failed    int // Documents whose text could not be extracted.
	Pruned    int // Stale cache entries removed.
}

// Index extracts every stored document into the cache ahead of searches
// and prunes entries for documents that were removed.
func (e *Engine) Index(ctx context.Context) (IndexStats, error) {
	names, err := e.store.List()
	if err != nil {
		return IndexStats{}, err
	}

	stats := IndexStats{Documents: len(names)}
	e.log.Infof("Indexing %d documents in %d goroutines", len(names), e.concurrency)

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.log.Debugf("(%d/%d) Processing: %s", i+1, len(names), name)

			if _, err := e.Text(gctx, name); err != nil {
				failed.Add(1)
				e.log.WithError(err).WithField("document", name).Warn("unable to process document")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	stats.Failed = int(failed.Load())

	if p, ok := e.cache.(Pruner); ok {
		pruned, err := p.Prune(ctx, names)
		if err != nil {
			return stats, err
		}
		stats.Pruned = pruned
	}
	return stats, nil
}
