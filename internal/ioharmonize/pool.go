// Package ioharmonize drives the taxonomy harmoniser (C4) against a real
// NameResolver and the record store: it builds query objects from
// review-pending lineages, fans them out across a bounded worker pool with
// retry, and applies the resolved outcomes back to the store in batches.
// This is an impure I/O package that implements contracts defined in pkg/.
package ioharmonize

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/harmonize"
	"github.com/boldcurate/eyebold/pkg/retry"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Options configures one harmonisation pass.
type Options struct {
	Workers    int
	Retries    int
	RetryDelay int // seconds
}

type resolved struct {
	query   harmonize.Query
	outcome harmonize.Outcome
}

// Run resolves every review-pending lineage against resolver and applies
// the outcomes to st. Workers are cooperative: on ctx cancellation,
// in-flight requests complete but no further queries are dequeued.
func Run(ctx context.Context, st store.Store, resolver harmonize.NameResolver, opts Options) error {
	rows, err := st.ReviewLineages(ctx)
	if err != nil {
		return err
	}
	queries := harmonize.BuildQueries(rows)
	if len(queries) == 0 {
		return nil
	}

	bar := pb.Full.Start(len(queries))
	bar.Set("prefix", "Harmonizing lineages: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	chIn := make(chan harmonize.Query)
	chOut := make(chan resolved)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, q := range queries {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- q:
			}
		}
		return nil
	})

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return worker(gCtx, chIn, chOut, resolver, opts)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	var mu sync.Mutex
	checksUpdates := map[int64]bits.Checks{}
	taxonKeyUpdates := map[int64]int64{}
	rankUpdates := map[int64]string{}
	processingInfoUpdates := map[int64]string{}

	g.Go(func() error {
		for r := range chOut {
			mu.Lock()
			for _, id := range r.query.SpecimenIDs {
				checksUpdates[id] = r.outcome.SetBits
				if r.outcome.HasTaxonKey {
					taxonKeyUpdates[id] = r.outcome.TaxonKey
				}
				if r.outcome.IdentificationRank != "" {
					rankUpdates[id] = r.outcome.IdentificationRank
				}
				if r.outcome.ProcessingInfo != "" {
					processingInfoUpdates[id] = r.outcome.ProcessingInfo
				}
			}
			mu.Unlock()
			bar.Increment()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := st.OrChecks(ctx, checksUpdates); err != nil {
		return err
	}
	if err := st.UpdateTaxonKey(ctx, taxonKeyUpdates); err != nil {
		return err
	}
	if err := st.UpdateIdentificationRank(ctx, rankUpdates); err != nil {
		return err
	}
	if err := st.UpdateProcessingInfo(ctx, processingInfoUpdates); err != nil {
		return err
	}

	slog.Info("harmonize pass complete",
		"queries", humanize.Comma(int64(len(queries))),
		"resolved", humanize.Comma(int64(len(taxonKeyUpdates))))
	return nil
}

func worker(ctx context.Context, in <-chan harmonize.Query, out chan<- resolved, resolver harmonize.NameResolver, opts Options) error {
	for q := range in {
		var resp harmonize.Response
		err := retry.Do(ctx, opts.Retries, retryDelay(opts), func() error {
			r, err := resolver.Resolve(ctx, q)
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if err != nil {
			slog.Warn("harmonize query exhausted retries", "query", q.QueryString, "rank", q.Rank.String(), "error", err)
			continue
		}

		outcome := harmonize.HandleResponse(q, resp)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- resolved{query: q, outcome: outcome}:
		}
	}
	return nil
}
