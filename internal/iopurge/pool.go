// Package iopurge drives the duplicate-purge engine (C5) against the
// record store: it fetches each taxon group's sequences, selects the
// trivial/small/hard regime by group size, dispatches groups across a
// bounded worker pool largest-first, and writes nuc_san/checks updates
// back in one batch.
package iopurge

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/purge"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Options configures one purge pass.
type Options struct {
	Workers    int
	Thresholds purge.Thresholds
	Sweep      purge.SweepPlan
}

// Run purges every taxon group currently present in the store.
func Run(ctx context.Context, st store.Store, opts Options) error {
	keys, err := st.DistinctTaxonKeys(ctx)
	if err != nil {
		return err
	}
	return RunKeys(ctx, st, keys, opts)
}

// RunKeys purges only the given taxon keys — used by the curate
// orchestrator's update-mode path, which scopes purge to the taxa
// touched by new or changed records rather than the whole store.
func RunKeys(ctx context.Context, st store.Store, keys []int64, opts Options) error {
	if len(keys) == 0 {
		return nil
	}

	type group struct {
		taxonKey  int64
		sequences []store.SequenceRow
	}
	groups := make([]group, 0, len(keys))
	for _, k := range keys {
		seqs, err := st.SequencesByTaxonKey(ctx, k)
		if err != nil {
			return FetchGroupError(k, err)
		}
		groups = append(groups, group{taxonKey: k, sequences: seqs})
	}

	// Largest-first scheduling: groups of similar size finish around the
	// same time, so no single worker stalls the pool near the end.
	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i].sequences) > len(groups[j].sequences) })

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	bar := pb.Full.Start(len(groups))
	bar.Set("prefix", "Purging duplicate groups: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	nucSanUpdates := map[int64]string{}
	checksUpdates := map[int64]bits.Checks{}

	for _, grp := range groups {
		grp := grp
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			specimens := make([]purge.Specimen, len(grp.sequences))
			for i, s := range grp.sequences {
				specimens[i] = purge.Specimen{SpecimenID: s.SpecimenID, NucRaw: s.NucRaw}
			}

			var outcomes []purge.Outcome
			switch purge.SelectRegime(len(specimens), opts.Thresholds) {
			case purge.Trivial, purge.Small:
				outcomes = purge.MarkDuplicates(specimens)
			default:
				outcomes = purge.HardSweep(specimens, opts.Sweep)
			}

			mu.Lock()
			for _, o := range outcomes {
				nucSanUpdates[o.SpecimenID] = o.NucSan
				checksUpdates[o.SpecimenID] = o.SetBits
			}
			mu.Unlock()
			bar.Increment()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := st.UpdateNucSan(ctx, nucSanUpdates); err != nil {
		return err
	}
	if err := st.OrChecks(ctx, checksUpdates); err != nil {
		return err
	}

	slog.Info("purge pass complete",
		"groups", humanize.Comma(int64(len(groups))),
		"specimens_updated", humanize.Comma(int64(len(nucSanUpdates))))
	return nil
}
