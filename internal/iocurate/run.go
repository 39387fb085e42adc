// Package iocurate composes the harmoniser, purge engine, hybrid marker,
// and classifier bridge into the curation pass (C9): every build or
// update invocation drives the same seven-step sequence over the record
// store, differing only in how the purge stage scopes its taxon groups.
package iocurate

import (
	"context"

	"github.com/boldcurate/eyebold/internal/ioclassify"
	"github.com/boldcurate/eyebold/internal/iohybrid"
	"github.com/boldcurate/eyebold/internal/ioharmonize"
	"github.com/boldcurate/eyebold/internal/iopurge"
	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/harmonize"
	"github.com/boldcurate/eyebold/pkg/ingest"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Options bundles the per-stage tuning for one curation pass.
type Options struct {
	Harmonize ioharmonize.Options
	Purge     iopurge.Options
	Classify  ioclassify.Options
}

// Run drives a build-mode curation pass: every taxon group in the store
// is in scope for purge, and every review-pending record is in scope for
// harmonisation.
func Run(ctx context.Context, st store.Store, resolver harmonize.NameResolver, opts Options) error {
	return sequence(ctx, st, resolver, opts, nil)
}

// RunUpdate drives an update-mode curation pass, scoped to the taxon
// groups touched by result's new and changed records. Before
// re-harmonising, it clears every non-location bit on the changed
// records so their re-evaluation starts clean (§update_clear_mask).
func RunUpdate(ctx context.Context, st store.Store, resolver harmonize.NameResolver, result ingest.Result, opts Options) error {
	var changedIDs []int64
	for _, pair := range result.ChangedPairs {
		changedIDs = append(changedIDs, pair.SpecimenID)
	}
	if len(changedIDs) > 0 {
		if err := st.ClearChecks(ctx, changedIDs, bits.UpdateClearMask()); err != nil {
			return err
		}
	}

	return sequence(ctx, st, resolver, opts, &result)
}

// sequence runs the seven curation steps. result is nil for a build-mode
// pass (purge scans every taxon group); otherwise purge is scoped to the
// taxon groups old and new records touched.
func sequence(ctx context.Context, st store.Store, resolver harmonize.NameResolver, opts Options, result *ingest.Result) error {
	// Step 1: harmonise every review-pending lineage, ranks deepest-first.
	if err := ioharmonize.Run(ctx, st, resolver, opts.Harmonize); err != nil {
		return err
	}

	// Step 2: purge duplicates within each affected taxon group.
	if result == nil {
		if err := iopurge.Run(ctx, st, opts.Purge); err != nil {
			return err
		}
	} else {
		keys, err := affectedTaxonKeys(ctx, st, *result)
		if err != nil {
			return err
		}
		if err := iopurge.RunKeys(ctx, st, keys, opts.Purge); err != nil {
			return err
		}
	}

	// Step 3: mark hybrid species.
	if err := iohybrid.Run(ctx, st); err != nil {
		return err
	}

	// Step 4: select records satisfying the golden predicate.
	if err := markSelected(ctx, st); err != nil {
		return err
	}

	// Step 5: classify the selected-and-pending-review set.
	if err := ioclassify.Run(ctx, st, opts.Classify); err != nil {
		return err
	}

	// Step 6: records whose name is resolved need no further review.
	if err := clearReviewForNameChecked(ctx, st); err != nil {
		return err
	}

	// Step 7: selected records are now part of the exported dataset.
	return includeSelected(ctx, st)
}

// affectedTaxonKeys collects the taxon groups touched by an update-mode
// ingest: the old taxon_key of every changed record (so the group it is
// leaving gets re-purged) plus the taxon_key every new or changed record
// resolved to after harmonisation.
func affectedTaxonKeys(ctx context.Context, st store.Store, result ingest.Result) ([]int64, error) {
	seen := map[int64]struct{}{}
	var keys []int64
	add := func(k int64) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, pair := range result.ChangedPairs {
		if pair.HasOldTaxon {
			add(pair.OldTaxonKey)
		}
	}

	ids := make([]int64, 0, len(result.NewIDs)+len(result.ChangedPairs))
	ids = append(ids, result.NewIDs...)
	for _, pair := range result.ChangedPairs {
		ids = append(ids, pair.SpecimenID)
	}
	if len(ids) > 0 {
		specimens, err := st.SpecimensByID(ctx, ids)
		if err != nil {
			return nil, FetchTaxonError(err)
		}
		for _, s := range specimens {
			if s.TaxonKey.Valid {
				add(s.TaxonKey.Int64)
			}
		}
	}

	return keys, nil
}

func markSelected(ctx context.Context, st store.Store) error {
	updates := map[int64]bits.Checks{}
	err := st.AllSpecimens(ctx, func(s model.Specimen) error {
		if bits.Golden(s.Checks) && !bits.Has(s.Checks, bits.SELECTED) {
			updates[s.SpecimenID] = bits.SELECTED
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return st.OrChecks(ctx, updates)
}

func clearReviewForNameChecked(ctx context.Context, st store.Store) error {
	updates := map[int64]bool{}
	err := st.AllSpecimens(ctx, func(s model.Specimen) error {
		if s.Review && bits.Has(s.Checks, bits.NAME_CHECKED) {
			updates[s.SpecimenID] = false
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return st.UpdateReview(ctx, updates)
}

func includeSelected(ctx context.Context, st store.Store) error {
	updates := map[int64]bool{}
	err := st.AllSpecimens(ctx, func(s model.Specimen) error {
		if bits.Has(s.Checks, bits.SELECTED) && !s.Include {
			updates[s.SpecimenID] = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return st.UpdateInclude(ctx, updates)
}
