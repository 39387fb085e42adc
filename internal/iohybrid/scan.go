// Package iohybrid drives the hybrid-species marker (C6) against the
// record store: it streams every specimen, evaluates the pure
// hybrid.IsHybrid predicate, and OR's HYBRID into the checks of every
// match in one batch.
package iohybrid

import (
	"context"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/hybrid"
	"github.com/boldcurate/eyebold/pkg/model"
	"github.com/boldcurate/eyebold/pkg/store"
)

// Run scans every specimen and marks HYBRID for those whose
// taxon_species matches the hybrid token.
func Run(ctx context.Context, st store.Store) error {
	updates := map[int64]bits.Checks{}
	err := st.AllSpecimens(ctx, func(r model.Specimen) error {
		if r.TaxonSpecies.Valid && hybrid.IsHybrid(r.TaxonSpecies.String) {
			updates[r.SpecimenID] = bits.HYBRID
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
