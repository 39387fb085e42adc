package harmonize

import (
	"strings"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/store"
)

// lineageKey groups specimens that share the identical lineage up to and
// including their deepest resolved rank.
type lineageKey struct {
	rank  bits.Rank
	tuple string
}

// BuildQueries groups review-pending lineage rows into one query object per
// distinct (deepest rank, lineage-up-to-that-rank) tuple, for each of the
// ten ranks in descending depth (subspecies first). Rows whose lineage is
// entirely null are skipped — there is nothing to query.
func BuildQueries(rows []store.LineageRow) []Query {
	groups := map[lineageKey]*Query{}
	var order []lineageKey

	for _, row := range rows {
		rank, ok := deepestRank(row.Lineage)
		if !ok {
			continue
		}
		key := lineageKey{rank: rank, tuple: strings.Join(row.Lineage[:rank+1], "\x1f")}
		q, exists := groups[key]
		if !exists {
			hints := map[bits.Rank]string{}
			for r := bits.Kingdom; r < rank; r++ {
				if v := row.Lineage[r]; v != "" {
					hints[r] = v
				}
			}
			q = &Query{
				QueryString:   row.Lineage[rank],
				Rank:          rank,
				AncestorHints: hints,
			}
			groups[key] = q
			order = append(order, key)
		}
		q.SpecimenIDs = append(q.SpecimenIDs, row.SpecimenID)
	}

	out := make([]Query, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}

// deepestRank returns the deepest rank with a non-empty lineage value.
func deepestRank(lineage [10]string) (bits.Rank, bool) {
	for r := bits.Subspecies; r >= bits.Kingdom; r-- {
		if lineage[r] != "" {
			return r, true
		}
	}
	return 0, false
}
