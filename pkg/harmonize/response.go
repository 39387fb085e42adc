package harmonize

import (
	"strings"

	"github.com/boldcurate/eyebold/pkg/bits"
)

// HandleResponse implements the response-handling state machine: the real
// algorithmic core of the harmoniser. It is pure — no I/O, no retries, just
// the mapping from (query, external response) to a store mutation.
func HandleResponse(q Query, r Response) Outcome {
	out := Outcome{
		Lineage:        map[bits.Rank]string{},
		ProcessingInfo: r.ProcessingInfo,
	}

	// Step 1: terminal failure.
	if r.MatchType == MatchNone && r.Confidence >= 100 {
		out.SetBits = bits.NAME_CHECKED | bits.NAME_FAILED
		out.IdentificationRank = "Failed"
		return out
	}

	if r.MatchType != MatchExact && r.MatchType != MatchFuzzy && r.MatchType != MatchHigherRank {
		// Undefined match_type: nothing more we can say about this query.
		return Outcome{}
	}

	// Step 2: seed the set with the query rank's own bit.
	queryBit := bits.RankBit(q.Rank)
	set := queryBit

	// Step 3: mark checked, copy every response lineage rank present.
	set |= bits.NAME_CHECKED
	effectiveRank := q.Rank
	if rk, ok := rankFromName(r.MatchRank); ok {
		effectiveRank = rk
	}
	out.IdentificationRank = effectiveRank.String()

	for name, value := range r.Lineage {
		if bit, rank, ok := bits.NameToBit(name); ok {
			out.Lineage[rank] = value
			set |= bit
		}
	}

	higherRank := r.Status == "HIGHERRANK" || r.MatchType == MatchHigherRank

	// Step 4: HIGHERRANK means the query rank itself was not confirmed —
	// drop it and everything deeper than the effective (response) rank.
	// Step 5: an unenumerated response rank (e.g. "form") conservatively
	// falls back to kingdom for this truncation.
	if higherRank {
		set &^= queryBit
		truncAt, ok := rankFromName(r.MatchRank)
		if !ok {
			truncAt = bits.Kingdom
		}
		out.IdentificationRank = truncAt.String()
		set &^= bits.DeeperThan(truncAt)
	}

	// Step 6: record the external taxon key if present.
	if r.HasUsageKey {
		out.TaxonKey = r.UsageKey
		out.HasTaxonKey = true
	}

	// Step 7: sanity check — response landed on an unexpected rank without
	// declaring HIGHERRANK, and the response has nothing at query_rank: the
	// match is suspect, so strip the query rank and everything deeper.
	if !higherRank {
		respRank, hasRespRank := rankFromName(r.MatchRank)
		mismatchedRank := hasRespRank && respRank != q.Rank
		_, hasQueryRankField := r.Lineage[q.Rank.String()]
		if mismatchedRank && !hasQueryRankField {
			set &^= queryBit
			truncAt := bits.Kingdom
			if hasRespRank {
				truncAt = respRank
			}
			out.IdentificationRank = truncAt.String()
			set &^= bits.DeeperThan(truncAt)
		}
	}

	out.SetBits = set
	return out
}

func rankFromName(name string) (bits.Rank, bool) {
	_, rank, ok := bits.NameToBit(strings.ToLower(name))
	return rank, ok
}
