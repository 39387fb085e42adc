// Package harmonize implements the taxonomy harmoniser's response-handling
// state machine (C4): given a query lineage and an external name service's
// match response, it decides which rank-inclusion bits to set, which
// lineage fields to copy, and what the effective identification rank is.
// The network call itself is an external boundary (NameResolver);
// internal/ioharmonize supplies the concurrent worker pool around it.
package harmonize

import "github.com/boldcurate/eyebold/pkg/bits"

// MatchType mirrors the external name service's match classification.
type MatchType string

const (
	MatchNone       MatchType = "NONE"
	MatchFuzzy      MatchType = "FUZZY"
	MatchExact      MatchType = "EXACT"
	MatchHigherRank MatchType = "HIGHERRANK"
)

// Query is one lineage tuple awaiting resolution: all specimen_ids that
// share it are updated together once the response is resolved.
type Query struct {
	QueryString   string
	Rank          bits.Rank
	AncestorHints map[bits.Rank]string
	SpecimenIDs   []int64
}

// Response is the external name service's answer to one Query.
type Response struct {
	MatchType    MatchType
	Status       string // e.g. "ACCEPTED", "HIGHERRANK"
	MatchRank    string // response's rank name, possibly outside the ten-rank enum
	Confidence   int
	Lineage      map[string]string // rank name (lowercase) -> accepted value
	UsageKey     int64
	HasUsageKey  bool
	ProcessingInfo string // opaque diagnostic blob, stored verbatim
}

// Outcome is the store mutation a resolved Query produces: an OR-only mask
// to add to checks, lineage fields to overwrite, and the effective
// identification rank.
type Outcome struct {
	SetBits            bits.Checks
	Lineage            map[bits.Rank]string
	IdentificationRank string
	TaxonKey           int64
	HasTaxonKey        bool
	ProcessingInfo     string
}
