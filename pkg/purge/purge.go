// Package purge implements the duplicate/substring detection algorithms
// for the curation pass (C5): pure functions over in-memory specimen
// slices, with no store or concurrency concerns of their own.
package purge

import (
	"sort"
	"strings"

	"github.com/boldcurate/eyebold/pkg/bits"
)

// lengthFloor is the minimum sanitised sequence length; anything shorter
// is marked FAILED_LENGTH regardless of duplicate status.
const lengthFloor = 200

// stripChars are trimmed from the start and end of a raw sequence before
// every remaining gap character is removed.
const stripChars = "_-N"

// Specimen is the minimal input a purge pass needs: an identity and a
// sequence (raw or already-sanitised — Sanitize is idempotent).
type Specimen struct {
	SpecimenID int64
	NucRaw     string
}

// Outcome is one record's purge result: the sanitised sequence to
// persist and the bits to OR into its checks column.
type Outcome struct {
	SpecimenID int64
	NucSan     string
	SetBits    bits.Checks
}

// Regime selects which of the three purge regimes handles a group, based
// on its size. Trivial and Small both run MarkDuplicates; Hard runs
// HardSweep.
type Regime int

const (
	Trivial Regime = iota
	Small
	Hard
)

// Thresholds carries the size boundaries between regimes.
type Thresholds struct {
	TrivialSize int
	SmallSize   int
}

// SelectRegime picks the regime for a group of the given size.
func SelectRegime(size int, t Thresholds) Regime {
	switch {
	case size <= t.TrivialSize:
		return Trivial
	case size <= t.SmallSize:
		return Small
	default:
		return Hard
	}
}

// Sanitize strips leading/trailing characters in stripChars, then
// removes every remaining '-'.
func Sanitize(nucRaw string) string {
	trimmed := strings.Trim(nucRaw, stripChars)
	return strings.ReplaceAll(trimmed, "-", "")
}

// SortByLengthDesc sanitises every specimen and returns them sorted by
// sanitised length, longest first. Ties keep their relative input order.
func SortByLengthDesc(specimens []Specimen) []Specimen {
	out := make([]Specimen, len(specimens))
	for i, s := range specimens {
		out[i] = Specimen{SpecimenID: s.SpecimenID, NucRaw: Sanitize(s.NucRaw)}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].NucRaw) > len(out[j].NucRaw) })
	return out
}

// Chunk splits a (typically pre-sorted) slice into consecutive chunks of
// at most size elements each.
func Chunk(specimens []Specimen, size int) [][]Specimen {
	if size <= 0 {
		return [][]Specimen{specimens}
	}
	var chunks [][]Specimen
	for i := 0; i < len(specimens); i += size {
		end := i + size
		if end > len(specimens) {
			end = len(specimens)
		}
		chunks = append(chunks, specimens[i:end])
	}
	return chunks
}

// MarkDuplicates runs the full group pass: sanitise, sort by sanitised
// length descending, then scan with a "seen" set of sanitised strings.
// The first occurrence in length-descending order of a sequence (exact
// match or superstring) is the unique one; every later occurrence of the
// same sequence, or one contained in an already-seen longer sequence, is
// marked DUPLICATE. Every record shorter than the length floor is marked
// FAILED_LENGTH regardless of duplicate status. Every input record
// produces an Outcome.
func MarkDuplicates(specimens []Specimen) []Outcome {
	return scan(SortByLengthDesc(specimens), true)
}

// MarkDuplicatesChunk runs the same scan as MarkDuplicates but with a
// "seen" set local to specimens, and returns only the records it
// identifies as duplicates — survivors produce no Outcome here since
// they will be re-sanitised and re-scanned in a later sweep round or the
// final full-group pass. specimens must already be sorted by sanitised
// length, descending (SortByLengthDesc).
func MarkDuplicatesChunk(specimens []Specimen) []Outcome {
	var out []Outcome
	for _, o := range scan(specimens, false) {
		if bits.Has(o.SetBits, bits.DUPLICATE) {
			out = append(out, o)
		}
	}
	return out
}

// scan assumes sorted is already sanitised and sorted by length
// descending. When emitAll is true, every record produces an Outcome
// (including unique, non-short ones); otherwise only duplicates do —
// callers needing only duplicates filter afterward but scan still needs
// to walk every record to build the seen set correctly.
func scan(sorted []Specimen, emitAll bool) []Outcome {
	out := make([]Outcome, 0, len(sorted))
	seen := make([]string, 0, len(sorted))
	seenSet := make(map[string]struct{}, len(sorted))

	for _, s := range sorted {
		san := s.NucRaw
		var set bits.Checks
		if len(san) < lengthFloor {
			set |= bits.FAILED_LENGTH
		}

		duplicate := false
		if _, ok := seenSet[san]; ok {
			duplicate = true
		} else {
			for _, prior := range seen {
				if strings.Contains(prior, san) {
					duplicate = true
					break
				}
			}
		}

		if duplicate {
			set |= bits.DUPLICATE
			out = append(out, Outcome{SpecimenID: s.SpecimenID, NucSan: san, SetBits: set})
			continue
		}

		seenSet[san] = struct{}{}
		seen = append(seen, san)
		if emitAll {
			out = append(out, Outcome{SpecimenID: s.SpecimenID, NucSan: san, SetBits: set})
		}
	}
	return out
}
