package purge

// SweepPlan describes one round of the hard-regime adaptive sub-problem
// sweep: the chunk size to re-chunk survivors at, from SubproblemMin up
// to and including SubproblemMax in steps of SubproblemStep.
type SweepPlan struct {
	Min  int
	Max  int
	Step int
}

// ChunkSizes returns the sequence of chunk sizes a hard-regime sweep
// steps through, MIN first, MAX last.
func (p SweepPlan) ChunkSizes() []int {
	if p.Step <= 0 {
		return []int{p.Min}
	}
	var sizes []int
	for size := p.Min; size <= p.Max; size += p.Step {
		sizes = append(sizes, size)
	}
	return sizes
}

// ApplyRound runs one sweep round: re-chunks survivors at chunkSize and
// runs MarkDuplicatesChunk on each chunk. It returns the duplicates found
// this round plus the reduced survivor set (duplicates removed), still
// in the same length-descending order. Callers dispatch the per-chunk
// passes across a worker pool; this function itself does not chunk
// concurrently so that its result is deterministic and trivially
// testable.
func ApplyRound(survivors []Specimen, chunkSize int) (duplicates []Outcome, reduced []Specimen) {
	chunks := Chunk(survivors, chunkSize)
	removed := make(map[int64]struct{})
	for _, chunk := range chunks {
		for _, o := range MarkDuplicatesChunk(chunk) {
			duplicates = append(duplicates, o)
			removed[o.SpecimenID] = struct{}{}
		}
	}

	reduced = make([]Specimen, 0, len(survivors)-len(removed))
	for _, s := range survivors {
		if _, gone := removed[s.SpecimenID]; !gone {
			reduced = append(reduced, s)
		}
	}
	return duplicates, reduced
}

// HardSweep runs the full adaptive sub-problem sweep for one hard-regime
// group and returns every Outcome produced: duplicates found in each
// sweep round, plus the final full cross-group pass over whatever
// survives the sweep.
func HardSweep(specimens []Specimen, plan SweepPlan) []Outcome {
	survivors := SortByLengthDesc(specimens)

	var all []Outcome
	for _, size := range plan.ChunkSizes() {
		var dups []Outcome
		dups, survivors = ApplyRound(survivors, size)
		all = append(all, dups...)
	}

	all = append(all, scan(survivors, true)...)
	return all
}
