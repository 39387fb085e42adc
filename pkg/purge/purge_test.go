package purge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boldcurate/eyebold/pkg/bits"
)

func longSeq(prefix string, n int) string {
	return prefix + strings.Repeat("A", n)
}

func TestSanitize_StripsFlanksAndGaps(t *testing.T) {
	assert.Equal(t, "ACGT", Sanitize("__ACG-T--"))
	assert.Equal(t, "ACGT", Sanitize("NNACGTNN"))
	assert.Equal(t, "ACGT", Sanitize("-A-C-G-T-"))
}

func TestSelectRegime_Boundaries(t *testing.T) {
	th := Thresholds{TrivialSize: 5000, SmallSize: 50000}
	assert.Equal(t, Trivial, SelectRegime(5000, th))
	assert.Equal(t, Small, SelectRegime(5001, th))
	assert.Equal(t, Small, SelectRegime(50000, th))
	assert.Equal(t, Hard, SelectRegime(50001, th))
}

func TestMarkDuplicates_ExactDuplicate(t *testing.T) {
	seq := longSeq("X", 250)
	out := MarkDuplicates([]Specimen{
		{SpecimenID: 1, NucRaw: seq},
		{SpecimenID: 2, NucRaw: seq},
	})
	byID := map[int64]Outcome{}
	for _, o := range out {
		byID[o.SpecimenID] = o
	}
	// first occurrence in length-descending, stable order is unique
	assert.False(t, bits.Has(byID[1].SetBits, bits.DUPLICATE))
	assert.True(t, bits.Has(byID[2].SetBits, bits.DUPLICATE))
}

func TestMarkDuplicates_SubstringIsDuplicate(t *testing.T) {
	long := longSeq("X", 300)
	short := long[:250]
	out := MarkDuplicates([]Specimen{
		{SpecimenID: 1, NucRaw: short},
		{SpecimenID: 2, NucRaw: long},
	})
	byID := map[int64]Outcome{}
	for _, o := range out {
		byID[o.SpecimenID] = o
	}
	assert.False(t, bits.Has(byID[2].SetBits, bits.DUPLICATE))
	assert.True(t, bits.Has(byID[1].SetBits, bits.DUPLICATE))
}

func TestMarkDuplicates_LengthFilterIndependentOfDuplicateStatus(t *testing.T) {
	out := MarkDuplicates([]Specimen{
		{SpecimenID: 1, NucRaw: "ACGT"},
	})
	assert.True(t, bits.Has(out[0].SetBits, bits.FAILED_LENGTH))
	assert.False(t, bits.Has(out[0].SetBits, bits.DUPLICATE))
}

func TestMarkDuplicates_SingletonGroupNoDuplicate(t *testing.T) {
	out := MarkDuplicates([]Specimen{{SpecimenID: 1, NucRaw: longSeq("X", 250)}})
	require := out[0]
	assert.False(t, bits.Has(require.SetBits, bits.DUPLICATE))
}

func TestMarkDuplicatesChunk_ReturnsOnlyDuplicates(t *testing.T) {
	seq := longSeq("X", 250)
	sorted := SortByLengthDesc([]Specimen{
		{SpecimenID: 1, NucRaw: seq},
		{SpecimenID: 2, NucRaw: seq},
	})
	out := MarkDuplicatesChunk(sorted)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].SpecimenID)
}

func TestChunk_SplitsIntoBoundedGroups(t *testing.T) {
	specimens := make([]Specimen, 10)
	for i := range specimens {
		specimens[i] = Specimen{SpecimenID: int64(i)}
	}
	chunks := Chunk(specimens, 4)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4)
	assert.Len(t, chunks[2], 2)
}

func TestHardSweep_ConvergesToSameResultAsFullPass(t *testing.T) {
	seq := longSeq("X", 250)
	specimens := []Specimen{
		{SpecimenID: 1, NucRaw: seq},
		{SpecimenID: 2, NucRaw: seq},
		{SpecimenID: 3, NucRaw: seq},
	}
	out := HardSweep(specimens, SweepPlan{Min: 1, Max: 2, Step: 1})
	byID := map[int64]Outcome{}
	for _, o := range out {
		byID[o.SpecimenID] = o
	}
	assert.False(t, bits.Has(byID[1].SetBits, bits.DUPLICATE))
	assert.True(t, bits.Has(byID[2].SetBits, bits.DUPLICATE))
	assert.True(t, bits.Has(byID[3].SetBits, bits.DUPLICATE))
}

func TestSweepPlan_ChunkSizes(t *testing.T) {
	sizes := SweepPlan{Min: 1000, Max: 5000, Step: 1000}.ChunkSizes()
	assert.Equal(t, []int{1000, 2000, 3000, 4000, 5000}, sizes)
}
