package classify_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/classify"
	"github.com/boldcurate/eyebold/pkg/model"
)

func specimen(checks bits.Checks) model.Specimen {
	return model.Specimen{
		SpecimenID:   1,
		NucSan:       sql.NullString{String: "ACGT", Valid: true},
		Checks:       checks,
		TaxonPhylum:  sql.NullString{String: "Chordata", Valid: true},
		TaxonClass:   sql.NullString{String: "Mammalia", Valid: true},
		TaxonOrder:   sql.NullString{String: "Primates", Valid: true},
		TaxonFamily:  sql.NullString{String: "Hominidae", Valid: true},
		TaxonGenus:   sql.NullString{String: "Homo", Valid: true},
		TaxonSpecies: sql.NullString{String: "Homo sapiens", Valid: true},
	}
}

func TestTaxString_StopsAtFirstMissingBit(t *testing.T) {
	checks := bits.INCL_PHYLUM | bits.INCL_CLASS | bits.INCL_GENUS | bits.INCL_SPECIES
	tax, ok := classify.TaxString(specimen(checks))
	assert.True(t, ok)
	assert.Equal(t, "Chordata,Mammalia", tax)
}

func TestTaxString_FullLineageReplacesSpaces(t *testing.T) {
	checks := bits.INCL_PHYLUM | bits.INCL_CLASS | bits.INCL_ORDER | bits.INCL_FAMILY | bits.INCL_GENUS | bits.INCL_SPECIES
	tax, ok := classify.TaxString(specimen(checks))
	assert.True(t, ok)
	assert.Equal(t, "Chordata,Mammalia,Primates,Hominidae,Homo,Homo_sapiens", tax)
}

func TestTaxString_NoInclBitsIsEmpty(t *testing.T) {
	_, ok := classify.TaxString(specimen(0))
	assert.False(t, ok)
}

func TestIsACGT(t *testing.T) {
	assert.True(t, classify.IsACGT("ACGTACGT"))
	assert.False(t, classify.IsACGT("ACGTN"))
	assert.False(t, classify.IsACGT(""))
}

func TestFastaRecord_SkipsNonACGTSequence(t *testing.T) {
	s := specimen(bits.INCL_PHYLUM | bits.INCL_SPECIES)
	s.NucSan = sql.NullString{String: "ACGTN", Valid: true}
	_, ok := classify.FastaRecord(s)
	assert.False(t, ok)
}

func TestFastaRecord_FormatsHeaderAndSequence(t *testing.T) {
	checks := bits.INCL_PHYLUM | bits.INCL_CLASS
	rec, ok := classify.FastaRecord(specimen(checks))
	assert.True(t, ok)
	assert.Equal(t, ">1;tax=Chordata,Mammalia;\nACGT\n", rec)
}

func TestPlainFastaRecord_NoTaxGating(t *testing.T) {
	rec, ok := classify.PlainFastaRecord(specimen(0))
	assert.True(t, ok)
	assert.Equal(t, ">1;\nACGT\n", rec)
}
