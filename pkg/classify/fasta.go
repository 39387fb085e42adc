// Package classify builds the classifier bridge's FASTA inputs and
// interprets its TSV output. All functions here are pure; the external
// binary invocation and file I/O live in internal/ioclassify.
package classify

import (
	"fmt"
	"strings"

	"github.com/boldcurate/eyebold/pkg/bits"
	"github.com/boldcurate/eyebold/pkg/model"
)

type rankField struct {
	bit   bits.Checks
	value string
}

// TaxString walks {phylum, class, order, family, genus, species} and
// returns the comma-joined monotone prefix of resolved ranks: a rank
// counts only if its INCL_* bit is set AND every shallower INCL_* bit is
// also set, so the walk stops at the first missing bit. Spaces in each
// name are replaced with underscores. ok is false if no rank qualifies.
func TaxString(s model.Specimen) (string, bool) {
	fields := []rankField{
		{bits.INCL_PHYLUM, s.TaxonPhylum.String},
		{bits.INCL_CLASS, s.TaxonClass.String},
		{bits.INCL_ORDER, s.TaxonOrder.String},
		{bits.INCL_FAMILY, s.TaxonFamily.String},
		{bits.INCL_GENUS, s.TaxonGenus.String},
		{bits.INCL_SPECIES, s.TaxonSpecies.String},
	}

	var parts []string
	for _, f := range fields {
		if !bits.Has(s.Checks, f.bit) {
			break
		}
		parts = append(parts, strings.ReplaceAll(f.value, " ", "_"))
	}
	return strings.Join(parts, ","), len(parts) > 0
}

const acgt = "ACGT"

// IsACGT reports whether seq contains only the four canonical bases.
func IsACGT(seq string) bool {
	if seq == "" {
		return false
	}
	for _, r := range seq {
		if !strings.ContainsRune(acgt, r) {
			return false
		}
	}
	return true
}

// FastaRecord builds one classifier-FASTA record for s, gated by the
// monotone tax-string rule and the ACGT-only sanitised-sequence rule.
// ok is false if the record must be skipped.
func FastaRecord(s model.Specimen) (string, bool) {
	if !s.NucSan.Valid || !IsACGT(s.NucSan.String) {
		return "", false
	}
	tax, ok := TaxString(s)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(">%d;tax=%s;\n%s\n", s.SpecimenID, tax, s.NucSan.String), true
}

// PlainFastaRecord builds an export FASTA record without the tax-string
// gating: any record with a valid, ACGT-only sanitised sequence.
func PlainFastaRecord(s model.Specimen) (string, bool) {
	if !s.NucSan.Valid || !IsACGT(s.NucSan.String) {
		return "", false
	}
	return fmt.Sprintf(">%d;\n%s\n", s.SpecimenID, s.NucSan.String), true
}
