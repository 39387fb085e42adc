// Package export builds the row projections the export formatters (C10)
// write out: a fixed nine-column shape over a SELECTED specimen. FASTA
// and classifier-FASTA formatting live in pkg/classify; this package
// covers the tabular TSV/CSV shape only.
package export

import (
	"strconv"

	"github.com/boldcurate/eyebold/pkg/model"
)

// Header is the fixed column order for the TSV/CSV export shapes.
var Header = []string{"checks", "specimen_id", "nuc_san", "phylum", "class", "order", "family", "genus", "species"}

// Row projects one specimen onto Header's column order.
func Row(s model.Specimen) []string {
	return []string{
		strconv.FormatInt(int64(s.Checks), 10),
		strconv.FormatInt(s.SpecimenID, 10),
		s.NucSan.String,
		s.TaxonPhylum.String,
		s.TaxonClass.String,
		s.TaxonOrder.String,
		s.TaxonFamily.String,
		s.TaxonGenus.String,
		s.TaxonSpecies.String,
	}
}
