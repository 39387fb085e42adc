// Package model defines the record store's row types and the struct-tag
// driven DDL generation that builds their CREATE TABLE statements.
package model

import (
	"database/sql"

	"github.com/boldcurate/eyebold/pkg/bits"
)

// Specimen is the primary curation entity: one DNA barcode record.
type Specimen struct {
	SpecimenID          int64          `db:"specimen_id" ddl:"INTEGER PRIMARY KEY"`
	NucRaw              string         `db:"nuc_raw" ddl:"TEXT NOT NULL"`
	NucSan              sql.NullString `db:"nuc_san" ddl:"TEXT"`
	ContentHash         string         `db:"content_hash" ddl:"TEXT NOT NULL"`
	LastUpdated         string         `db:"last_updated" ddl:"TEXT NOT NULL"`
	Review              bool           `db:"review" ddl:"INTEGER NOT NULL DEFAULT 1"`
	Include             bool           `db:"include" ddl:"INTEGER NOT NULL DEFAULT 0"`
	TaxonKey            sql.NullInt64  `db:"taxon_key" ddl:"INTEGER"`
	TaxonKingdom        sql.NullString `db:"taxon_kingdom" ddl:"TEXT"`
	TaxonPhylum         sql.NullString `db:"taxon_phylum" ddl:"TEXT"`
	TaxonClass          sql.NullString `db:"taxon_class" ddl:"TEXT"`
	TaxonOrder          sql.NullString `db:"taxon_order" ddl:"TEXT"`
	TaxonFamily         sql.NullString `db:"taxon_family" ddl:"TEXT"`
	TaxonSubfamily      sql.NullString `db:"taxon_subfamily" ddl:"TEXT"`
	TaxonTribe          sql.NullString `db:"taxon_tribe" ddl:"TEXT"`
	TaxonGenus          sql.NullString `db:"taxon_genus" ddl:"TEXT"`
	TaxonSpecies        sql.NullString `db:"taxon_species" ddl:"TEXT"`
	TaxonSubspecies     sql.NullString `db:"taxon_subspecies" ddl:"TEXT"`
	IdentificationRank  sql.NullString `db:"identification_rank" ddl:"TEXT"`
	CountryISO          sql.NullString `db:"country_iso" ddl:"TEXT"`
	Coord               sql.NullString `db:"coord" ddl:"TEXT"`
	KgZone              sql.NullString `db:"kg_zone" ddl:"TEXT"`
	Checks              bits.Checks    `db:"checks" ddl:"INTEGER NOT NULL DEFAULT 0"`
	GeoInfo             sql.NullFloat64 `db:"geo_info" ddl:"REAL"`
	ProcessingInfo      sql.NullString `db:"processing_info" ddl:"TEXT"`
}

func (Specimen) TableName() string { return "specimen" }

func (s Specimen) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (Specimen) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_specimen_taxon_key ON specimen(taxon_key);",
		"CREATE INDEX IF NOT EXISTS idx_specimen_review ON specimen(review);",
		"CREATE INDEX IF NOT EXISTS idx_specimen_checks ON specimen(checks);",
	}
}

// Lineage returns the ten rank strings, shallowest (kingdom) to deepest
// (subspecies), as plain strings with "" for null.
func (s Specimen) Lineage() [10]string {
	return [10]string{
		s.TaxonKingdom.String,
		s.TaxonPhylum.String,
		s.TaxonClass.String,
		s.TaxonOrder.String,
		s.TaxonFamily.String,
		s.TaxonSubfamily.String,
		s.TaxonTribe.String,
		s.TaxonGenus.String,
		s.TaxonSpecies.String,
		s.TaxonSubspecies.String,
	}
}
