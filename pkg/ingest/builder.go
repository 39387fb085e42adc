package ingest

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/boldcurate/eyebold/pkg/geo"
	"github.com/boldcurate/eyebold/pkg/model"
)

// MandatoryFieldsPresent reports whether specimen_id and nuc_raw are both
// non-null. Rows failing this check are dropped before any other processing.
func MandatoryFieldsPresent(row Row) bool {
	id, ok := row["specimen_id"]
	if !ok || id.IsNull() {
		return false
	}
	raw, ok := row["nuc_raw"]
	return ok && !raw.IsNull()
}

// SpecimenID extracts the mandatory specimen_id cell as an int64.
func SpecimenID(row Row) (int64, bool) {
	c, ok := row["specimen_id"]
	if !ok || c.IsNull() {
		return 0, false
	}
	switch c.Kind {
	case KindInteger:
		return c.Int, true
	case KindString:
		// Vendor dumps sometimes type the id column as string; fall back
		// to the string form rather than dropping the row.
		if id, err := strconv.ParseInt(c.Str, 10, 64); err == nil {
			return id, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// MarkerCode extracts the marker_code cell, used to filter rows that belong
// to the configured barcode marker.
func MarkerCode(row Row) string {
	return row["marker_code"].String()
}

// BuildSpecimen produces the specimen row for a freshly ingested record:
// lineage slots copied verbatim, nuc_raw and content_hash set, review=true,
// include=false. zones is optional (nil skips kg_zone resolution).
func BuildSpecimen(specimenID int64, row Row, contentHash string, zones geo.ZoneLookup, now time.Time) model.Specimen {
	s := model.Specimen{
		SpecimenID:      specimenID,
		NucRaw:          row["nuc_raw"].String(),
		ContentHash:     contentHash,
		LastUpdated:     now.Format("2006-01-02"),
		Review:          true,
		Include:         false,
		TaxonKingdom:    nullString(row["taxon_kingdom"]),
		TaxonPhylum:     nullString(row["taxon_phylum"]),
		TaxonClass:      nullString(row["taxon_class"]),
		TaxonOrder:      nullString(row["taxon_order"]),
		TaxonFamily:     nullString(row["taxon_family"]),
		TaxonSubfamily:  nullString(row["taxon_subfamily"]),
		TaxonTribe:      nullString(row["taxon_tribe"]),
		TaxonGenus:      nullString(row["taxon_genus"]),
		TaxonSpecies:    nullString(row["taxon_species"]),
		TaxonSubspecies: nullString(row["taxon_subspecies"]),
		CountryISO:      nullString(row["country_iso"]),
	}

	if coord, ok := row["coord"]; ok && !coord.IsNull() {
		s.Coord = sql.NullString{String: coord.String(), Valid: true}
		if lat, lon, ok := ParseCoord(coord.String()); ok && zones != nil {
			if zone, ok := zones.Lookup(lat, lon); ok {
				s.KgZone = sql.NullString{String: zone, Valid: true}
			}
		}
	}

	return s
}

func nullString(c Cell) sql.NullString {
	if c.IsNull() {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}
