package model

import "strings"

// KgZones lists the 32 Köppen-Geiger climate-classification codes tracked
// by the climate store, in column order.
var KgZones = [32]string{
	"af", "am", "as", "aw", "bsh", "bsk", "bwh", "bwk",
	"cfa", "cfb", "cfc", "csa", "csb", "csc", "cwa", "cwb",
	"cwc", "dfa", "dfb", "dfc", "dfd", "dsa", "dsb", "dsc",
	"dsd", "dwa", "dwb", "dwc", "dwd", "ef", "et", "ocean",
}

// ClimateRecord is one row of the climate store: a per-taxon histogram of
// occurrence counts across the 32 Köppen-Geiger zones, plus the set of
// country codes observed for that taxon.
type ClimateRecord struct {
	TaxonKey     int64          `db:"taxon_key" ddl:"INTEGER PRIMARY KEY"`
	Counts       [32]int64      `db:"-"`
	CountryCodes string         `db:"country_codes" ddl:"TEXT NOT NULL DEFAULT ''"`
}

func (ClimateRecord) TableName() string { return "climate_data" }

func (c ClimateRecord) TableDDL() string {
	var cols []string
	cols = append(cols, "    taxon_key INTEGER PRIMARY KEY")
	for _, zone := range KgZones {
		cols = append(cols, "    kg_"+zone+" INTEGER NOT NULL DEFAULT 0")
	}
	cols = append(cols, "    country_codes TEXT NOT NULL DEFAULT ''")
	return "CREATE TABLE IF NOT EXISTS climate_data (\n" + strings.Join(cols, ",\n") + "\n);"
}

func (ClimateRecord) IndexDDL() []string { return nil }

// Count returns the occurrence count for a Köppen-Geiger zone code
// (lowercase, e.g. "cfb"). Unknown zones return 0.
func (c ClimateRecord) Count(zone string) int64 {
	for i, z := range KgZones {
		if z == zone {
			return c.Counts[i]
		}
	}
	return 0
}

// Total sums every zone's occurrence count.
func (c ClimateRecord) Total() int64 {
	var total int64
	for _, v := range c.Counts {
		total += v
	}
	return total
}
