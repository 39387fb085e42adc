package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeZones struct {
	zone string
	ok   bool
}

func (f fakeZones) Lookup(lat, lon float64) (string, bool) { return f.zone, f.ok }

func TestMandatoryFieldsPresent(t *testing.T) {
	ok := Row{
		"specimen_id": {Kind: KindInteger, Int: 1},
		"nuc_raw":     {Kind: KindString, Str: "ACGT"},
	}
	assert.True(t, MandatoryFieldsPresent(ok))

	missingID := Row{"nuc_raw": {Kind: KindString, Str: "ACGT"}}
	assert.False(t, MandatoryFieldsPresent(missingID))

	nullRaw := Row{
		"specimen_id": {Kind: KindInteger, Int: 1},
		"nuc_raw":     {Kind: KindNull},
	}
	assert.False(t, MandatoryFieldsPresent(nullRaw))
}

func TestSpecimenID(t *testing.T) {
	id, ok := SpecimenID(Row{"specimen_id": {Kind: KindInteger, Int: 42}})
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = SpecimenID(Row{})
	assert.False(t, ok)
}

func TestBuildSpecimen_ResolvesZoneFromCoord(t *testing.T) {
	row := Row{
		"nuc_raw":       {Kind: KindString, Str: "ACGT"},
		"coord":         {Kind: KindString, Str: "[45.5, -73.6]"},
		"taxon_species": {Kind: KindString, Str: "Homo sapiens"},
	}
	now := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	s := BuildSpecimen(1, row, "deadbeef", fakeZones{zone: "dfb", ok: true}, now)

	assert.Equal(t, int64(1), s.SpecimenID)
	assert.Equal(t, "ACGT", s.NucRaw)
	assert.Equal(t, "deadbeef", s.ContentHash)
	assert.True(t, s.Review)
	assert.False(t, s.Include)
	assert.Equal(t, "dfb", s.KgZone.String)
	assert.True(t, s.KgZone.Valid)
	assert.Equal(t, "Homo sapiens", s.TaxonSpecies.String)
}

func TestBuildSpecimen_NoCoordSkipsZoneLookup(t *testing.T) {
	row := Row{"nuc_raw": {Kind: KindString, Str: "ACGT"}}
	now := time.Now
	_ = now
	s := BuildSpecimen(1, row, "hash", fakeZones{zone: "dfb", ok: true}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, s.Coord.Valid)
	assert.False(t, s.KgZone.Valid)
}

func TestBuildSpecimen_UnresolvableZoneLeavesKgZoneNull(t *testing.T) {
	row := Row{
		"nuc_raw": {Kind: KindString, Str: "ACGT"},
		"coord":   {Kind: KindString, Str: "[0, 0]"},
	}
	s := BuildSpecimen(1, row, "hash", fakeZones{ok: false}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, s.Coord.Valid)
	assert.False(t, s.KgZone.Valid)
}
