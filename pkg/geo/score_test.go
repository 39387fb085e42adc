package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boldcurate/eyebold/pkg/model"
)

func TestScore_CountryAndZoneMatch(t *testing.T) {
	hist := model.ClimateRecord{TaxonKey: 1, CountryCodes: "DE,FR"}
	hist.Counts[0] = 90 // "af"
	hist.Counts[1] = 10 // "am"

	score, passed := Score("DE", true, "af", true, hist)
	assert.True(t, passed)
	assert.InDelta(t, 2+1+90.0/100.0, score, 1e-9)
}

func TestScore_NoDataMeansZero(t *testing.T) {
	hist := model.ClimateRecord{TaxonKey: 1}
	score, passed := Score("", false, "", false, hist)
	assert.False(t, passed)
	assert.Equal(t, 0.0, score)
}

func TestScore_ZoneAbsentFromHistogramNoBonus(t *testing.T) {
	hist := model.ClimateRecord{TaxonKey: 1, CountryCodes: "DE"}
	hist.Counts[0] = 5

	score, passed := Score("US", true, "am", true, hist)
	assert.False(t, passed)
	assert.Equal(t, 0.0, score)
}
