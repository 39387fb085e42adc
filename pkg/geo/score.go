package geo

import (
	"strings"

	"github.com/boldcurate/eyebold/pkg/model"
)

// Score evaluates one specimen's geographic plausibility against its
// taxon's occurrence histogram:
//
//	score = 0
//	if countryISO present and in hist's country set: score += 2
//	if kgZone present and hist.Count(kgZone) > 0:
//	    score += 1
//	    score += hist.Count(kgZone) / hist.Total()
//	passed = score > 0
func Score(countryISO string, hasCountry bool, kgZone string, hasZone bool, hist model.ClimateRecord) (score float64, passed bool) {
	if hasCountry && countrySetContains(hist.CountryCodes, strings.ToUpper(countryISO)) {
		score += 2
	}
	if hasZone {
		if count := hist.Count(strings.ToLower(kgZone)); count > 0 {
			score += 1
			if total := hist.Total(); total > 0 {
				score += float64(count) / float64(total)
			}
		}
	}
	return score, score > 0
}

func countrySetContains(csv, code string) bool {
	for _, c := range strings.Split(csv, ",") {
		if c == code {
			return true
		}
	}
	return false
}
