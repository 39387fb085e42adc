package classify

import (
	"strconv"
	"strings"
)

// Hit is one parsed line of the classifier's TSV output: the specimen's
// own (original) taxonomy lineage, the lineage the classifier compared it
// against, and the per-rank confidence scores for ranks shallower than
// species.
type Hit struct {
	SpecimenID int64
	Original   []string
	Compared   []string
	Scores     []float64
}

// ParseLine parses one classifier output line:
//
//	{specimen_id};tax={p:val,c:val,...}\t{compared,vals,...}\t{score,score,...}
//
// ok is false if the line is malformed (missing fields, unparsable id).
func ParseLine(line string) (Hit, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Hit{}, false
	}

	idField := strings.SplitN(fields[0], ";", 2)
	id, err := strconv.ParseInt(strings.TrimSpace(idField[0]), 10, 64)
	if err != nil {
		return Hit{}, false
	}

	var original []string
	if eq := strings.SplitN(fields[0], "=", 2); len(eq) == 2 {
		original = stripRankPrefixes(strings.Split(eq[1], ","))
	}

	compared := strings.Split(fields[1], ",")

	var scores []float64
	for _, s := range strings.Split(fields[2], ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			continue
		}
		scores = append(scores, v)
	}

	return Hit{SpecimenID: id, Original: original, Compared: compared, Scores: scores}, true
}

func stripRankPrefixes(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		if idx := strings.Index(v, ":"); idx >= 0 {
			out[i] = v[idx+1:]
			continue
		}
		out[i] = v
	}
	return out
}

// badClassificationThreshold is the minimum per-rank confidence score
// that turns a lineage disagreement into a BAD_CLASSIFICATION flag.
const badClassificationThreshold = 0.9

// IsBadClassification reports whether hit disagrees with the classifier
// at any rank shallower than species with high enough confidence: at
// rank i, original[i] != compared[i] AND scores[i] >= 0.9.
func IsBadClassification(hit Hit) bool {
	n := len(hit.Original)
	if len(hit.Compared) < n {
		n = len(hit.Compared)
	}
	if len(hit.Scores) < n {
		n = len(hit.Scores)
	}
	for i := 0; i < n; i++ {
		if hit.Original[i] != hit.Compared[i] && hit.Scores[i] >= badClassificationThreshold {
			return true
		}
	}
	return false
}
