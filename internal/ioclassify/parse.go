package ioclassify

import (
	"bufio"
	"os"

	"github.com/boldcurate/eyebold/pkg/classify"
)

// flaggedSpecimens reads the classifier's output table at path and
// returns the specimen IDs whose first hit is a BAD_CLASSIFICATION.
// The classifier can emit more than one hit per specimen; only the
// first line for a given specimen_id is evaluated, mirroring the
// last_id dedup a streaming reader needs to avoid double-counting.
func flaggedSpecimens(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ResultParseError(path, err)
	}
	defer f.Close()

	var flagged []int64
	var lastID int64
	seen := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		hit, ok := classify.ParseLine(line)
		if !ok {
			continue
		}
		if seen && hit.SpecimenID == lastID {
			continue
		}
		lastID = hit.SpecimenID
		seen = true

		if classify.IsBadClassification(hit) {
			flagged = append(flagged, hit.SpecimenID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ResultParseError(path, err)
	}
	return flagged, nil
}
