package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ParseRow transforms one TSV record's fields into a typed Row according to
// layout. Cells outside the layout's declared indices are ignored; missing
// or out-of-range fields parse as null.
func ParseRow(layout Layout, rawFields []string) Row {
	row := make(Row, len(layout.Fields))
	for _, spec := range layout.Fields {
		var raw string
		if spec.Index >= 0 && spec.Index < len(rawFields) {
			raw = rawFields[spec.Index]
		}
		row[spec.Name] = ParseCell(spec, raw)
	}
	return row
}

// ParseCell parses one raw string against its declared type. Empty, the
// literal "None", or an unparseable value all produce a null Cell, except
// for FieldString, whose only null sentinel is emptiness/"None" (a string
// field never fails to parse).
func ParseCell(spec FieldSpec, raw string) Cell {
	if raw == "" || raw == "None" {
		return Cell{Kind: KindNull}
	}

	switch spec.Type {
	case FieldDate:
		for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", time.RFC3339} {
			if t, err := time.Parse(layout, raw); err == nil {
				return Cell{Kind: KindDate, Time: t}
			}
		}
		return Cell{Kind: KindNull}
	case FieldInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Cell{Kind: KindNull}
		}
		return Cell{Kind: KindInteger, Int: i}
	case FieldNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Cell{Kind: KindNull}
		}
		return Cell{Kind: KindNumber, Num: f}
	case FieldArray:
		parts := strings.Split(raw, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return Cell{Kind: KindArray, Arr: parts}
	case FieldString:
		return Cell{Kind: KindString, Str: raw}
	default:
		// Unknown declared type: fall back to string.
		return Cell{Kind: KindString, Str: raw}
	}
}

// ContentHash computes the hex digest over the concatenation of every
// field's stringified value, in schema order. It is the change-detector
// used to classify a record as new/unchanged/changed at update time.
func ContentHash(layout Layout, row Row) string {
	var sb strings.Builder
	for _, spec := range layout.Fields {
		sb.WriteString(row[spec.Name].String())
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// ParseCoord parses the vendor "[lat, lon]" coordinate representation.
// ok is false if the string is not well-formed.
func ParseCoord(raw string) (lat, lon float64, ok bool) {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	latStr := strings.TrimSpace(parts[0])
	latStr = strings.TrimPrefix(latStr, "[")
	lonStr := strings.TrimSpace(parts[1])
	lonStr = strings.TrimSuffix(lonStr, "]")

	var err error
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
