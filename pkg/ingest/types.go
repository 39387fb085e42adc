// Package ingest parses vendor TSV dumps against a schema descriptor into
// typed rows, computes the change-detector hash, and classifies each row as
// new, unchanged or changed against the record store.
//
// Staging rows are dynamically schema-typed: rather than one anonymous
// map[string]any, each cell carries an explicit CellKind alongside its
// value, so a caller never has to re-sniff a bare interface{} to know how
// to format or compare it.
package ingest

import "time"

// FieldType is the type a schema descriptor can declare for a column.
// Unknown type strings fall back to FieldString.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldDate    FieldType = "date"
	FieldInteger FieldType = "integer"
	FieldNumber  FieldType = "number"
	FieldArray   FieldType = "array"
)

// FieldSpec is one column of a schema descriptor: its name, its ordinal
// position in the TSV, and its declared type.
type FieldSpec struct {
	Name  string    `json:"name"`
	Index int       `json:"index"`
	Type  FieldType `json:"type"`
}

// Layout is a full schema descriptor: the ordered set of fields a TSV row
// is expected to carry.
type Layout struct {
	Fields []FieldSpec
}

// FieldByName returns the spec for name, or false if the layout has no such field.
func (l Layout) FieldByName(name string) (FieldSpec, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// CellKind tags the concrete type a Cell actually holds.
type CellKind int

const (
	KindNull CellKind = iota
	KindString
	KindDate
	KindInteger
	KindNumber
	KindArray
)

// Cell is one typed, possibly-null value from a staging row. Exactly one of
// Str/Time/Int/Num/Arr is meaningful, selected by Kind.
type Cell struct {
	Kind CellKind
	Str  string
	Time time.Time
	Int  int64
	Num  float64
	Arr  []string
}

// IsNull reports whether the source cell was empty, the literal "None", or
// absent.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// String renders the cell for content-hashing and staging-table storage.
// Null renders as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case KindNull:
		return ""
	case KindString:
		return c.Str
	case KindDate:
		return c.Time.Format("2006-01-02")
	case KindInteger:
		return itoa(c.Int)
	case KindNumber:
		return ftoa(c.Num)
	case KindArray:
		return joinArr(c.Arr)
	default:
		return ""
	}
}

// Row is a single parsed TSV record, keyed by field name.
type Row map[string]Cell

// StagingRecord pairs the specimen_id key with its verbatim typed row, for
// writing to the data-driven staging table.
type StagingRecord struct {
	SpecimenID int64
	Row        Row
}

// ChangedPair names a specimen whose content hash differs from what is on
// file, along with the taxon_key it was previously resolved to (so the
// orchestrator can requeue both the old and new taxon groups).
type ChangedPair struct {
	SpecimenID  int64
	OldTaxonKey int64
	HasOldTaxon bool
}

// Result is the outcome of an update-mode ingest pass.
type Result struct {
	NewIDs       []int64
	ChangedPairs []ChangedPair
	SkippedRows  int // rows dropped for missing mandatory fields or wrong marker
}
