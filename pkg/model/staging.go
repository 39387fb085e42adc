package model

// Staging holds one ingested row verbatim, keyed by specimen_id, so
// update-mode re-ingestion can diff against exactly what was last seen.
// The source schema is data-driven (it varies per vendor dump), so fields
// are stored as a JSON object rather than fixed columns.
type Staging struct {
	SpecimenID  int64  `db:"specimen_id" ddl:"INTEGER PRIMARY KEY"`
	ContentHash string `db:"content_hash" ddl:"TEXT NOT NULL"`
	FieldsJSON  string `db:"fields_json" ddl:"TEXT NOT NULL"`
}

func (Staging) TableName() string { return "staging" }

func (s Staging) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (Staging) IndexDDL() []string { return nil }
