package ingest

import "encoding/json"

// ParseLayout decodes a schema descriptor: a JSON array of
// {"name", "index", "type"} objects.
func ParseLayout(data []byte) (Layout, error) {
	var fields []FieldSpec
	if err := json.Unmarshal(data, &fields); err != nil {
		return Layout{}, err
	}
	return Layout{Fields: fields}, nil
}
