package model

import (
	"fmt"
	"reflect"
	"strings"
)

// DDLGenerator is implemented by every row type the store knows how to
// create a table for.
type DDLGenerator interface {
	TableName() string
	TableDDL() string
	IndexDDL() []string
}

// generateDDL creates a CREATE TABLE statement from struct tags: the `db`
// tag names the column, the `ddl` tag supplies its SQL type and
// constraints. Fields without both tags are skipped (computed/derived
// fields that never round-trip through the store).
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}
