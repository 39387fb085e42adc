// Package iostore implements the record store contract (pkg/store) over a
// pure-Go SQLite driver. This is an impure I/O package that implements
// contracts defined in pkg/.
package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open store <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open store %s: %w", fn, path, err),
	}
}

func CreateSchemaError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreCreateSchemaError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: cannot create table %s: %w", fn, table, err),
	}
}

func QueryError(op string, err error) error {
	msg := "Store query failed: <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("from %s: query %s failed: %w", fn, op, err),
	}
}

func InsertError(table string, err error) error {
	msg := "Cannot insert into <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: insert into %s failed: %w", fn, table, err),
	}
}

func UpdateError(table string, err error) error {
	msg := "Cannot update <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreUpdateError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: update %s failed: %w", fn, table, err),
	}
}

func CloseError(err error) error {
	msg := "Cannot close store cleanly"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreCloseError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("from %s: close failed: %w", fn, err),
	}
}
