package ingest

import (
	"fmt"
	"runtime"

	"github.com/boldcurate/eyebold/pkg/errcode"
	"github.com/gnames/gn"
)

func LayoutError(path string, err error) error {
	msg := "Cannot parse schema descriptor <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestLayoutError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot parse schema: %w", fn, err),
	}
}

func FileNotFoundError(path string, err error) error {
	msg := "Cannot open TSV file <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestFileNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open file: %w", fn, err),
	}
}

func EmptyFileError(path string) error {
	msg := "TSV file <em>%s</em> has no data rows"
	return &gn.Error{
		Code: errcode.IngestEmptyFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("empty ingest file: %s", path),
	}
}
