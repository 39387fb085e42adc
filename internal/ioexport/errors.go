package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func WriteError(path string, err error) error {
	msg := "Failed to write export file <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: writing %s: %w", fn, path, err),
	}
}

func UnknownFormatError(format string) error {
	msg := "Unknown export format <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: []any{format},
		Err:  fmt.Errorf("from %s: unknown export format %q", fn, format),
	}
}
