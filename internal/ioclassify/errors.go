package ioclassify

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func BinaryNotFoundError(path string) error {
	msg := "Classifier binary <em>%s</em> not found"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClassifyBinaryNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: binary not found at %s", fn, path),
	}
}

func InvokeError(err error) error {
	msg := "Failed to invoke classifier"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClassifyInvokeError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func ResultParseError(path string, err error) error {
	msg := "Failed to parse classifier output <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClassifyResultParseError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: parsing %s: %w", fn, path, err),
	}
}
