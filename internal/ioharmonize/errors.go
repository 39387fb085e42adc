package ioharmonize

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func RequestError(query string, err error) error {
	msg := "Name service request failed for <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarmonizeRequestError,
		Msg:  msg,
		Vars: []any{query},
		Err:  fmt.Errorf("from %s: request failed for %s: %w", fn, query, err),
	}
}

func ResponseError(query string, status int) error {
	msg := "Name service returned status %d for <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HarmonizeResponseError,
		Msg:  msg,
		Vars: []any{status, query},
		Err:  fmt.Errorf("from %s: status %d for %s", fn, status, query),
	}
}
