package iopurge

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func FetchGroupError(taxonKey int64, err error) error {
	msg := "Failed to fetch sequences for taxon <em>%d</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PurgeFetchError,
		Msg:  msg,
		Vars: []any{taxonKey},
		Err:  fmt.Errorf("from %s: fetch failed for taxon %d: %w", fn, taxonKey, err),
	}
}
