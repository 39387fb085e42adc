package iocurate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

// FetchTaxonError wraps a store failure while assembling the update-mode
// purge scope from a changed specimen's resolved taxon_key.
func FetchTaxonError(err error) error {
	msg := "Failed to resolve affected taxon groups"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CurateStageError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
