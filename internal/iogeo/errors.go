package iogeo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

func DownloadRequestError(err error) error {
	msg := "Occurrence download request failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeoDownloadRequestError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func DownloadKilledError(requestID string) error {
	msg := "Occurrence download <em>%s</em> was killed by the service"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeoDownloadKilledError,
		Msg:  msg,
		Vars: []any{requestID},
		Err:  fmt.Errorf("from %s: download %s killed", fn, requestID),
	}
}

func DownloadTimeoutError(requestID string, attempts int) error {
	msg := "Occurrence download <em>%s</em> exhausted %d retries"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeoDownloadTimeoutError,
		Msg:  msg,
		Vars: []any{requestID, attempts},
		Err:  fmt.Errorf("from %s: download %s exhausted %d retries", fn, requestID, attempts),
	}
}

func ArchiveReadError(zipPath string, err error) error {
	msg := "Failed to read occurrence archive <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeoArchiveReadError,
		Msg:  msg,
		Vars: []any{zipPath},
		Err:  fmt.Errorf("from %s: reading %s: %w", fn, zipPath, err),
	}
}
