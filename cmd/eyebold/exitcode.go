package main

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"

	"github.com/boldcurate/eyebold/pkg/errcode"
)

// invalidArgError marks a flag/argument validation failure the CLI layer
// caught before reaching any gn.Error-producing component.
type invalidArgError struct{ error }

func invalidArgErrorf(format string, args ...any) error {
	return invalidArgError{fmt.Errorf(format, args...)}
}

// exitCode maps a returned error to the process exit status: 0 success
// (never reached here, main only calls this on error), 1 internal
// failure, 2 invalid argument, 3 store unavailable.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var invalidArg invalidArgError
	if errors.As(err, &invalidArg) {
		return 2
	}

	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return 1
	}

	switch gnErr.Code {
	case errcode.StoreOpenError, errcode.StoreNotFoundError:
		return 3
	case errcode.IngestFileNotFoundError, errcode.IngestLayoutError,
		errcode.IngestUnknownColumnError, errcode.IngestEmptyFileError:
		return 2
	default:
		return 1
	}
}
