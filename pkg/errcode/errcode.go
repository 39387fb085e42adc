// Package errcode enumerates the structured error codes eyebold attaches to
// gn.Error values so that callers (CLI, tests) can switch on failure kind
// instead of parsing messages.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Store errors (C2)
	StoreOpenError
	StoreCreateSchemaError
	StoreNotFoundError
	StoreQueryError
	StoreInsertError
	StoreUpdateError
	StoreCloseError

	// Ingest errors (C3)
	IngestLayoutError
	IngestFileNotFoundError
	IngestParseRowError
	IngestUnknownColumnError
	IngestEmptyFileError

	// Harmonize errors (C4)
	HarmonizeRequestError
	HarmonizeResponseError
	HarmonizeExhaustedRetriesError
	HarmonizeUnknownRankError

	// Purge errors (C5)
	PurgeInvalidRegimeError
	PurgeFetchError

	// Geo errors (C7)
	GeoDownloadRequestError
	GeoDownloadKilledError
	GeoDownloadTimeoutError
	GeoArchiveReadError

	// Classify errors (C8)
	ClassifyBinaryNotFoundError
	ClassifyInvokeError
	ClassifyResultParseError

	// Curate errors (C9)
	CurateStageError

	// Export errors (C10)
	ExportWriteError
)
