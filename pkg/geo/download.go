package geo

import "context"

// DownloadStatus is the external service's reported state for one
// submitted occurrence-download request.
type DownloadStatus string

const (
	StatusRunning   DownloadStatus = "RUNNING"
	StatusSucceeded DownloadStatus = "SUCCEEDED"
	StatusKilled    DownloadStatus = "KILLED"
)

// Downloader is the external occurrence-download service boundary:
// submit a batch of taxon keys, poll until the bulk TSV is ready, fetch
// the resulting zip archive. eyebold never implements the download
// service itself — internal/iogeo drives this interface through the
// SUBMIT → POLLING → (SUCCEEDED | KILLED | ERROR) state machine.
type Downloader interface {
	// Submit requests an occurrence download restricted to taxonKeys and
	// returns the service's request id.
	Submit(ctx context.Context, taxonKeys []int64) (requestID string, err error)

	// Poll reports the current status of a previously submitted request.
	Poll(ctx context.Context, requestID string) (DownloadStatus, error)

	// Fetch downloads the completed request's zip archive to a local path
	// and returns that path.
	Fetch(ctx context.Context, requestID string) (zipPath string, err error)
}

// Batch groups the taxon keys evaluated in one download request.
type Batch struct {
	TaxonKeys []int64
}
