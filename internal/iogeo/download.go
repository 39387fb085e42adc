package iogeo

import (
	"context"
	"time"

	"github.com/boldcurate/eyebold/pkg/geo"
	"github.com/boldcurate/eyebold/pkg/retry"
)

// Options configures one geo-evaluation pass.
type Options struct {
	Workers           int
	BatchSize         int
	ChunkSize         int
	Epsilon           float64
	Retries           int
	RetryDelaySeconds int
	PollInterval      time.Duration

	// CacheDir holds extracted archives during a run; entries are removed
	// once their aggregate has been folded into the climate store.
	CacheDir string
}

// runDownload drives one batch through SUBMIT -> POLLING ->
// (SUCCEEDED | KILLED | ERROR), polling at opts.PollInterval and retrying
// transport errors on submit, poll and fetch up to opts.Retries times,
// waiting opts.RetryDelaySeconds between attempts (30 s when unset). It
// returns the local path of the fetched zip archive.
func runDownload(ctx context.Context, dl geo.Downloader, taxonKeys []int64, opts Options) (string, error) {
	var requestID string
	err := retry.Do(ctx, opts.Retries, retryDelay(opts), func() error {
		id, err := dl.Submit(ctx, taxonKeys)
		if err != nil {
			return err
		}
		requestID = id
		return nil
	})
	if err != nil {
		return "", DownloadRequestError(err)
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 60 * time.Second
	}

	attempts := 0
	for {
		var status geo.DownloadStatus
		err := retry.Do(ctx, opts.Retries, retryDelay(opts), func() error {
			s, err := dl.Poll(ctx, requestID)
			if err != nil {
				return err
			}
			status = s
			return nil
		})
		if err != nil {
			return "", DownloadTimeoutError(requestID, opts.Retries)
		}

		switch status {
		case geo.StatusSucceeded:
			var zipPath string
			err := retry.Do(ctx, opts.Retries, retryDelay(opts), func() error {
				p, err := dl.Fetch(ctx, requestID)
				if err != nil {
					return err
				}
				zipPath = p
				return nil
			})
			if err != nil {
				return "", DownloadRequestError(err)
			}
			return zipPath, nil
		case geo.StatusKilled:
			return "", DownloadKilledError(requestID)
		default:
			attempts++
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(pollInterval):
			}
		}
	}
}

func retryDelay(opts Options) time.Duration {
	if opts.RetryDelaySeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(opts.RetryDelaySeconds) * time.Second
}

func batches(keys []int64, size int) [][]int64 {
	if size <= 0 {
		return [][]int64{keys}
	}
	var out [][]int64
	for i := 0; i < len(keys); i += size {
		end := i + size
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[i:end])
	}
	return out
}
