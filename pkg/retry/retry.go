// Package retry provides the single retry abstraction used by the
// harmoniser and the geo downloader, so backoff logic is not entangled with
// either component's response parsing.
package retry

import (
	"context"
	"time"
)

// Do calls op up to n+1 times (the initial attempt plus n retries), sleeping
// delay between attempts. It returns the first nil-error result, or the last
// error if every attempt failed. Honours ctx cancellation between attempts.
func Do(ctx context.Context, n int, delay time.Duration, op func() error) error {
	var err error
	for attempt := 0; attempt <= n; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		err = op()
		if err == nil {
			return nil
		}
	}
	return err
}
