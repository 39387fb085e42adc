package ioharmonize

import "time"

func retryDelay(opts Options) time.Duration {
	if opts.RetryDelay <= 0 {
		return 30 * time.Second
	}
	return time.Duration(opts.RetryDelay) * time.Second
}
