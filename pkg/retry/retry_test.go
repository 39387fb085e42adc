package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boldcurate/eyebold/pkg/retry"
	"github.com/stretchr/testify/assert"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	wantErr := errors.New("permanent")
	err := retry.Do(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls) // initial attempt + 2 retries
}

func TestDo_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry.Do(ctx, 3, time.Hour, func() error {
		calls++
		return errors.New("always fails")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "first attempt always runs before the first sleep")
}
