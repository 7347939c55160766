package resilience

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/itc-club/club-applications/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	config := RetryConfig{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		RetryableErrors: func(error) bool { return true },
	}

	attempts := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		attempts++
		if attempts < 3 {
			return apperrors.NewStoreUnavailableError("flaky", nil)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	err := RetryWithConfig(context.Background(), StoreAppendConfig(), func() error {
		attempts++
		return apperrors.NewDuplicateEmailError("a@x.com")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.True(t, apperrors.IsDuplicateEmail(err))
}

func TestRetryExhaustsAttempts(t *testing.T) {
	config := RetryConfig{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		RetryableErrors: func(error) bool { return true },
	}

	attempts := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		attempts++
		return apperrors.NewStoreUnavailableError("still down", nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, func() error {
		t.Fatal("function should not run after cancellation")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
