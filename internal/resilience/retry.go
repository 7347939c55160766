package resilience

import (
	"context"
	"time"

	"github.com/itc-club/club-applications/internal/errors"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	MaxAttempts     int              `json:"max_attempts"`
	InitialDelay    time.Duration    `json:"initial_delay"`
	RetryableErrors func(error) bool `json:"-"`
}

// StoreAppendConfig matches the record-store adapter's historical retry
// contract: a small fixed number of attempts with linearly increasing
// delay between them.
func StoreAppendConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 400 * time.Millisecond,
		RetryableErrors: func(err error) bool {
			return errors.IsRetryableError(err)
		},
	}
}

// RetryableFunc represents a function that can be retried
type RetryableFunc func() error

// RetryWithConfig executes a function with retry logic using custom
// configuration. The delay before retrying attempt n is InitialDelay * n.
func RetryWithConfig(ctx context.Context, config RetryConfig, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !config.RetryableErrors(err) {
			break
		}

		if attempt == config.MaxAttempts-1 {
			break
		}

		delay := config.InitialDelay * time.Duration(attempt+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// Retry executes a function with the store-append retry policy.
func Retry(ctx context.Context, fn RetryableFunc) error {
	return RetryWithConfig(ctx, StoreAppendConfig(), fn)
}
