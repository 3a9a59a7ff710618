package runner

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy defines how often and how patiently a command is retried.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int `json:"attempts"`

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration `json:"baseDelay"`

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration `json:"maxDelay"`

	// UseJitter spreads delays between 0.5x and 1.5x.
	UseJitter bool `json:"useJitter"`
}

// DefaultPolicy tries three times starting at a two second delay.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		BaseDelay: 2 * time.Second,
		MaxDelay:  30 * time.Second,
	}
}

// Retry runs fn until it succeeds, the attempts are exhausted, or ctx ends.
// fn receives the 1-based attempt number. It returns the number of attempts
// made and the last error.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) (int, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return attempt, err
		}

		err := fn(attempt + 1)
		if err == nil {
			return attempt + 1, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return attempt + 1, err
		}

		if attempt < attempts-1 {
			delay := CalculateBackoff(attempt, policy.BaseDelay, policy.MaxDelay, policy.UseJitter)
			select {
			case <-ctx.Done():
				return attempt + 1, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return attempts, lastErr
}

// CalculateBackoff returns baseDelay * 2^attempt, capped at maxDelay.
func CalculateBackoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if useJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}

	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
