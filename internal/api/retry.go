package api

import (
	"context"
	"fmt"
	"math"
	"time"
)

// RetryConfig configures the backoff schedule for transient failures.
// The schedule is deterministic: no jitter is applied.
type RetryConfig struct {
	// Tries is the maximum number of attempts, including the first.
	Tries int
	// BaseInterval is the wait after the first failed attempt.
	BaseInterval time.Duration
	// Multiplier is the growth factor applied per attempt.
	Multiplier float64
	// MaxInterval caps each individual wait.
	MaxInterval time.Duration
	// MaxElapsedTime caps the cumulative time spent across attempts and
	// waits. Zero means no cap.
	MaxElapsedTime time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Tries:          3,
		BaseInterval:   500 * time.Millisecond,
		Multiplier:     1.5,
		MaxInterval:    60 * time.Second,
		MaxElapsedTime: 900 * time.Second,
	}
}

// Validate checks the configuration invariants.
func (r *RetryConfig) Validate() error {
	if r.Tries < 1 {
		return fmt.Errorf("retry config: tries must be >= 1, got %d", r.Tries)
	}
	if r.BaseInterval <= 0 {
		return fmt.Errorf("retry config: base interval must be > 0, got %v", r.BaseInterval)
	}
	if r.Multiplier <= 0 {
		return fmt.Errorf("retry config: multiplier must be > 0, got %v", r.Multiplier)
	}
	if r.MaxInterval <= 0 {
		return fmt.Errorf("retry config: max interval must be > 0, got %v", r.MaxInterval)
	}
	if r.MaxElapsedTime < 0 {
		return fmt.Errorf("retry config: max elapsed time must be >= 0, got %v", r.MaxElapsedTime)
	}
	return nil
}

// Interval returns the wait after failed attempt n (1-indexed):
// min(BaseInterval * Multiplier^(n-1), MaxInterval).
func (r *RetryConfig) Interval(attempt int) time.Duration {
	interval := float64(r.BaseInterval) * math.Pow(r.Multiplier, float64(attempt-1))
	if interval > float64(r.MaxInterval) {
		return r.MaxInterval
	}
	return time.Duration(interval)
}

// ShouldRetry reports whether another attempt is allowed after failed
// attempt n (1-indexed) with the given cumulative elapsed time. The
// attempt budget and the elapsed-time budget are both enforced; the
// upcoming wait counts against the elapsed-time budget.
func (r *RetryConfig) ShouldRetry(attempt int, elapsed time.Duration) bool {
	if attempt >= r.Tries {
		return false
	}
	if r.MaxElapsedTime > 0 && elapsed+r.Interval(attempt) > r.MaxElapsedTime {
		return false
	}
	return true
}

// Wait blocks for the backoff interval after failed attempt n, or until
// the context is done.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Interval(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
