package api

import (
	"context"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.Tries != 3 {
		t.Errorf("Tries = %d, want 3", cfg.Tries)
	}
	if cfg.BaseInterval != 500*time.Millisecond {
		t.Errorf("BaseInterval = %v, want 500ms", cfg.BaseInterval)
	}
	if cfg.Multiplier != 1.5 {
		t.Errorf("Multiplier = %v, want 1.5", cfg.Multiplier)
	}
	if cfg.MaxInterval != 60*time.Second {
		t.Errorf("MaxInterval = %v, want 60s", cfg.MaxInterval)
	}
	if cfg.MaxElapsedTime != 900*time.Second {
		t.Errorf("MaxElapsedTime = %v, want 900s", cfg.MaxElapsedTime)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRetryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RetryConfig)
		wantErr bool
	}{
		{"valid", func(c *RetryConfig) {}, false},
		{"zero tries", func(c *RetryConfig) { c.Tries = 0 }, true},
		{"negative tries", func(c *RetryConfig) { c.Tries = -1 }, true},
		{"zero base interval", func(c *RetryConfig) { c.BaseInterval = 0 }, true},
		{"zero multiplier", func(c *RetryConfig) { c.Multiplier = 0 }, true},
		{"zero max interval", func(c *RetryConfig) { c.MaxInterval = 0 }, true},
		{"negative max elapsed", func(c *RetryConfig) { c.MaxElapsedTime = -time.Second }, true},
		{"zero max elapsed is unlimited", func(c *RetryConfig) { c.MaxElapsedTime = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRetryConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryConfig_Interval(t *testing.T) {
	cfg := &RetryConfig{
		Tries:        3,
		BaseInterval: 500 * time.Millisecond,
		Multiplier:   1.5,
		MaxInterval:  60 * time.Second,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},  // base * 1.5^0
		{2, 750 * time.Millisecond},  // base * 1.5^1
		{3, 1125 * time.Millisecond}, // base * 1.5^2
	}

	for _, tt := range tests {
		if got := cfg.Interval(tt.attempt); got != tt.expected {
			t.Errorf("Interval(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestRetryConfig_IntervalCap(t *testing.T) {
	cfg := &RetryConfig{
		Tries:        10,
		BaseInterval: time.Second,
		Multiplier:   2.0,
		MaxInterval:  5 * time.Second,
	}

	// 1s, 2s, 4s, then capped.
	if got := cfg.Interval(3); got != 4*time.Second {
		t.Errorf("Interval(3) = %v, want 4s", got)
	}
	for attempt := 4; attempt <= 8; attempt++ {
		if got := cfg.Interval(attempt); got != 5*time.Second {
			t.Errorf("Interval(%d) = %v, want 5s cap", attempt, got)
		}
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := &RetryConfig{
		Tries:        3,
		BaseInterval: 500 * time.Millisecond,
		Multiplier:   1.5,
		MaxInterval:  60 * time.Second,
	}

	tests := []struct {
		name     string
		attempt  int
		elapsed  time.Duration
		expected bool
	}{
		{"after first attempt", 1, 0, true},
		{"after second attempt", 2, time.Second, true},
		{"third attempt is last", 3, time.Second, false},
		{"past the budget", 4, time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldRetry(tt.attempt, tt.elapsed); got != tt.expected {
				t.Errorf("ShouldRetry(%d, %v) = %v, want %v", tt.attempt, tt.elapsed, got, tt.expected)
			}
		})
	}
}

func TestRetryConfig_ShouldRetry_MaxElapsed(t *testing.T) {
	cfg := &RetryConfig{
		Tries:          5,
		BaseInterval:   time.Second,
		Multiplier:     1.0,
		MaxInterval:    time.Second,
		MaxElapsedTime: 10 * time.Second,
	}

	// The upcoming 1s wait still fits inside the 10s budget.
	if !cfg.ShouldRetry(1, 8*time.Second) {
		t.Error("ShouldRetry(1, 8s) = false, want true")
	}
	// 9.5s elapsed + 1s wait would exceed the budget.
	if cfg.ShouldRetry(1, 9500*time.Millisecond) {
		t.Error("ShouldRetry(1, 9.5s) = true, want false")
	}
}

func TestRetryConfig_Wait_ContextCancelled(t *testing.T) {
	cfg := &RetryConfig{
		Tries:        3,
		BaseInterval: time.Minute,
		Multiplier:   1.0,
		MaxInterval:  time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cfg.Wait(ctx, 1); err != context.Canceled {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestRetryConfig_Wait_Elapses(t *testing.T) {
	cfg := &RetryConfig{
		Tries:        3,
		BaseInterval: 10 * time.Millisecond,
		Multiplier:   1.0,
		MaxInterval:  10 * time.Millisecond,
	}

	start := time.Now()
	if err := cfg.Wait(context.Background(), 1); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 10ms", elapsed)
	}
}
