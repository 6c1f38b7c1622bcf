package config

import (
	"errors"
	"fmt"
	"time"
)

// Retry configuration constants for outward exports.
// Local storage flushes are never retried; see records.Store.
const (
	// Sheet Read retry configuration
	SheetReadMaxAttempts       = 3
	SheetReadInitialWait       = 500 * time.Millisecond
	SheetReadMaxWait           = 5 * time.Second
	SheetReadBackoffMultiplier = 2.0
	SheetReadTimeout           = 30 * time.Second

	// Sheet Write retry configuration
	SheetWriteMaxAttempts       = 3
	SheetWriteInitialWait       = 1 * time.Second
	SheetWriteMaxWait           = 10 * time.Second
	SheetWriteBackoffMultiplier = 2.0
	SheetWriteTimeout           = 30 * time.Second

	// BigQuery streaming insert retry configuration
	BigQueryInsertMaxAttempts       = 4
	BigQueryInsertInitialWait       = 1 * time.Second
	BigQueryInsertMaxWait           = 15 * time.Second
	BigQueryInsertBackoffMultiplier = 2.0
	BigQueryInsertTimeout           = 60 * time.Second

	// Snapshot publish retry configuration
	PublishMaxAttempts       = 2
	PublishInitialWait       = 2 * time.Second
	PublishMaxWait           = 10 * time.Second
	PublishBackoffMultiplier = 2.0
	PublishTimeout           = 45 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Timeout     time.Duration // per attempt; zero means no per-attempt deadline
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	SheetRead      RetryConfig
	SheetWrite     RetryConfig
	BigQueryInsert RetryConfig
	Publish        RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	SheetRead: RetryConfig{
		MaxAttempts: SheetReadMaxAttempts,
		InitialWait: SheetReadInitialWait,
		MaxWait:     SheetReadMaxWait,
		Multiplier:  SheetReadBackoffMultiplier,
		Timeout:     SheetReadTimeout,
	},
	SheetWrite: RetryConfig{
		MaxAttempts: SheetWriteMaxAttempts,
		InitialWait: SheetWriteInitialWait,
		MaxWait:     SheetWriteMaxWait,
		Multiplier:  SheetWriteBackoffMultiplier,
		Timeout:     SheetWriteTimeout,
	},
	BigQueryInsert: RetryConfig{
		MaxAttempts: BigQueryInsertMaxAttempts,
		InitialWait: BigQueryInsertInitialWait,
		MaxWait:     BigQueryInsertMaxWait,
		Multiplier:  BigQueryInsertBackoffMultiplier,
		Timeout:     BigQueryInsertTimeout,
	},
	Publish: RetryConfig{
		MaxAttempts: PublishMaxAttempts,
		InitialWait: PublishInitialWait,
		MaxWait:     PublishMaxWait,
		Multiplier:  PublishBackoffMultiplier,
		Timeout:     PublishTimeout,
	},
}

// Validate reports whether the configuration describes a usable retry policy
func (c RetryConfig) Validate() error {
	switch {
	case c.MaxAttempts <= 0:
		return errors.New("max attempts must be positive")
	case c.InitialWait < 0:
		return errors.New("initial wait must not be negative")
	case c.MaxWait < c.InitialWait:
		return errors.New("max wait must not be below initial wait")
	case c.Multiplier <= 0:
		return errors.New("multiplier must be positive")
	case c.Timeout < 0:
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Validate checks every retry policy and names the first invalid one
func (c ResilienceConfig) Validate() error {
	policies := []struct {
		name   string
		config RetryConfig
	}{
		{"sheet read", c.SheetRead},
		{"sheet write", c.SheetWrite},
		{"bigquery insert", c.BigQueryInsert},
		{"publish", c.Publish},
	}
	for _, p := range policies {
		if err := p.config.Validate(); err != nil {
			return fmt.Errorf("invalid %s retry config: %w", p.name, err)
		}
	}
	return nil
}

// Backoff returns the wait before retry number attempt (1 = after the first failure),
// growing by Multiplier and clamped to MaxWait
func (c RetryConfig) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}

	wait := float64(c.InitialWait)
	for i := 1; i < attempt; i++ {
		wait *= c.Multiplier
		if wait >= float64(c.MaxWait) {
			return c.MaxWait
		}
	}
	if time.Duration(wait) > c.MaxWait {
		return c.MaxWait
	}
	return time.Duration(wait)
}
