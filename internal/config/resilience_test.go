package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultResilienceConfig(t *testing.T) {
	testCases := []struct {
		name        string
		config      RetryConfig
		maxAttempts int
		initialWait time.Duration
		maxWait     time.Duration
		timeout     time.Duration
	}{
		{"SheetRead", DefaultResilienceConfig.SheetRead, 3, 500 * time.Millisecond, 5 * time.Second, 30 * time.Second},
		{"SheetWrite", DefaultResilienceConfig.SheetWrite, 3, 1 * time.Second, 10 * time.Second, 30 * time.Second},
		{"BigQueryInsert", DefaultResilienceConfig.BigQueryInsert, 4, 1 * time.Second, 15 * time.Second, 60 * time.Second},
		{"Publish", DefaultResilienceConfig.Publish, 2, 2 * time.Second, 10 * time.Second, 45 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.config.MaxAttempts != tc.maxAttempts {
				t.Errorf("Expected MaxAttempts %d, got %d", tc.maxAttempts, tc.config.MaxAttempts)
			}
			if tc.config.InitialWait != tc.initialWait {
				t.Errorf("Expected InitialWait %v, got %v", tc.initialWait, tc.config.InitialWait)
			}
			if tc.config.MaxWait != tc.maxWait {
				t.Errorf("Expected MaxWait %v, got %v", tc.maxWait, tc.config.MaxWait)
			}
			if tc.config.Multiplier != 2.0 {
				t.Errorf("Expected Multiplier 2.0, got %f", tc.config.Multiplier)
			}
			if tc.config.Timeout != tc.timeout {
				t.Errorf("Expected Timeout %v, got %v", tc.timeout, tc.config.Timeout)
			}
			if err := tc.config.Validate(); err != nil {
				t.Errorf("Expected default config to be valid, got %v", err)
			}
		})
	}
}

func TestDefaultResilienceConfigImmutability(t *testing.T) {
	original := DefaultResilienceConfig

	modified := DefaultResilienceConfig
	modified.SheetWrite.MaxAttempts = 999

	if DefaultResilienceConfig.SheetWrite.MaxAttempts != original.SheetWrite.MaxAttempts {
		t.Error("DefaultResilienceConfig was unexpectedly modified")
	}
}

func TestRetryConfigValidate(t *testing.T) {
	valid := RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
		Timeout:     30 * time.Second,
	}

	testCases := []struct {
		name   string
		mutate func(c *RetryConfig)
		valid  bool
	}{
		{"valid config", func(c *RetryConfig) {}, true},
		{"zero timeout allowed", func(c *RetryConfig) { c.Timeout = 0 }, true},
		{"zero max attempts", func(c *RetryConfig) { c.MaxAttempts = 0 }, false},
		{"negative multiplier", func(c *RetryConfig) { c.Multiplier = -1.0 }, false},
		{"max below initial", func(c *RetryConfig) { c.MaxWait = 500 * time.Millisecond }, false},
		{"negative initial wait", func(c *RetryConfig) { c.InitialWait = -time.Second }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := valid
			tc.mutate(&config)

			err := config.Validate()
			if (err == nil) != tc.valid {
				t.Errorf("Expected validity %v, got error %v for config %+v", tc.valid, err, config)
			}
		})
	}
}

func TestResilienceConfigValidate(t *testing.T) {
	if err := DefaultResilienceConfig.Validate(); err != nil {
		t.Fatalf("Expected default resilience config to be valid, got %v", err)
	}

	broken := DefaultResilienceConfig
	broken.BigQueryInsert.MaxAttempts = 0

	err := broken.Validate()
	if err == nil {
		t.Fatal("Expected error for zero BigQuery attempts, got nil")
	}
	if !strings.Contains(err.Error(), "bigquery insert") {
		t.Errorf("Expected error to name the bigquery insert policy, got '%s'", err.Error())
	}
}

func TestRetryConfigBackoff(t *testing.T) {
	config := RetryConfig{
		MaxAttempts: 5,
		InitialWait: 1 * time.Second,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}

	expected := []time.Duration{0, 1 * time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for attempt, want := range expected {
		if got := config.Backoff(attempt); got != want {
			t.Errorf("Backoff(%d): expected %v, got %v", attempt, want, got)
		}
	}
}
