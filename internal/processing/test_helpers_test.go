package processing

import (
	"fmt"
	"testing"
	"time"

	"pr_tracker/internal/app"
	"pr_tracker/internal/config"
	"pr_tracker/internal/records"
	"pr_tracker/internal/storage"
)

// fastRetry keeps retry tests quick while still exercising backoff
func fastRetry(attempts int) config.RetryConfig {
	return config.RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  2.0,
		Timeout:     time.Second,
	}
}

func fastResilience() config.ResilienceConfig {
	return config.ResilienceConfig{
		SheetRead:      fastRetry(2),
		SheetWrite:     fastRetry(3),
		BigQueryInsert: fastRetry(2),
		Publish:        fastRetry(2),
	}
}

// newTestStore creates a store seeded with records, backed by memory
func newTestStore(t *testing.T, seed ...app.PersonalRecord) *records.Store {
	t.Helper()
	n := 0
	store := records.Open(storage.NewMemoryStore(), "personalRecords:test", records.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	for _, r := range seed {
		store.Add(r)
	}
	return store
}

func sampleRecords() []app.PersonalRecord {
	return []app.PersonalRecord{
		{Distance: 5, Time: "22:10", Date: "2024-03-01"},
		{Distance: 10, Time: "47:30", Date: "2024-04-14"},
		{Distance: 5, Time: "21:45", Date: "2024-06-09", Notes: "parkrun"},
	}
}
