package records

import (
	"sync"

	"pr_tracker/internal/app"
	"pr_tracker/internal/domain/record"
	"pr_tracker/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store owns one user's personal records.
//
// The in-memory list is authoritative. Every mutation rewrites the whole list
// to the storage slot while holding the store lock, so flushes never interleave.
// Readers always receive copies.
type Store struct {
	mu    sync.Mutex
	kv    storage.KeyValueStore
	key   string
	newID func() string

	records []app.PersonalRecord
	filter  *string
	sort    *app.SortConfig

	view        []app.PersonalRecord
	viewValid   bool
	derivations int
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the random UUID generator used by Add
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Open loads the records stored under key.
// Missing or unreadable data yields an empty store; Open never fails.
func Open(kv storage.KeyValueStore, key string, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     key,
		newID:   uuid.NewString,
		records: []app.PersonalRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s
}

func (s *Store) load() {
	value, ok, err := s.kv.Get(s.key)
	if err != nil {
		log.Error().
			Err(err).
			Str("key", s.key).
			Msg("Failed to read personal records; starting with an empty list")
		return
	}
	if !ok {
		log.Debug().Str("key", s.key).Msg("No stored personal records")
		return
	}

	records, version, err := Decode(value)
	if err != nil {
		log.Error().
			Err(err).
			Str("key", s.key).
			Msg("Stored personal records are corrupt; starting with an empty list")
		return
	}

	if version < CurrentVersion {
		log.Info().
			Str("key", s.key).
			Int("from_version", version).
			Int("to_version", CurrentVersion).
			Msg("Loaded legacy personal records; they will be rewritten on the next change")
	}

	s.records = records
	log.Debug().
		Str("key", s.key).
		Int("records", len(records)).
		Msg("Loaded personal records")
}

// flushLocked writes the full list to storage. Failures are logged and swallowed:
// the in-memory list stays authoritative for the rest of the session.
func (s *Store) flushLocked() {
	data, err := Encode(s.records)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("Failed to encode personal records")
		return
	}

	if err := s.kv.Set(s.key, data); err != nil {
		log.Error().
			Err(err).
			Str("key", s.key).
			Int("records", len(s.records)).
			Msg("Failed to persist personal records; changes are kept in memory only")
		return
	}

	log.Debug().Str("key", s.key).Int("records", len(s.records)).Msg("Persisted personal records")
}

// Add assigns a new ID to r, appends it and persists. Any ID on r is ignored.
func (s *Store) Add(r app.PersonalRecord) app.PersonalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.newID()
	s.records = append(s.records, r)
	s.viewValid = false
	s.flushLocked()

	return r
}

// Update replaces the record with r.ID by r in full.
// Returns false and leaves the store untouched when no record has that ID.
func (s *Store) Update(r app.PersonalRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			s.viewValid = false
			s.flushLocked()
			return true
		}
	}

	log.Debug().Str("id", r.ID).Msg("Update skipped: no personal record with this ID")
	return false
}

// Delete removes the record with id; returns false when it was absent
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]app.PersonalRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(s.records) {
		return false
	}

	s.records = kept
	s.viewValid = false
	s.flushLocked()
	return true
}

// Import appends records in one flush, keeping their IDs when usable.
// Blank IDs and IDs already present get a fresh one. Returns the number imported.
func (s *Store) Import(incoming []app.PersonalRecord) int {
	if len(incoming) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[string]bool, len(s.records)+len(incoming))
	for _, r := range s.records {
		ids[r.ID] = true
	}

	for _, r := range incoming {
		if r.ID == "" || ids[r.ID] {
			r.ID = s.newID()
		}
		ids[r.ID] = true
		s.records = append(s.records, r)
	}

	s.viewValid = false
	s.flushLocked()
	return len(incoming)
}

// Records returns a copy of the authoritative list in insertion order
func (s *Store) Records() []app.PersonalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.records)
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// View returns the filtered and sorted records.
// The pipeline only reruns after the records, filter or sort configuration change.
func (s *Store) View() []app.PersonalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.viewValid {
		s.view = record.Derive(s.records, s.filter, s.sort)
		s.viewValid = true
		s.derivations++
	}
	return clone(s.view)
}

// Derivations reports how many times the view pipeline has run
func (s *Store) Derivations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derivations
}

// SetFilter sets the distance filter; nil or "all" disables filtering
func (s *Store) SetFilter(filter *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sameFilter(s.filter, filter) {
		return
	}
	if filter == nil {
		s.filter = nil
	} else {
		v := *filter
		s.filter = &v
	}
	s.viewValid = false
}

// Filter returns the current distance filter, nil when unset
func (s *Store) Filter() *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter == nil {
		return nil
	}
	v := *s.filter
	return &v
}

// SetSort replaces the sort configuration; nil keeps insertion order
func (s *Store) SetSort(cfg *app.SortConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSortLocked(cfg)
}

// RequestSort applies a sort request with toggle semantics and returns the resulting configuration
func (s *Store) RequestSort(key app.SortKey, direction *app.SortDirection) app.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := record.NextSortConfig(s.sort, key, direction)
	s.setSortLocked(next)
	return *next
}

func (s *Store) setSortLocked(cfg *app.SortConfig) {
	if sameSort(s.sort, cfg) {
		return
	}
	if cfg == nil {
		s.sort = nil
	} else {
		c := *cfg
		s.sort = &c
	}
	s.viewValid = false
}

// Sort returns the current sort configuration, nil when unset
func (s *Store) Sort() *app.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sort == nil {
		return nil
	}
	c := *s.sort
	return &c
}

func sameFilter(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameSort(a, b *app.SortConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clone(records []app.PersonalRecord) []app.PersonalRecord {
	out := make([]app.PersonalRecord, len(records))
	copy(out, records)
	return out
}
