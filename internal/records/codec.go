package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pr_tracker/internal/app"
)

// CurrentVersion is the persisted format version written by Encode.
// Version 0 is the legacy bare JSON array with no envelope.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned when stored data carries an unknown format version
var ErrUnsupportedVersion = errors.New("unsupported personal records format version")

type envelope struct {
	Version int                  `json:"version"`
	Records []app.PersonalRecord `json:"records"`
}

// Encode serializes the full record list into the versioned envelope
func Encode(records []app.PersonalRecord) (string, error) {
	if records == nil {
		records = []app.PersonalRecord{}
	}

	data, err := json.Marshal(envelope{Version: CurrentVersion, Records: records})
	if err != nil {
		return "", fmt.Errorf("failed to encode personal records: %w", err)
	}
	return string(data), nil
}

// Decode parses stored data and reports the format version it was written in
func Decode(data string) ([]app.PersonalRecord, int, error) {
	trimmed := strings.TrimSpace(data)

	if strings.HasPrefix(trimmed, "[") {
		var legacy []app.PersonalRecord
		if err := json.Unmarshal([]byte(trimmed), &legacy); err != nil {
			return nil, 0, fmt.Errorf("failed to decode legacy personal records: %w", err)
		}
		return nonNil(legacy), 0, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, 0, fmt.Errorf("failed to decode personal records: %w", err)
	}
	if env.Version < 1 || env.Version > CurrentVersion {
		return nil, env.Version, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	return nonNil(env.Records), env.Version, nil
}

func nonNil(records []app.PersonalRecord) []app.PersonalRecord {
	if records == nil {
		return []app.PersonalRecord{}
	}
	return records
}
