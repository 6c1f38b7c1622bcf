package app

// PersonalRecord represents a logged best performance for a run
type PersonalRecord struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"` // kilometers
	Time     string  `json:"time"`     // HH:MM:SS or MM:SS
	Date     string  `json:"date"`     // YYYY-MM-DD
	Notes    string  `json:"notes,omitempty"`
}

// SortKey selects the field the derived view is ordered by
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByDistance SortKey = "distance"
	SortByTime     SortKey = "time"
)

// SortDirection is the ordering direction of a SortConfig
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortConfig describes how the derived view is ordered
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// ParseSortKey validates a user-supplied sort key
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortByDate, SortByDistance, SortByTime:
		return k, true
	}
	return "", false
}

// ParseSortDirection validates a user-supplied sort direction
func ParseSortDirection(s string) (SortDirection, bool) {
	switch s {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return "", false
}

// RecordsSnapshot is the JSON document published for external consumers
type RecordsSnapshot struct {
	User    string           `json:"user"`
	Updated string           `json:"updated"`
	Count   int              `json:"count"`
	Sort    *SortConfig      `json:"sort,omitempty"`
	Filter  string           `json:"filter,omitempty"`
	Records []PersonalRecord `json:"records"`
}
