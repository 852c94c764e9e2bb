package hydro

import (
	"time"
)

// StationRecord is one hydrometric station as published by the upstream
// sensor API. Records are produced fresh on every fetch and never mutated.
type StationRecord struct {
	ID   string `json:"idstazione"`
	Name string `json:"nomestaz"`

	// Value is the current reading. The upstream feed sends a number,
	// null, or occasionally a free-form string, so it is kept untyped
	// and rendered through FormatValue.
	Value any `json:"value"`

	// Alert thresholds, nullable upstream.
	Threshold1 *float64 `json:"soglia1"`
	Threshold2 *float64 `json:"soglia2"`
	Threshold3 *float64 `json:"soglia3"`

	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Snapshot pairs a fetched station list with the publication timestamp
// the request was aligned to. Always UTC.
type Snapshot struct {
	Timestamp time.Time       `json:"timestamp"`
	Stations  []StationRecord `json:"stations"`
}

// Resolution is the outcome of matching a free-text query against a
// station list. Matches and Suggestions are never both non-empty:
// suggestions are only produced when no exact match exists, and are
// capped at MaxSuggestions.
type Resolution struct {
	Matches     []StationRecord `json:"matches"`
	Suggestions []StationRecord `json:"suggestions"`
}

// MaxSuggestions caps the ranked suggestion list returned on a miss.
const MaxSuggestions = 5
