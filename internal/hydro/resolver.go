package hydro

import (
	"sort"
	"strings"
)

// Resolve matches a free-text river/station query against a station list.
//
// A station is an exact match when its normalized name contains every
// query token as a substring. When at least one exact match exists all of
// them are returned, in their original relative order. Otherwise stations
// are scored by how many query tokens their name contains and the top
// MaxSuggestions become suggestions; ties keep original order.
func Resolve(stations []StationRecord, query string) Resolution {
	cleaned := Normalize(StripGenericTerms(query))
	if cleaned == "" {
		return Resolution{}
	}
	tokens := strings.Fields(cleaned)

	var matches []StationRecord
	for _, st := range stations {
		name := Normalize(st.Name)
		all := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				all = false
				break
			}
		}
		if all {
			matches = append(matches, st)
		}
	}
	if len(matches) > 0 {
		return Resolution{Matches: matches}
	}

	type scoredStation struct {
		score   int
		station StationRecord
	}
	var scored []scoredStation
	for _, st := range stations {
		name := Normalize(st.Name)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, scoredStation{score: score, station: st})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > MaxSuggestions {
		scored = scored[:MaxSuggestions]
	}
	suggestions := make([]StationRecord, 0, len(scored))
	for _, s := range scored {
		suggestions = append(suggestions, s.station)
	}
	return Resolution{Suggestions: suggestions}
}

// FilterStations keeps the stations whose normalized name contains the
// normalized filter as a substring. An empty filter keeps everything.
func FilterStations(stations []StationRecord, filter string) []StationRecord {
	normalized := Normalize(filter)
	if normalized == "" {
		return stations
	}
	var kept []StationRecord
	for _, st := range stations {
		if strings.Contains(Normalize(st.Name), normalized) {
			kept = append(kept, st)
		}
	}
	return kept
}
