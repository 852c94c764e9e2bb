package hydro

import (
	"fmt"
	"testing"
)

func stationsNamed(names ...string) []StationRecord {
	stations := make([]StationRecord, 0, len(names))
	for i, name := range names {
		stations = append(stations, StationRecord{
			ID:   fmt.Sprintf("st-%d", i),
			Name: name,
		})
	}
	return stations
}

func namesOf(stations []StationRecord) []string {
	names := make([]string, 0, len(stations))
	for _, st := range stations {
		names = append(names, st.Name)
	}
	return names
}

func TestResolveStripsGenericTermsBeforeMatching(t *testing.T) {
	stations := stationsNamed("Ronco", "Ronco di Brisighella", "Savio", "Lamone Faenza")

	res := Resolve(stations, "fiume ronco")
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", len(res.Matches), namesOf(res.Matches))
	}
	if res.Matches[0].Name != "Ronco" || res.Matches[1].Name != "Ronco di Brisighella" {
		t.Errorf("unexpected match order: %v", namesOf(res.Matches))
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("suggestions must be empty when matches exist, got %v", namesOf(res.Suggestions))
	}
}

func TestResolveMultiTokenOrderIndependent(t *testing.T) {
	stations := stationsNamed("Ronco di Brisighella", "Brisighella Nord")

	res := Resolve(stations, "brisighella ronco")
	if len(res.Matches) != 1 || res.Matches[0].Name != "Ronco di Brisighella" {
		t.Fatalf("expected single match on both tokens, got %v", namesOf(res.Matches))
	}
}

func TestResolveEmptyOrGenericQuery(t *testing.T) {
	stations := stationsNamed("Ronco", "Savio")

	for _, query := range []string{"", "   ", "fiume torrente", "rio, canale!"} {
		res := Resolve(stations, query)
		if len(res.Matches) != 0 || len(res.Suggestions) != 0 {
			t.Errorf("query %q: expected empty resolution, got matches=%v suggestions=%v",
				query, namesOf(res.Matches), namesOf(res.Suggestions))
		}
	}
}

func TestResolveSuggestionsStableAndCapped(t *testing.T) {
	// Ten stations, each sharing exactly one of the two query tokens.
	// No exact match exists, so the first five in original order must
	// come back as suggestions (all scores tie at 1).
	names := []string{
		"Alfa Uno", "Beta Uno", "Alfa Due", "Beta Due", "Alfa Tre",
		"Beta Tre", "Alfa Quattro", "Beta Quattro", "Alfa Cinque", "Beta Cinque",
	}
	stations := stationsNamed(names...)

	res := Resolve(stations, "alfa beta")
	if len(res.Matches) != 0 {
		t.Fatalf("expected no exact matches, got %v", namesOf(res.Matches))
	}
	if len(res.Suggestions) != MaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", MaxSuggestions, len(res.Suggestions))
	}
	for i, want := range names[:MaxSuggestions] {
		if res.Suggestions[i].Name != want {
			t.Errorf("suggestion %d: got %q, want %q (order not stable)", i, res.Suggestions[i].Name, want)
		}
	}
}

func TestResolveRanksHigherOverlapFirst(t *testing.T) {
	stations := stationsNamed("Solo Alfa", "Alfa e Beta insieme", "Solo Beta")

	res := Resolve(stations, "alfa beta gamma")
	if len(res.Matches) != 0 {
		t.Fatalf("expected no exact matches, got %v", namesOf(res.Matches))
	}
	if len(res.Suggestions) == 0 || res.Suggestions[0].Name != "Alfa e Beta insieme" {
		t.Errorf("expected two-token station ranked first, got %v", namesOf(res.Suggestions))
	}
}

func TestResolveNeverBothPopulated(t *testing.T) {
	stations := stationsNamed("Ronco", "Savio", "Lamone", "Senio", "Montone", "Rabbi")
	queries := []string{"ronco", "sav", "xyz", "ronco savio", "fiume", "", "lamone senio montone"}

	for _, q := range queries {
		res := Resolve(stations, q)
		if len(res.Matches) > 0 && len(res.Suggestions) > 0 {
			t.Errorf("query %q: matches and suggestions both non-empty", q)
		}
	}
}

func TestResolveIgnoresUnnamedStations(t *testing.T) {
	stations := []StationRecord{
		{ID: "a"},
		{ID: "b", Name: "Ronco"},
	}

	res := Resolve(stations, "ronco")
	if len(res.Matches) != 1 || res.Matches[0].ID != "b" {
		t.Fatalf("expected only the named station to match, got %v", namesOf(res.Matches))
	}

	res = Resolve(stations, "qualcosaltro")
	for _, st := range res.Suggestions {
		if st.Name == "" {
			t.Errorf("unnamed station surfaced as suggestion")
		}
	}
}

func TestFilterStations(t *testing.T) {
	stations := stationsNamed("Ronco", "Ronco di Brisighella", "Savio")

	filtered := FilterStations(stations, "RONCO")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 filtered stations, got %d", len(filtered))
	}

	if got := FilterStations(stations, ""); len(got) != len(stations) {
		t.Errorf("empty filter must keep everything, got %d", len(got))
	}
}
