package hydro

import (
	"context"
	"log"
)

// SnapshotFetcher retrieves the current station list from the upstream
// sensor API.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (Snapshot, error)
}

// NameRetriever asks an external ranked-name oracle for candidate station
// names matching a free-text query.
type NameRetriever interface {
	RetrieveStationNames(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Service orchestrates snapshot fetching and query resolution for the
// tool and HTTP front-ends.
type Service struct {
	fetcher   SnapshotFetcher
	retriever NameRetriever
}

// NewService creates a Service. retriever may be nil, in which case
// resolution is purely local.
func NewService(fetcher SnapshotFetcher, retriever NameRetriever) *Service {
	return &Service{
		fetcher:   fetcher,
		retriever: retriever,
	}
}

// Snapshot fetches the current station list, dropping entries without a
// display name since they can never match or be listed.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	snap, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	named := make([]StationRecord, 0, len(snap.Stations))
	for _, st := range snap.Stations {
		if st.Name != "" {
			named = append(named, st)
		}
	}
	snap.Stations = named
	return snap, nil
}

// ResolveWithFallback resolves locally first and, only when that produces
// no matches and a retriever is configured, consults the oracle for up to
// maxResults candidate names. Oracle candidates are matched back against
// the station list by exact normalized name; when none survive, or the
// oracle fails in any way, the local result is returned unchanged.
func (s *Service) ResolveWithFallback(ctx context.Context, stations []StationRecord, query string, maxResults int) Resolution {
	local := Resolve(stations, query)
	if len(local.Matches) > 0 || s.retriever == nil {
		return local
	}

	names, err := s.retriever.RetrieveStationNames(ctx, query, maxResults)
	if err != nil {
		log.Printf("name retrieval failed for %q, keeping local result: %v", query, err)
		return local
	}
	if len(names) == 0 {
		return local
	}

	candidates := make(map[string]struct{}, len(names))
	for _, name := range names {
		if normalized := Normalize(name); normalized != "" {
			candidates[normalized] = struct{}{}
		}
	}

	var matches []StationRecord
	for _, st := range stations {
		if _, ok := candidates[Normalize(st.Name)]; ok {
			matches = append(matches, st)
		}
	}
	if len(matches) > 0 {
		return Resolution{Matches: matches}
	}
	return local
}
