package sensor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

const samplePayload = `[
	{"idstazione": "-/1001", "nomestaz": "Ronco", "value": 0.86,
	 "soglia1": 1.5, "soglia2": 2.0, "soglia3": 2.8, "lon": 12.05, "lat": 44.22},
	{"idstazione": "-/1002", "nomestaz": "Savio", "value": null,
	 "soglia1": null, "soglia2": null, "soglia3": null, "lon": 12.24, "lat": 44.15}
]`

func TestFetchSnapshot(t *testing.T) {
	var gotVariabile, gotTime string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVariabile = r.URL.Query().Get("variabile")
		gotTime = r.URL.Query().Get("time")
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(samplePayload)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	now := time.Date(2024, 1, 15, 10, 12, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	snap, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotVariabile != hydrometricVariable {
		t.Errorf("unexpected variabile parameter: %q", gotVariabile)
	}
	wantTS := publicationTime(now)
	if gotTime != strconv.FormatInt(wantTS.UnixMilli(), 10) {
		t.Errorf("unexpected time parameter: %q, want %d", gotTime, wantTS.UnixMilli())
	}
	if !snap.Timestamp.Equal(wantTS) {
		t.Errorf("snapshot timestamp %v, want %v", snap.Timestamp, wantTS)
	}

	if len(snap.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(snap.Stations))
	}
	first := snap.Stations[0]
	if first.Name != "Ronco" || first.ID != "-/1001" {
		t.Errorf("unexpected first station: %+v", first)
	}
	if v, ok := first.Value.(float64); !ok || v != 0.86 {
		t.Errorf("unexpected value: %v", first.Value)
	}
	if first.Threshold1 == nil || *first.Threshold1 != 1.5 {
		t.Errorf("unexpected threshold: %v", first.Threshold1)
	}
	if snap.Stations[1].Value != nil {
		t.Errorf("expected nil value for missing reading, got %v", snap.Stations[1].Value)
	}
}

func TestFetchSnapshotErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	if _, err := client.FetchSnapshot(context.Background()); err == nil {
		t.Fatal("expected error on non-success status")
	}
}

func TestFetchSnapshotRejectsNonArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"error": "unexpected"}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	if _, err := client.FetchSnapshot(context.Background()); err == nil {
		t.Fatal("expected error on non-array payload")
	}
}
