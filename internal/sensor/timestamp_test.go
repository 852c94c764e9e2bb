package sensor

import (
	"testing"
	"time"
)

func TestPublicationTimeRoundsToNextHalfHour(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{
			time.Date(2024, 1, 15, 10, 12, 45, 0, time.UTC),
			time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 1, 15, 10, 42, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 1, 15, 23, 55, 0, 0, time.UTC),
			time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, c := range cases {
		if got := publicationTime(c.now); !got.Equal(c.want) {
			t.Errorf("publicationTime(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestPublicationTimeShiftsBackDuringDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Mid-July is squarely inside the daylight-saving window: the
	// rounded time moves back one hour before the half-hour is added.
	now := time.Date(2024, 7, 15, 10, 12, 0, 0, loc)
	want := time.Date(2024, 7, 15, 9, 30, 0, 0, loc)
	if got := publicationTime(now); !got.Equal(want) {
		t.Errorf("publicationTime(%v) = %v, want %v", now, got, want)
	}

	// Mid-January is standard time: no shift.
	now = time.Date(2024, 1, 15, 10, 12, 0, 0, loc)
	want = time.Date(2024, 1, 15, 10, 30, 0, 0, loc)
	if got := publicationTime(now); !got.Equal(want) {
		t.Errorf("publicationTime(%v) = %v, want %v", now, got, want)
	}
}
