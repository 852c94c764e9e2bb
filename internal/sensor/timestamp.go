package sensor

import "time"

// publicationTime computes the half-hour boundary the upstream aligns its
// readings to: the current time rounded down to :00 or :30, shifted back
// one hour while the local daylight-saving offset is in effect, plus 30
// minutes. The upstream publishes on this exact cadence and rejects
// unaligned timestamps.
func publicationTime(now time.Time) time.Time {
	minutes := 0
	if now.Minute() >= 30 {
		minutes = 30
	}
	rounded := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), minutes, 0, 0, now.Location())
	if rounded.IsDST() {
		rounded = rounded.Add(-time.Hour)
	}
	return rounded.Add(30 * time.Minute)
}
