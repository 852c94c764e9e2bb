package mcpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"idrometria/internal/hydro"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// renderLivello produces the Italian text response for the river-level
// tool: either a header plus per-station lines, or a not-found message
// with nearby suggestions.
func renderLivello(ts time.Time, fiume string, res hydro.Resolution, maxResults int) string {
	if len(res.Matches) == 0 {
		lines := []string{fmt.Sprintf("Nessuna stazione trovata per: %q.", fiume)}
		if len(res.Suggestions) > 0 {
			lines = append(lines, "Possibili stazioni vicine:")
			for _, st := range res.Suggestions {
				lines = append(lines, "- "+st.Name)
			}
		}
		return strings.Join(lines, "\n")
	}

	header := fmt.Sprintf("Livello idrometrico (timestamp richiesta %s) per %q:",
		ts.UTC().Format(timestampLayout), fiume)
	return header + "\n" + renderStations(res.Matches, maxResults)
}

// renderElenco lists station names, one bullet per line.
func renderElenco(stations []hydro.StationRecord) string {
	if len(stations) == 0 {
		return "Nessuna stazione disponibile con il filtro indicato."
	}
	lines := make([]string, 0, len(stations))
	for _, st := range stations {
		lines = append(lines, "- "+st.Name)
	}
	return strings.Join(lines, "\n")
}

func renderStations(stations []hydro.StationRecord, maxResults int) string {
	limited := stations
	if maxResults > 0 && len(limited) > maxResults {
		limited = limited[:maxResults]
	}
	lines := make([]string, 0, len(limited))
	for _, st := range limited {
		lines = append(lines, fmt.Sprintf("- %s: %s (soglie %s/%s/%s)",
			st.Name,
			hydro.FormatValue(st.Value),
			renderThreshold(st.Threshold1),
			renderThreshold(st.Threshold2),
			renderThreshold(st.Threshold3),
		))
	}
	return strings.Join(lines, "\n")
}

func renderThreshold(t *float64) string {
	if t == nil {
		return "0"
	}
	return strconv.FormatFloat(*t, 'g', -1, 64)
}
