package hydro

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "Sant'Agata sul Santerno" and "Rónco" compare on their base letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	genericTerms = regexp.MustCompile(`(?i)\b(fiume|torrente|rio|canale|fosso)\b`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes free text for name comparison: accents stripped,
// lowercased, every run of non-alphanumeric characters collapsed to a
// single space, trimmed. Idempotent.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = nonAlnumRuns.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// StripGenericTerms removes whole-word generic waterway nouns ("fiume
// ronco" -> "ronco") so queries match on the proper name alone.
func StripGenericTerms(s string) string {
	out := genericTerms.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRuns.ReplaceAllString(out, " "))
}
