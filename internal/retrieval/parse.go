package retrieval

import (
	"encoding/json"
	"regexp"
)

// arraySpan grabs the outermost bracketed span in a blob of text,
// newlines included.
var arraySpan = regexp.MustCompile(`(?s)\[.*\]`)

// ParseJSONArray parses model output that is supposed to be a bare JSON
// array but sometimes arrives wrapped in prose or formatting. It first
// tries the whole text; on a parse failure it retries on the first
// bracketed span; anything else yields no elements.
func ParseJSONArray(text string) []any {
	if text == "" {
		return nil
	}

	var direct any
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		if arr, ok := direct.([]any); ok {
			return arr
		}
		return nil
	}

	span := arraySpan.FindString(text)
	if span == "" {
		return nil
	}
	var scanned any
	if err := json.Unmarshal([]byte(span), &scanned); err == nil {
		if arr, ok := scanned.([]any); ok {
			return arr
		}
	}
	return nil
}
