package assist

import (
	"strings"

	"hsn_validator/internal/hsn"
)

// commandPhrases are stripped, first occurrence only and in this order,
// before splitting a query on "and".
var commandPhrases = []string{
	"validate HSN codes",
	"validate HSN code",
	"validate",
	"check HSN codes",
	"check HSN",
}

// ExtractCodes pulls candidate HSN codes out of a free-text query.
// Numeric words win; otherwise the query is split on "and" after removing
// command phrases; otherwise a purely numeric query is taken as one code.
func ExtractCodes(query string) []string {
	var codes []string
	for _, word := range strings.Fields(query) {
		word = strings.TrimSpace(strings.Trim(word, ",."))
		if hsn.IsNumeric(word) {
			codes = append(codes, word)
		}
	}
	if len(codes) > 0 {
		return codes
	}

	cleaned := query
	for _, phrase := range commandPhrases {
		cleaned = strings.Replace(cleaned, phrase, "", 1)
	}
	for _, part := range strings.Split(cleaned, "and") {
		part = strings.TrimSpace(part)
		if hsn.IsNumeric(part) {
			codes = append(codes, part)
		}
	}
	if len(codes) > 0 {
		return codes
	}

	if q := strings.TrimSpace(query); hsn.IsNumeric(q) {
		return []string{q}
	}
	return nil
}
