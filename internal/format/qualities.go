package format

import (
	"strings"
	"unicode"
)

// qualityColumn is the whitespace-delimited column of the backend's format
// listing that carries the resolution label.
const qualityColumn = 3

// ExtractQualities parses the raw text of a format listing into the
// deduplicated set of quality labels it offers. A label qualifies when its
// token is alphanumeric but neither purely alphabetic nor purely numeric,
// which isolates tokens like "720p" or "1080p60" from plain words and
// numbers. Lines with too few columns (headers, separators) are skipped
// rather than failing the whole extraction.
func ExtractQualities(rawListing string) map[string]struct{} {
	qualities := make(map[string]struct{})
	for _, line := range strings.Split(rawListing, "\n") {
		fields := strings.Fields(line)
		if len(fields) <= qualityColumn {
			continue
		}
		token := fields[qualityColumn]
		if isQualityLabel(token) {
			qualities[token] = struct{}{}
		}
	}
	return qualities
}

func isQualityLabel(token string) bool {
	if token == "" {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
