// Package format derives yt-dlp format selector strings from user intent and
// extracts the set of available quality labels from the backend's format
// listing output.
package format

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidQualityLabel indicates a quality label without a leading digit run
// (expected form is digits followed by an optional unit suffix, e.g. "720p").
var ErrInvalidQualityLabel = errors.New("invalid quality label")

// DefaultHeightCeiling is the video height cap used when the user makes no
// explicit quality choice.
const DefaultHeightCeiling = 1080

// SelectFormat builds the backend format expression for the given user intent.
// An audio-only request always selects the best audio stream regardless of
// quality. Otherwise the leading numeric portion of the label becomes the
// height ceiling; an empty label defaults to DefaultHeightCeiling. A label
// that does not start with digits is rejected rather than silently defaulted.
func SelectFormat(quality string, audioOnly bool) (string, error) {
	if audioOnly {
		return "bestaudio", nil
	}

	height := DefaultHeightCeiling
	if quality != "" {
		digits := leadingDigits(quality)
		if digits == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidQualityLabel, quality)
		}
		parsed, err := strconv.Atoi(digits)
		if err != nil {
			// Digit run too long to fit an int; treat like any other bad label.
			return "", fmt.Errorf("%w: %q", ErrInvalidQualityLabel, quality)
		}
		height = parsed
	}

	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio", height), nil
}

// leadingDigits returns the run of ASCII digits at the start of s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
