package helpers

import (
	"fmt"
	"math"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// BytesToSize converts a byte count into a human-readable string (KB, MB, GB, etc.).
func BytesToSize(bytes uint64) string {
	sizes := []string{"B", "KB", "MB", "GB", "TB"}
	if bytes == 0 {
		return "0B"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1 // Handle very large sizes
	}
	return fmt.Sprintf("%.2f%s", float64(bytes)/math.Pow(1024, float64(i)), sizes[i])
}

// ConvertToSlug converts a string into a filesystem-friendly slug.
func ConvertToSlug(str string) string {
	str = strings.ReplaceAll(str, " ", "_")
	str = strings.ReplaceAll(str, ":", "-")
	str = strings.ToLower(str)

	allowedChars := "0123456789abcdefghijklmnopqrstuvwxyz._-"

	var filtered strings.Builder
	for _, ch := range str {
		if strings.ContainsRune(allowedChars, ch) {
			filtered.WriteRune(ch)
		}
	}
	str = filtered.String()

	// Collapse repeated separators left behind by stripped characters.
	for {
		prev := str
		str = strings.ReplaceAll(str, "--", "-")
		str = strings.ReplaceAll(str, "__", "_")
		str = strings.ReplaceAll(str, "-_", "-")
		str = strings.ReplaceAll(str, "_-", "-")
		if str == prev {
			break
		}
	}

	return strings.Trim(str, "_-")
}

// CheckAndMakeDir ensures the given directory exists, creating it if needed.
// Returns false when the directory cannot be created.
func CheckAndMakeDir(path string) bool {
	if path == "" {
		return false
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		log.WithError(err).Errorf("Failed to create directory %s", path)
		return false
	}
	return true
}
