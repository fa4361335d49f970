package models

import "fmt"

type (
	Config struct {
		// Paths
		SavePath  string `toml:"SavePath"`
		YtDlpPath string `toml:"YtDlpPath"`

		// Download behavior
		DefaultQuality string `toml:"DefaultQuality"` // e.g. "1080p"; empty selects the default ceiling
		OutputTemplate string `toml:"OutputTemplate"` // yt-dlp output template, joined under SavePath

		// Search behavior
		SearchLimit         int `toml:"SearchLimit"`
		ApiClientTimeoutSec int `toml:"ApiClientTimeoutSec"`

		// Other
		LogApiRequests bool   `toml:"LogApiRequests"`
		LogLevel       string `toml:"LogLevel"`
	}

	// SearchResult is one entry returned by the YouTube search client.
	SearchResult struct {
		VideoID      string
		Title        string
		Duration     string
		Channel      string
		ThumbnailURL string
	}
)

// Defaults applied by config loading when fields are unset.
const (
	DefaultOutputTemplate = "%(title)s.%(ext)s"
	DefaultSearchLimit    = 10
	DefaultClientTimeout  = 30
)

// WatchURL returns the canonical video URL for a search result.
func (sr SearchResult) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", sr.VideoID)
}
