// Package search implements a YouTube search client. It fetches the results
// page and extracts video entries from the embedded renderer data, so no API
// key is required.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-youtube-download/internal/models"

	log "github.com/sirupsen/logrus"
)

// ErrSearchFailed indicates the results page could not be fetched.
var ErrSearchFailed = errors.New("search request failed")

const resultsURL = "https://www.youtube.com/results"

// A desktop user agent keeps YouTube serving the standard results page with
// embedded renderer JSON.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client fetches YouTube search results.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a search client. Pass a client carrying the globally
// configured transport to get request logging; nil gets a default client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient}
}

// Search returns up to limit results for the given query terms.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	values := url.Values{}
	values.Set("search_query", query)
	values.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultsURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrSearchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status %d", ErrSearchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSearchFailed, err)
	}

	results := ExtractResults(string(body), limit)
	log.Debugf("Search for %q returned %d results", query, len(results))
	return results, nil
}

// videoRenderer is the slice of YouTube's renderer data we care about.
type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"title"`
	LengthText struct {
		SimpleText string `json:"simpleText"`
	} `json:"lengthText"`
	OwnerText struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"ownerText"`
	Thumbnail struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
}

// ExtractResults scans page data for videoRenderer objects and decodes each
// into a SearchResult, up to limit entries (limit <= 0 means no cap).
// Renderer objects that fail to decode are skipped.
func ExtractResults(page string, limit int) []models.SearchResult {
	const marker = `"videoRenderer":`

	var results []models.SearchResult
	for limit <= 0 || len(results) < limit {
		idx := strings.Index(page, marker)
		if idx < 0 {
			break
		}
		page = page[idx+len(marker):]

		var vr videoRenderer
		if err := json.NewDecoder(strings.NewReader(page)).Decode(&vr); err != nil {
			continue
		}
		if vr.VideoID == "" {
			continue
		}
		results = append(results, vr.toResult())
	}
	return results
}

func (vr videoRenderer) toResult() models.SearchResult {
	sr := models.SearchResult{
		VideoID:  vr.VideoID,
		Duration: vr.LengthText.SimpleText,
	}
	var title strings.Builder
	for _, run := range vr.Title.Runs {
		title.WriteString(run.Text)
	}
	sr.Title = title.String()
	if len(vr.OwnerText.Runs) > 0 {
		sr.Channel = vr.OwnerText.Runs[0].Text
	}
	if len(vr.Thumbnail.Thumbnails) > 0 {
		sr.ThumbnailURL = vr.Thumbnail.Thumbnails[0].URL
	}
	if sr.Duration == "" {
		sr.Duration = models.UnknownValue
	}
	return sr
}
