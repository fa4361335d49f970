// Package downloader adapts the external yt-dlp engine. It owns the process
// boundary: spawning the binary, streaming its machine-readable progress
// reports, and streaming its format-listing output.
package downloader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"go-youtube-download/internal/models"

	log "github.com/sirupsen/logrus"
)

// Custom backend errors.
var (
	ErrBackendExec   = errors.New("backend execution failed")
	ErrQualityLookup = errors.New("format listing failed")
)

// DefaultBinary is used when no yt-dlp path is configured.
const DefaultBinary = "yt-dlp"

// progressTemplate makes yt-dlp emit one parseable line per progress report:
// dl:<status>:<downloaded_bytes>:<total_bytes>:<eta>. Unreported fields come
// out as "NA".
const progressTemplate = "dl:%(progress.status)s:%(progress.downloaded_bytes)s:%(progress.total_bytes)s:%(progress.eta)s"

// progressPrefix marks progress lines among other yt-dlp output.
const progressPrefix = "dl:"

// Backend drives the yt-dlp binary.
type Backend struct {
	binaryPath string
}

// NewBackend creates a backend for the given yt-dlp binary path, falling back
// to finding "yt-dlp" on PATH when empty.
func NewBackend(binaryPath string) *Backend {
	if binaryPath == "" {
		binaryPath = DefaultBinary
	}
	return &Backend{binaryPath: binaryPath}
}

// Download fetches url with the given format expression into outputPath
// (a yt-dlp output template). Every progress report is translated into a
// ProgressEvent and handed to progress before the next line is read, so
// per-job event order matches the backend's reporting order. Blocks until
// the process exits or ctx is cancelled.
func (b *Backend) Download(ctx context.Context, url, formatExpr, outputPath string, progress func(models.ProgressEvent)) error {
	args := []string{
		"--newline",
		"--no-warnings",
		"--progress-template", progressTemplate,
		"-f", formatExpr,
		"-o", outputPath,
		url,
	}
	cmd := exec.CommandContext(ctx, b.binaryPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: stdout pipe: %v", ErrBackendExec, err)
	}

	log.Debugf("Running %s %s", b.binaryPath, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: starting %s: %v", ErrBackendExec, b.binaryPath, err)
	}

	scanErr := streamLines(stdout, func(line string) {
		ev, ok := ParseProgressLine(line)
		if ok && progress != nil {
			progress(ev)
		}
	})

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v (stderr: %s)", ErrBackendExec, err, strings.TrimSpace(stderr.String()))
	}
	if scanErr != nil {
		// A broken pipe truncates the progress stream even when the process
		// exits cleanly.
		return fmt.Errorf("%w: reading output: %v", ErrBackendExec, scanErr)
	}
	return nil
}

// ListFormats runs the backend's format-listing mode for url and streams each
// raw output line to lineFunc. The accumulated text is what the quality
// extractor consumes. Blocks for the duration of the call.
func (b *Backend) ListFormats(ctx context.Context, url string, lineFunc func(string)) error {
	cmd := exec.CommandContext(ctx, b.binaryPath, "--list-formats", "--no-warnings", url)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: stdout pipe: %v", ErrQualityLookup, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: starting %s: %v", ErrQualityLookup, b.binaryPath, err)
	}

	scanErr := streamLines(stdout, func(line string) {
		if lineFunc != nil {
			lineFunc(line)
		}
	})

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v (stderr: %s)", ErrQualityLookup, err, strings.TrimSpace(stderr.String()))
	}
	if scanErr != nil {
		return fmt.Errorf("%w: reading output: %v", ErrQualityLookup, scanErr)
	}
	return nil
}

// streamLines feeds each line of r to fn and reports any read error.
func streamLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}

// ParseProgressLine decodes one progress-template line into an event. Lines
// that are not progress reports (regular yt-dlp output) return ok=false.
// Unreported numeric fields ("NA" or empty) become -1 sentinels; an event is
// never rejected because one field is missing.
func ParseProgressLine(line string) (models.ProgressEvent, bool) {
	if !strings.HasPrefix(line, progressPrefix) {
		return models.ProgressEvent{}, false
	}
	parts := strings.Split(line, ":")
	if len(parts) != 5 {
		return models.ProgressEvent{}, false
	}

	ev := models.ProgressEvent{
		DownloadedBytes: parseBackendNum(parts[2]),
		TotalBytes:      parseBackendNum(parts[3]),
		ETASeconds:      parseBackendNum(parts[4]),
	}
	switch parts[1] {
	case "finished":
		ev.Status = models.EventFinished
	case "error":
		ev.Status = models.EventError
	default:
		ev.Status = models.EventDownloading
	}
	return ev, true
}

// parseBackendNum converts a template numeric field to int64, tolerating the
// float formatting yt-dlp uses for byte estimates. "NA" and anything
// unparseable map to the -1 unknown sentinel.
func parseBackendNum(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return -1
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return -1
}
