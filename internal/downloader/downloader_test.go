package downloader

import (
	"errors"
	"strings"
	"testing"

	"go-youtube-download/internal/models"
)

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOK     bool
		wantStatus models.EventStatus
		wantDown   int64
		wantTotal  int64
		wantETA    int64
	}{
		{"Downloading", "dl:downloading:50:200:10", true, models.EventDownloading, 50, 200, 10},
		{"All unknown", "dl:downloading:NA:NA:NA", true, models.EventDownloading, -1, -1, -1},
		{"ETA only", "dl:downloading:NA:NA:42", true, models.EventDownloading, -1, -1, 42},
		{"Float byte estimate", "dl:downloading:123.45:1000.0:5", true, models.EventDownloading, 123, 1000, 5},
		{"Finished", "dl:finished:1000:1000:0", true, models.EventFinished, 1000, 1000, 0},
		{"Error status", "dl:error:NA:NA:NA", true, models.EventError, -1, -1, -1},
		{"Regular output line", "[download] Destination: video.mp4", false, "", 0, 0, 0},
		{"Empty line", "", false, "", 0, 0, 0},
		{"Truncated template", "dl:downloading:50:200", false, "", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ParseProgressLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseProgressLine(%q) ok = %t, want %t", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", ev.Status, tt.wantStatus)
			}
			if ev.DownloadedBytes != tt.wantDown {
				t.Errorf("downloaded = %d, want %d", ev.DownloadedBytes, tt.wantDown)
			}
			if ev.TotalBytes != tt.wantTotal {
				t.Errorf("total = %d, want %d", ev.TotalBytes, tt.wantTotal)
			}
			if ev.ETASeconds != tt.wantETA {
				t.Errorf("eta = %d, want %d", ev.ETASeconds, tt.wantETA)
			}
		})
	}
}

func TestParseBackendNum(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"12345", 12345},
		{"12345.9", 12345},
		{"NA", -1},
		{"", -1},
		{"  7 ", 7},
		{"garbage", -1},
	}

	for _, tt := range tests {
		if got := parseBackendNum(tt.input); got != tt.want {
			t.Errorf("parseBackendNum(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("pipe broke")
}

func TestStreamLines(t *testing.T) {
	var lines []string
	if err := streamLines(strings.NewReader("a\nb\n"), func(l string) { lines = append(lines, l) }); err != nil {
		t.Fatalf("streamLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Errorf("lines = %v, want [a b]", lines)
	}

	// A read error must surface, not silently truncate the stream.
	if err := streamLines(failingReader{}, func(string) {}); err == nil {
		t.Error("streamLines on failing reader returned nil error")
	}
}

func TestNewBackendDefaultBinary(t *testing.T) {
	b := NewBackend("")
	if b.binaryPath != DefaultBinary {
		t.Errorf("default binary = %q, want %q", b.binaryPath, DefaultBinary)
	}

	b = NewBackend("/opt/yt-dlp")
	if b.binaryPath != "/opt/yt-dlp" {
		t.Errorf("binary = %q, want /opt/yt-dlp", b.binaryPath)
	}
}
