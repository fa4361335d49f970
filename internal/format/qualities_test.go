package format

import (
	"strings"
	"testing"
)

func listingLine(quality string) string {
	return "137 mp4 1920x1080 " + quality + " | 50.2MiB 4500k https"
}

func TestExtractQualities(t *testing.T) {
	lines := []string{
		listingLine("1080p60"),
		listingLine("band"),   // purely alphabetic, excluded
		listingLine("720p"),
		listingLine("720p"),   // duplicate collapses
		listingLine("123456"), // purely numeric, excluded
	}
	got := ExtractQualities(strings.Join(lines, "\n"))

	want := map[string]struct{}{"1080p60": {}, "720p": {}}
	if len(got) != len(want) {
		t.Fatalf("ExtractQualities returned %d entries, want %d: %v", len(got), len(want), got)
	}
	for q := range want {
		if _, ok := got[q]; !ok {
			t.Errorf("ExtractQualities missing %q", q)
		}
	}
}

func TestExtractQualitiesOrderIndependent(t *testing.T) {
	forward := []string{listingLine("720p"), listingLine("1080p"), listingLine("480p")}
	reversed := []string{listingLine("480p"), listingLine("1080p"), listingLine("720p")}

	a := ExtractQualities(strings.Join(forward, "\n"))
	b := ExtractQualities(strings.Join(reversed, "\n"))

	if len(a) != len(b) {
		t.Fatalf("reordering input changed result size: %d vs %d", len(a), len(b))
	}
	for q := range a {
		if _, ok := b[q]; !ok {
			t.Errorf("reordering input changed result set: %q missing", q)
		}
	}
}

func TestExtractQualitiesSkipsShortLines(t *testing.T) {
	listing := strings.Join([]string{
		"ID  EXT RESOLUTION", // header row, fewer than 4 tokens
		"",
		"--- --- ----------",
		listingLine("720p"),
	}, "\n")

	got := ExtractQualities(listing)
	if len(got) != 1 {
		t.Fatalf("ExtractQualities = %v, want exactly {720p}", got)
	}
	if _, ok := got["720p"]; !ok {
		t.Error("ExtractQualities missing 720p")
	}
}

func TestIsQualityLabel(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"720p", true},
		{"1080p60", true},
		{"audio", false},
		{"1920", false},
		{"", false},
		{"1920x1080", false}, // contains non-alphanumeric
		{"50.2MiB", false},
	}

	for _, tt := range tests {
		if got := isQualityLabel(tt.token); got != tt.want {
			t.Errorf("isQualityLabel(%q) = %t, want %t", tt.token, got, tt.want)
		}
	}
}
