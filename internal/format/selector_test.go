package format

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name      string
		quality   string
		audioOnly bool
		want      string
	}{
		{"Explicit quality", "720p", false, "bestvideo[height<=720]+bestaudio"},
		{"Quality with framerate suffix", "1080p60", false, "bestvideo[height<=1080]+bestaudio"},
		{"Bare number", "480", false, "bestvideo[height<=480]+bestaudio"},
		{"No choice defaults to 1080", "", false, "bestvideo[height<=1080]+bestaudio"},
		{"Audio only", "", true, "bestaudio"},
		{"Audio only ignores quality", "720p", true, "bestaudio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFormat(tt.quality, tt.audioOnly)
			if err != nil {
				t.Fatalf("SelectFormat(%q, %t) returned error: %v", tt.quality, tt.audioOnly, err)
			}
			if got != tt.want {
				t.Errorf("SelectFormat(%q, %t) = %q, want %q", tt.quality, tt.audioOnly, got, tt.want)
			}
		})
	}
}

func TestSelectFormatAudioOnlyNeverSelectsVideo(t *testing.T) {
	for _, quality := range []string{"", "720p", "2160p", "garbage"} {
		got, err := SelectFormat(quality, true)
		if err != nil {
			t.Fatalf("SelectFormat(%q, true) returned error: %v", quality, err)
		}
		if strings.Contains(got, "bestvideo") {
			t.Errorf("SelectFormat(%q, true) = %q, must not select video", quality, got)
		}
	}
}

func TestSelectFormatInvalidLabel(t *testing.T) {
	tests := []struct {
		name    string
		quality string
	}{
		{"No leading digits", "p720"},
		{"Purely alphabetic", "best"},
		{"Leading whitespace", " 720p"},
		{"Leading sign", "-720p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectFormat(tt.quality, false)
			if err == nil {
				t.Fatalf("SelectFormat(%q, false) expected error, got nil", tt.quality)
			}
			if !errors.Is(err, ErrInvalidQualityLabel) {
				t.Errorf("SelectFormat(%q, false) error = %v, want ErrInvalidQualityLabel", tt.quality, err)
			}
		})
	}
}
