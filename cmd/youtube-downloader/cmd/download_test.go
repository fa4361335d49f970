package cmd

import "testing"

func TestJobFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		template string
		want     string
	}{
		{"No title uses template", "", "%(title)s.%(ext)s", "%(title)s.%(ext)s"},
		{"Title is slugged", "Some Video: Part 2", "%(title)s.%(ext)s", "some_video-part_2.%(ext)s"},
		{"Unsluggable title falls back", "😀😀", "%(title)s.%(ext)s", "%(title)s.%(ext)s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jobFilename(tt.title, tt.template); got != tt.want {
				t.Errorf("jobFilename(%q, %q) = %q, want %q", tt.title, tt.template, got, tt.want)
			}
		})
	}
}
