package config

import (
	"os"
	"path/filepath"
	"testing"

	"go-youtube-download/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
SavePath = "/downloads"
YtDlpPath = "/usr/local/bin/yt-dlp"
DefaultQuality = "720p"
SearchLimit = 5
LogApiRequests = true
LogLevel = "debug"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.SavePath != "/downloads" {
		t.Errorf("SavePath = %q, want /downloads", cfg.SavePath)
	}
	if cfg.YtDlpPath != "/usr/local/bin/yt-dlp" {
		t.Errorf("YtDlpPath = %q", cfg.YtDlpPath)
	}
	if cfg.DefaultQuality != "720p" {
		t.Errorf("DefaultQuality = %q, want 720p", cfg.DefaultQuality)
	}
	if cfg.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want 5", cfg.SearchLimit)
	}
	if !cfg.LogApiRequests {
		t.Error("LogApiRequests = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `SavePath = "/downloads"`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.OutputTemplate != models.DefaultOutputTemplate {
		t.Errorf("OutputTemplate = %q, want default %q", cfg.OutputTemplate, models.DefaultOutputTemplate)
	}
	if cfg.SearchLimit != models.DefaultSearchLimit {
		t.Errorf("SearchLimit = %d, want default %d", cfg.SearchLimit, models.DefaultSearchLimit)
	}
	if cfg.ApiClientTimeoutSec != models.DefaultClientTimeout {
		t.Errorf("ApiClientTimeoutSec = %d, want default %d", cfg.ApiClientTimeoutSec, models.DefaultClientTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("LoadConfig on missing file expected error, got nil")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.OutputTemplate != models.DefaultOutputTemplate {
		t.Errorf("Defaults OutputTemplate = %q", cfg.OutputTemplate)
	}
	if cfg.SearchLimit != models.DefaultSearchLimit {
		t.Errorf("Defaults SearchLimit = %d", cfg.SearchLimit)
	}
}
