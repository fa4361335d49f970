package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"go-youtube-download/internal/search"
)

func TestCloseRequestLog(t *testing.T) {
	// No transport configured: nothing to do.
	globalHttpTransport = nil
	closeRequestLog()

	logPath := filepath.Join(t.TempDir(), "api.log")
	transport, err := search.NewLoggingTransport(nil, logPath)
	if err != nil {
		t.Fatalf("NewLoggingTransport: %v", err)
	}
	globalHttpTransport = transport

	closeRequestLog()
	if globalHttpTransport != nil {
		t.Error("transport not cleared after close")
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file missing after close: %v", err)
	}

	// A second call must not close the file again.
	closeRequestLog()
}
