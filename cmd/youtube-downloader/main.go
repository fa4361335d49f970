package main

import (
	"go-youtube-download/cmd/youtube-downloader/cmd"
)

func main() {
	// Execute the root command (defined in cmd/root.go)
	cmd.Execute()
}
