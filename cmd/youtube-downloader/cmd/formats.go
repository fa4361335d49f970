package cmd

import (
	"fmt"
	"sort"
	"strings"

	"go-youtube-download/internal/downloader"
	"go-youtube-download/internal/format"

	"github.com/spf13/cobra"
)

// formatsCmd represents the formats command
var formatsCmd = &cobra.Command{
	Use:   "formats <url>",
	Short: "List the quality labels a video offers",
	Long: `Queries the backend's format listing for the given URL and prints the
set of selectable quality labels (e.g. 720p, 1080p60). The listing call
blocks for its full duration.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	backend := downloader.NewBackend(globalConfig.YtDlpPath)

	var listing strings.Builder
	err := backend.ListFormats(cmd.Context(), args[0], func(line string) {
		listing.WriteString(line)
		listing.WriteByte('\n')
	})
	if err != nil {
		return fmt.Errorf("looking up qualities: %w", err)
	}

	qualities := format.ExtractQualities(listing.String())
	if len(qualities) == 0 {
		fmt.Println("No selectable qualities found.")
		return nil
	}

	labels := make([]string, 0, len(qualities))
	for q := range qualities {
		labels = append(labels, q)
	}
	sort.Strings(labels) // presentation only; the set itself is unordered
	for _, label := range labels {
		fmt.Println(label)
	}
	return nil
}
