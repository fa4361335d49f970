package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-youtube-download/internal/search"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <terms>...",
	Short: "Search YouTube for videos",
	Long: `Searches YouTube with the given terms and prints the top results with
their video id, duration, and watch URL. Pass a result's URL to the download
command to fetch it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "n", 0, "Maximum number of results (0 uses config default)")
	viper.BindPFlag("search.limit", searchCmd.Flags().Lookup("limit"))
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit := viper.GetInt("search.limit")
	if limit <= 0 {
		limit = globalConfig.SearchLimit
	}

	httpClient := &http.Client{
		Timeout:   time.Duration(globalConfig.ApiClientTimeoutSec) * time.Second,
		Transport: globalHttpTransport,
	}
	client := search.NewClient(httpClient)

	results, err := client.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%-11s  [%8s]  %s\n", r.VideoID, r.Duration, r.Title)
		fmt.Printf("             %s\n", r.WatchURL())
	}
	return nil
}
