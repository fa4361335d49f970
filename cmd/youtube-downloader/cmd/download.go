package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go-youtube-download/internal/downloader"
	"go-youtube-download/internal/format"
	"go-youtube-download/internal/helpers"
	"go-youtube-download/internal/jobs"
	"go-youtube-download/internal/models"

	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download [url]...",
	Short: "Download one or more videos in the background",
	Long: `Downloads each given URL as an independent background job, tracking
percent and ETA per job in a live table until every job reaches a terminal
state. Interrupting stops all running downloads; partially written files may
be left behind.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("quality", "q", "", "Quality label, e.g. 720p (empty caps height at 1080)")
	downloadCmd.Flags().Bool("audio-only", false, "Download the best audio stream only")
	downloadCmd.Flags().StringP("output", "o", "", "Output path or yt-dlp template (single URL only)")
	downloadCmd.Flags().String("title", "", "Display title for the job table (single URL only)")

	viper.BindPFlag("download.quality", downloadCmd.Flags().Lookup("quality"))
	viper.BindPFlag("download.audio_only", downloadCmd.Flags().Lookup("audio-only"))
}

func runDownload(cmd *cobra.Command, args []string) error {
	quality := viper.GetString("download.quality")
	if quality == "" {
		quality = globalConfig.DefaultQuality
	}
	audioOnly := viper.GetBool("download.audio_only")

	formatExpr, err := format.SelectFormat(quality, audioOnly)
	if err != nil {
		return fmt.Errorf("selecting format: %w", err)
	}
	log.Debugf("Using format expression %q", formatExpr)

	outputFlag, _ := cmd.Flags().GetString("output")
	titleFlag, _ := cmd.Flags().GetString("title")
	if len(args) > 1 && (outputFlag != "" || titleFlag != "") {
		return fmt.Errorf("--output and --title apply to a single URL, got %d", len(args))
	}

	if globalConfig.SavePath != "" && !helpers.CheckAndMakeDir(globalConfig.SavePath) {
		return fmt.Errorf("cannot create save path %s", globalConfig.SavePath)
	}

	backend := downloader.NewBackend(globalConfig.YtDlpPath)
	table := jobs.NewTable()
	manager := jobs.NewManager(table, backend)

	for _, url := range args {
		outputPath := outputFlag
		if outputPath == "" {
			outputPath = filepath.Join(globalConfig.SavePath, jobFilename(titleFlag, globalConfig.OutputTemplate))
		}
		manager.Enqueue(url, titleFlag, outputPath, formatExpr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Coalesced redraw trigger driven by the table's change notifications.
	dirty := make(chan struct{}, 1)
	table.RegisterObserver(jobs.ObserverFuncs{OnChanged: func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}})

	writer := uilive.New()
	writer.Start()

	manager.StartAll(ctx)

	done := make(chan struct{})
	go func() {
		manager.Wait()
		close(done)
	}()

	renderJobTable(writer, table)
	for running := true; running; {
		select {
		case <-done:
			running = false
		case <-ctx.Done():
			log.Warn("Interrupted, stopping all downloads")
			running = false
		case <-dirty:
			renderJobTable(writer, table)
		}
	}

	manager.Shutdown()
	renderJobTable(writer, table)
	writer.Stop()

	failed := 0
	for _, row := range table.Rows() {
		if row.Status == models.JobStatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, table.RowCount())
	}
	return nil
}

// jobFilename derives the output filename template for a job. A user-supplied
// title becomes a slugged filename; otherwise the configured template applies.
func jobFilename(title, outputTemplate string) string {
	if title != "" {
		if slug := helpers.ConvertToSlug(title); slug != "" {
			return slug + ".%(ext)s"
		}
	}
	return outputTemplate
}

// renderJobTable writes one line per job row to the live writer.
func renderJobTable(writer *uilive.Writer, table *jobs.Table) {
	var b strings.Builder
	for _, row := range table.Rows() {
		b.WriteString(fmt.Sprintf("[%d] %-45.45s %6s %19s  ETA %8s  %s\n",
			row.ID, row.DisplayTitle(), row.PercentString(), row.SizeString(), row.ETAString(), row.Status))
	}
	fmt.Fprint(writer, b.String())
	writer.Flush()
}
