package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-youtube-download/internal/config"
	"go-youtube-download/internal/models"
	"go-youtube-download/internal/search"
)

// cfgFile holds the path to the config file specified by the user
var cfgFile string

// logApiFlag holds the value of the --log-api flag
var logApiFlag bool

// savePathFlag holds the value of the --save-path flag
var savePathFlag string

// ytDlpPathFlag holds the value of the --yt-dlp-path flag
var ytDlpPathFlag string

// logLevelFlag holds the value of the --log-level flag
var logLevelFlag string

// globalConfig holds the loaded configuration
var globalConfig models.Config

// globalHttpTransport holds the globally configured HTTP transport (base or logging-wrapped)
var globalHttpTransport http.RoundTripper

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "youtube-downloader",
	Short: "A background download manager for YouTube videos",
	Long: `youtube-downloader searches YouTube, lists the qualities a video offers,
and downloads videos in the background while tracking each job's progress.`,
	PersistentPreRunE: loadGlobalConfig, // Load config before any command runs
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	// Close the request log explicitly rather than deferred: os.Exit below
	// would skip a deferred close on the error path.
	closeRequestLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// closeRequestLog flushes and closes the request logging transport if it was
// initialized. Safe to call when logging was never enabled, and idempotent.
func closeRequestLog() {
	loggingTransport, ok := globalHttpTransport.(*search.LoggingTransport)
	if !ok || loggingTransport == nil {
		return
	}
	if err := loggingTransport.Close(); err != nil {
		log.WithError(err).Error("Error closing request log file")
	}
	globalHttpTransport = nil
}

func init() {
	// Add persistent flags that apply to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&logApiFlag, "log-api", false, "Log search HTTP requests/responses to api.log (overrides config)")
	rootCmd.PersistentFlags().StringVar(&savePathFlag, "save-path", "", "Directory to save downloads (overrides config)")
	rootCmd.PersistentFlags().StringVar(&ytDlpPathFlag, "yt-dlp-path", "", "Path to the yt-dlp binary (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadGlobalConfig attempts to load the configuration and applies flag overrides.
// It also sets up logging and the global HTTP transport.
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	var err error
	globalConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		// Not fatal: every setting has a flag or a default. Commands check
		// the fields they need from globalConfig.
		log.WithError(err).Warnf("Failed to load configuration from %s", cfgFile)
		globalConfig = config.Defaults()
	}

	// Override LogApiRequests if flag was used
	if cmd.Flags().Changed("log-api") {
		globalConfig.LogApiRequests = logApiFlag
		log.Debugf("Overriding LogApiRequests based on --log-api flag: %t", logApiFlag)
	}

	// Override SavePath if flag was used
	if cmd.Flags().Changed("save-path") {
		if savePathFlag != "" {
			globalConfig.SavePath = savePathFlag
			log.Debugf("Overriding SavePath based on --save-path flag: %s", savePathFlag)
		} else {
			log.Warn("--save-path flag provided but value is empty, ignoring.")
		}
	}

	// Override YtDlpPath if flag was used
	if cmd.Flags().Changed("yt-dlp-path") && ytDlpPathFlag != "" {
		globalConfig.YtDlpPath = ytDlpPathFlag
		log.Debugf("Overriding YtDlpPath based on --yt-dlp-path flag: %s", ytDlpPathFlag)
	}

	// Override LogLevel if flag was used
	if cmd.Flags().Changed("log-level") {
		globalConfig.LogLevel = logLevelFlag
	}
	if globalConfig.LogLevel != "" {
		level, errLevel := log.ParseLevel(globalConfig.LogLevel)
		if errLevel != nil {
			log.Warnf("Invalid log level %q, keeping default", globalConfig.LogLevel)
		} else {
			log.SetLevel(level)
		}
	}

	// --- Setup Global HTTP Transport ---
	baseTransport := http.DefaultTransport
	globalHttpTransport = baseTransport
	if globalConfig.LogApiRequests {
		log.Debug("Request logging enabled, wrapping global HTTP transport.")
		logFilePath := "api.log"
		if globalConfig.SavePath != "" {
			if _, statErr := os.Stat(globalConfig.SavePath); statErr == nil {
				logFilePath = filepath.Join(globalConfig.SavePath, logFilePath)
			} else {
				log.Warnf("SavePath '%s' not found, saving api.log to current directory.", globalConfig.SavePath)
			}
		}
		log.Infof("Request logging to file: %s", logFilePath)

		loggingTransport, errTransport := search.NewLoggingTransport(baseTransport, logFilePath)
		if errTransport != nil {
			log.WithError(errTransport).Error("Failed to initialize request logging transport, logging disabled.")
		} else {
			globalHttpTransport = loggingTransport
		}
	}

	return nil
}
