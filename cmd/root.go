// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mediagrab/internal/config"
	"mediagrab/internal/extract"
	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON           bool
	flagFormat         string
	flagSelect         bool
	flagPlayer         string
	flagDownloadDir    string
	flagWriteThumbnail bool
	flagPlain          bool
	flagDebug          bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// client and registry are built from cfg.
var (
	client   *http.Client
	registry *extract.Registry
)

var rootCmd = &cobra.Command{
	Use:   "mediagrab [url]",
	Short: "Extract, play and download videos from supported sites",
	Long: `Mediagrab turns a video page URL into its title, formats and thumbnails.
Print the result, play it with mpv/vlc, or download it with ffmpeg.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              extractRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output metadata as JSON")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Format: best | worst | <format id>")
	rootCmd.PersistentFlags().BoolVarP(&flagSelect, "select", "s", false, "Choose the format interactively")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVarP(&flagDownloadDir, "download-dir", "d", "", "Directory for downloads and thumbnails")
	rootCmd.PersistentFlags().BoolVar(&flagWriteThumbnail, "write-thumbnail", false, "Save the largest thumbnail")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Render the description as plain text")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(extractorsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagDownloadDir != "" {
		cfg.DownloadDir = flagDownloadDir
	}
	if flagWriteThumbnail {
		cfg.WriteThumbnail = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	httputil.UserAgent = cfg.UserAgent
	client = httputil.NewClient(cfg.RequestTimeout())
	registry = extract.Default(extract.Options{
		Client:     client,
		DumpertAPI: cfg.DumpertAPI,
		Disabled:   cfg.DisabledExtractors,
	})

	return nil
}

// extractURL runs the registry and turns a routing miss into a user-facing error.
func extractURL(ctx context.Context, rawURL string) (*media.Record, error) {
	rec, err := registry.Extract(ctx, rawURL)
	if errors.Is(err, extract.ErrNoMatch) {
		return nil, fmt.Errorf("unsupported URL: %s", rawURL)
	}
	return rec, err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mediagrab %s\n", Version)
	},
}
