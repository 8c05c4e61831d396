package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mediagrab/internal/history"
	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/thumbnail"
	"mediagrab/internal/ui"
)

// extractRun is the default command: mediagrab <url>
func extractRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	rec, err := extractURL(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cfg.WriteThumbnail {
		writeThumbnail(cmd, rec)
	}
	remember(rec, "")

	return printRecord(cmd.OutOrStdout(), rec, jsonOutput(), flagPlain)
}

var formatsCmd = &cobra.Command{
	Use:   "formats <url>",
	Short: "List available formats, best last",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := extractURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printFormats(cmd.OutOrStdout(), rec, jsonOutput())
	},
}

// chooseFormat picks the format to play or download, interactively with --select.
// The format URL is handed to external programs, so only http(s) URLs pass.
func chooseFormat(rec *media.Record) (*media.Format, error) {
	if len(rec.Formats) == 0 {
		return nil, fmt.Errorf("no playable formats for %q", rec.Title)
	}

	format := rec.SelectFormat(cfg.Format)
	if flagSelect {
		var err error
		if format, err = ui.SelectFormat(rec); err != nil {
			return nil, err
		}
	}

	if err := httputil.ValidateURL(format.URL); err != nil {
		return nil, fmt.Errorf("format %q has an unusable URL: %w", format.FormatID, err)
	}
	return format, nil
}

// writeThumbnail saves the largest thumbnail into the download dir. Failures
// are logged, not fatal.
func writeThumbnail(cmd *cobra.Command, rec *media.Record) {
	thumb := thumbnail.Pick(rec.Thumbnails, "")
	if thumb == nil {
		log.Warn().Str("id", rec.ID).Msg("no thumbnail available")
		return
	}

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		log.Warn().Err(err).Msg("resolving download dir")
		return
	}

	path, err := thumbnail.Save(cmd.Context(), client, rec, thumb, dir)
	if err != nil {
		log.Warn().Err(err).Msg("saving thumbnail failed")
		return
	}
	fmt.Fprintf(os.Stderr, "Thumbnail: %s\n", path)
}

// remember records an extraction in the history when enabled.
func remember(rec *media.Record, formatID string) {
	if !cfg.History {
		return
	}
	entry := media.HistoryEntry{
		ID:        rec.ID,
		Title:     rec.Title,
		Extractor: rec.Extractor,
		URL:       rec.WebpageURL,
		FormatID:  formatID,
		Duration:  rec.Duration.OrElse(0),
	}
	if err := history.Save(entry); err != nil {
		log.Debug().Err(err).Msg("saving history failed")
	}
}
