package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mediagrab/internal/extract"
	"mediagrab/internal/history"
	"mediagrab/internal/ui"
)

var flagHistoryPlay bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Pick a past extraction and extract it again",
	Long: `Pick a past extraction and extract it again.
Entries whose video is gone (HTTP 404) are dropped from the history.`,
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagHistoryPlay, "play", "p", false, "Play the selected entry")
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history entries found.")
		return nil
	}

	// Newest first in fzf
	items := history.FormatForDisplay(entries)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	idx, err := ui.Select("History", items)
	if err != nil {
		return err
	}

	selected := entries[len(entries)-1-idx]
	log.Debug().Str("id", selected.ID).Str("url", selected.URL).Msg("re-extracting")

	rec, err := extractURL(cmd.Context(), selected.URL)
	var fetchErr *extract.FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
		if rmErr := history.Remove(selected.Extractor, selected.ID); rmErr != nil {
			log.Debug().Err(rmErr).Msg("removing stale history entry failed")
		}
	}
	if err != nil {
		return fmt.Errorf("re-extracting %q: %w", selected.Title, err)
	}

	if flagHistoryPlay {
		if flagFormat == "" && selected.FormatID != "" {
			cfg.Format = selected.FormatID
		}
		return playRecord(rec)
	}
	remember(rec, selected.FormatID)
	return printRecord(cmd.OutOrStdout(), rec, jsonOutput(), flagPlain)
}
