package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mediagrab/internal/download"
	"mediagrab/internal/media"
	"mediagrab/internal/player"
)

var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Play a video with the configured player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := extractURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return playRecord(rec)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a video with ffmpeg",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := extractURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		format, err := chooseFormat(rec)
		if err != nil {
			return err
		}

		dir, err := cfg.ExpandDownloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}

		outputPath, err := download.Download(rec, format, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)

		if cfg.WriteThumbnail {
			writeThumbnail(cmd, rec)
		}
		remember(rec, format.FormatID)
		return nil
	},
}

func playRecord(rec *media.Record) error {
	format, err := chooseFormat(rec)
	if err != nil {
		return err
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	log.Debug().Str("player", p.Name()).Str("format", format.FormatID).Str("url", format.URL).Msg("starting playback")
	if err := p.Play(format.URL, rec.Title); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	remember(rec, format.FormatID)
	return nil
}
