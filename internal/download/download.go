// Package download provides secure ffmpeg-based media downloading.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal attacks.
package download

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
)

// Download fetches a format of a record to a local file using ffmpeg and
// returns the output path.
func Download(rec *media.Record, format *media.Format, outputDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	outputPath, err := OutputPath(rec, outputDir)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(ffmpegPath, Args(rec, format, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Info().Str("format", format.FormatID).Str("path", outputPath).Msg("downloading")

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

// OutputPath creates the output directory if needed and returns the
// sanitized file path a record is downloaded to.
func OutputPath(rec *media.Record, outputDir string) (string, error) {
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, httputil.RecordFilename(rec.Title, rec.ID, ".mp4"))
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return outputPath, nil
}

// Args builds the ffmpeg argument list as an explicit slice.
func Args(rec *media.Record, format *media.Format, outputPath string) []string {
	return []string{
		"-y", // Overwrite output
		"-user_agent", httputil.UserAgent,
		"-i", format.URL,
		"-c", "copy", // No re-encoding
		"-metadata", "title=" + rec.Title,
		"-metadata", "comment=" + rec.WebpageURL,
		outputPath,
	}
}
