package player

import (
	"fmt"

	"mediagrab/internal/httputil"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

// Play launches mpv with the given stream.
func (m *MPV) Play(url, title string) error {
	if err := run("mpv", mpvArgs(url, title)); err != nil {
		return fmt.Errorf("running mpv: %w", err)
	}
	return nil
}

func mpvArgs(url, title string) []string {
	return []string{
		"--force-media-title=" + title,
		"--user-agent=" + httputil.UserAgent,
		"--really-quiet",
		"--", // End of options; the URL is never parsed as a flag
		url,
	}
}
