package player

import (
	"fmt"

	"mediagrab/internal/httputil"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

// Play launches VLC and exits it when playback ends.
func (v *VLC) Play(url, title string) error {
	if err := run("vlc", vlcArgs(url, title)); err != nil {
		return fmt.Errorf("running vlc: %w", err)
	}
	return nil
}

func vlcArgs(url, title string) []string {
	return []string{
		url,
		"--meta-title", title,
		"--http-user-agent", httputil.UserAgent,
		"--play-and-exit",
	}
}
