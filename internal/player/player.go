// Package player provides a secure interface for launching media players.
// All player invocations use exec.Command with explicit argument slices,
// so remote titles and URLs are never interpreted by a shell.
package player

import (
	"os"
	"os/exec"
	"strings"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream URL and blocks until the player exits.
	// Callers pass only validated http(s) URLs.
	Play(url, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch strings.ToLower(name) {
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: strings.ToLower(name)}
	default:
		return &MPV{}
	}
}

func available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// run starts the player attached to the terminal. Players exit non-zero
// when the user quits early, so exit errors are not failures.
func run(bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return err
	}
	return nil
}
