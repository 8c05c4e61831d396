package player

import "fmt"

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

// Play launches the generic player with mpv-style flags.
func (g *Generic) Play(url, title string) error {
	args := []string{url, "--force-media-title=" + title}
	if err := run(g.name, args); err != nil {
		return fmt.Errorf("running %s: %w", g.name, err)
	}
	return nil
}
