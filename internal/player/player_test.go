package player

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"mpv", "mpv"},
		{"vlc", "vlc"},
		{"VLC", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"unknown", "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.name).Name(); got != tt.expected {
				t.Errorf("New(%q).Name() = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestArgsKeepTitleIntact(t *testing.T) {
	title := `Engelse humor; rm -rf / "$(whoami)"`
	url := "https://media.dumpert.nl/x.mp4"

	mpv := mpvArgs(url, title)
	if mpv[0] != "--force-media-title="+title {
		t.Errorf("mpv title arg = %q", mpv[0])
	}

	vlc := vlcArgs(url, title)
	if vlc[1] != "--meta-title" || vlc[2] != title {
		t.Errorf("vlc title args = %q %q", vlc[1], vlc[2])
	}
}

func TestMPVArgsEndOptionsBeforeURL(t *testing.T) {
	url := "--script=/tmp/evil.lua"
	args := mpvArgs(url, "t")

	n := len(args)
	if args[n-1] != url || args[n-2] != "--" {
		t.Errorf("mpvArgs() = %q, want URL last after \"--\"", args)
	}
	for _, a := range args[:n-2] {
		if a == url {
			t.Errorf("URL appears before the end of options: %q", args)
		}
	}
}
