// Package ui provides a secure fzf launcher abstraction.
// All items are piped to fzf via stdin as plain text, with no shell-interpreted
// preview strings or commands with remote data.
package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mediagrab/internal/media"
)

// Select presents items to the user via fzf and returns the selected item's index.
// Items are passed as plain text via stdin. No --preview or shell-evaluated strings.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	cmd := exec.Command(fzfPath,
		"--prompt", prompt+" > ",
		"--height", "40%",
		"--reverse",
		"--with-nth", "2..", // Display from second field onward (hide index)
		"--delimiter", "\t",
		"--no-multi",
		"--cycle",
	)

	cmd.Stdin = strings.NewReader(numbered(items))
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 130 {
			return -1, fmt.Errorf("selection cancelled")
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	return parseSelection(stdout.String(), len(items))
}

// SelectFormat lets the user pick one of a record's formats, best first.
func SelectFormat(rec *media.Record) (*media.Format, error) {
	n := len(rec.Formats)
	items := make([]string, n)
	for i := range rec.Formats {
		items[i] = FormatLabel(rec.Formats[n-1-i])
	}

	idx, err := Select("Format", items)
	if err != nil {
		return nil, err
	}
	return &rec.Formats[n-1-idx], nil
}

// FormatLabel renders a format as a single display line.
func FormatLabel(f media.Format) string {
	id := f.FormatID
	if id == "" {
		id = "(unlabeled)"
	}
	return fmt.Sprintf("%-12s q=%-3d %s", id, f.Quality, f.URL)
}

// numbered prefixes each item with its index and a tab for reliable index extraction.
func numbered(items []string) string {
	var input strings.Builder
	for i, item := range items {
		item = strings.NewReplacer("\n", " ", "\t", " ").Replace(item)
		fmt.Fprintf(&input, "%d\t%s\n", i, item)
	}
	return input.String()
}

// parseSelection extracts the index from fzf's tab-separated output line.
func parseSelection(out string, count int) (int, error) {
	selected := strings.TrimSpace(out)
	if selected == "" {
		return -1, fmt.Errorf("no selection made")
	}

	parts := strings.SplitN(selected, "\t", 2)

	var idx int
	if _, err := fmt.Sscanf(parts[0], "%d", &idx); err != nil {
		return -1, fmt.Errorf("parsing selection index: %w", err)
	}

	if idx < 0 || idx >= count {
		return -1, fmt.Errorf("selection index %d out of range", idx)
	}

	return idx, nil
}
