package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"golang.org/x/term"

	"mediagrab/internal/media"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	bestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// jsonOutput reports whether results go out as JSON: on request, or
// whenever stdout is not a terminal.
func jsonOutput() bool {
	return flagJSON || !term.IsTerminal(int(os.Stdout.Fd()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecord writes a record as JSON or as a styled summary.
func printRecord(w io.Writer, rec *media.Record, asJSON, plain bool) error {
	if plain {
		cp := *rec
		cp.Description = rec.PlainDescription()
		rec = &cp
	}
	if asJSON {
		return printJSON(w, rec)
	}

	fmt.Fprintln(w, titleStyle.Render(rec.Title))
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintln(w, labelStyle.Render(label)+value)
		}
	}
	row("id", rec.ID)
	row("extractor", rec.Extractor)
	row("duration", optional(rec.Duration, formatDuration))
	row("views", optional(rec.ViewCount, strconv.Itoa))
	row("kudos", optional(rec.LikeCount, strconv.Itoa))
	if best := rec.BestFormat(); best != nil {
		row("best", best.FormatID+" "+best.URL)
	}
	if thumb := rec.LargestThumbnail(); thumb != nil {
		row("thumbnail", thumb.URL)
	}
	if desc := strings.TrimSpace(rec.Description); desc != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, desc)
	}
	return nil
}

// printFormats writes a record's formats, best last.
func printFormats(w io.Writer, rec *media.Record, asJSON bool) error {
	if asJSON {
		return printJSON(w, rec.Formats)
	}
	if len(rec.Formats) == 0 {
		fmt.Fprintln(w, "No formats found.")
		return nil
	}

	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf("%-12s %-8s %s", "FORMAT", "QUALITY", "URL")))
	for i, f := range rec.Formats {
		id := f.FormatID
		if id == "" {
			id = "-"
		}
		line := fmt.Sprintf("%-12s %-8d %s", id, f.Quality, f.URL)
		if i == len(rec.Formats)-1 {
			line = bestStyle.Render(line + "  (best)")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func optional(o mo.Option[int], render func(int) string) string {
	if v, ok := o.Get(); ok {
		return render(v)
	}
	return ""
}

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
