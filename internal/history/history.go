// Package history records extracted items in a TSV file so they can be
// listed and replayed later. Uses atomic writes (temp+rename) to prevent
// data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mediagrab/internal/config"
	"mediagrab/internal/media"
)

// TSV columns: id, title, extractor, url, format_id, duration
const numColumns = 6

// fieldCleaner keeps remote text from breaking the TSV layout.
var fieldCleaner = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// Load reads the history file and returns all entries, oldest first.
func Load() ([]media.HistoryEntry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []media.HistoryEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry in the history file. An entry with the
// same extractor and ID is replaced and moved to the end.
func Save(entry media.HistoryEntry) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if !sameItem(e, entry) {
			kept = append(kept, e)
		}
	}

	return write(append(kept, entry))
}

// Remove deletes an entry from the history.
func Remove(extractor, id string) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	var filtered []media.HistoryEntry
	for _, e := range entries {
		if !(e.Extractor == extractor && e.ID == id) {
			filtered = append(filtered, e)
		}
	}

	return write(filtered)
}

// FormatForDisplay creates display strings for fzf selection from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		display := fmt.Sprintf("%s [%s]", e.Title, e.Extractor)
		if e.Duration > 0 {
			display += fmt.Sprintf(" (%d:%02d)", e.Duration/60, e.Duration%60)
		}
		items = append(items, display)
	}
	return items
}

func sameItem(a, b media.HistoryEntry) bool {
	return a.Extractor == b.Extractor && a.ID == b.ID
}

// write replaces the history file atomically: temp file, then rename.
func write(entries []media.HistoryEntry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// parseLine parses a TSV line into a HistoryEntry.
func parseLine(line string) (media.HistoryEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return media.HistoryEntry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	duration, _ := strconv.Atoi(fields[5])

	return media.HistoryEntry{
		ID:        fields[0],
		Title:     fields[1],
		Extractor: fields[2],
		URL:       fields[3],
		FormatID:  fields[4],
		Duration:  duration,
	}, nil
}

// formatLine converts a HistoryEntry to a TSV line.
func formatLine(e media.HistoryEntry) string {
	return strings.Join([]string{
		fieldCleaner.Replace(e.ID),
		fieldCleaner.Replace(e.Title),
		fieldCleaner.Replace(e.Extractor),
		fieldCleaner.Replace(e.URL),
		fieldCleaner.Replace(e.FormatID),
		strconv.Itoa(e.Duration),
	}, "\t")
}
