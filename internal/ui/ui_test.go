package ui

import (
	"strings"
	"testing"

	"mediagrab/internal/media"
)

func TestNumbered(t *testing.T) {
	got := numbered([]string{"first", "multi\nline\ttitle"})
	want := "0\tfirst\n1\tmulti line title\n"
	if got != want {
		t.Errorf("numbered() = %q, want %q", got, want)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		count   int
		want    int
		wantErr bool
	}{
		{"valid", "1\tsecond\n", 3, 1, false},
		{"first", "0\tfirst", 3, 0, false},
		{"empty", "", 3, -1, true},
		{"out of range", "5\tx", 3, -1, true},
		{"negative", "-1\tx", 3, -1, true},
		{"garbage", "abc\tx", 3, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.out, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelection() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSelection() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectNoItems(t *testing.T) {
	if _, err := Select("Format", nil); err == nil {
		t.Error("Select with no items should fail")
	}
}

func TestFormatLabel(t *testing.T) {
	label := FormatLabel(media.Format{URL: "https://x/a.mp4", FormatID: "720p", Quality: 3})
	if !strings.HasPrefix(label, "720p") || !strings.HasSuffix(label, "https://x/a.mp4") {
		t.Errorf("FormatLabel() = %q", label)
	}

	if label := FormatLabel(media.Format{URL: "u", Quality: -1}); !strings.HasPrefix(label, "(unlabeled)") {
		t.Errorf("FormatLabel() for unlabeled = %q", label)
	}
}
