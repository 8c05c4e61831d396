package download

import (
	"path/filepath"
	"strings"
	"testing"

	"mediagrab/internal/media"
)

func TestOutputPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	rec := &media.Record{ID: "100047162/9197be8a", Title: "Engelse humor"}

	path, err := OutputPath(rec, dir)
	if err != nil {
		t.Fatalf("OutputPath() error: %v", err)
	}
	if want := filepath.Join(dir, "Engelse humor [100047162_9197be8a].mp4"); path != want {
		t.Errorf("OutputPath() = %q, want %q", path, want)
	}
}

func TestOutputPathTraversalTitle(t *testing.T) {
	dir := t.TempDir()
	rec := &media.Record{ID: "1/a", Title: "../../etc/passwd"}

	path, err := OutputPath(rec, dir)
	if err != nil {
		t.Fatalf("OutputPath() error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path %q escapes %q", path, dir)
	}
}

func TestArgs(t *testing.T) {
	rec := &media.Record{Title: "Engelse humor", WebpageURL: "https://www.dumpert.nl/item/1_a"}
	format := &media.Format{URL: "https://media.dumpert.nl/x.mp4", FormatID: "720p"}

	args := Args(rec, format, "/tmp/out.mp4")
	joined := strings.Join(args, " ")

	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Errorf("output path should be last, got %q", args[len(args)-1])
	}
	if !strings.Contains(joined, "-i https://media.dumpert.nl/x.mp4") {
		t.Errorf("args missing input URL: %v", args)
	}
	for _, a := range args {
		if a == "title=Engelse humor" {
			return
		}
	}
	t.Errorf("args missing title metadata as a single argument: %v", args)
}
