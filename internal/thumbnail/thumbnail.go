// Package thumbnail picks and saves video thumbnails.
package thumbnail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
)

// maxImageSize caps a thumbnail download.
const maxImageSize = 10 * 1024 * 1024

var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Pick returns the thumbnail with the given ID, or the largest one when id is
// empty or not present. Returns nil if there are no thumbnails.
func Pick(thumbs []media.Thumbnail, id string) *media.Thumbnail {
	if len(thumbs) == 0 {
		return nil
	}
	if id != "" {
		if t, ok := lo.Find(thumbs, func(t media.Thumbnail) bool { return strings.EqualFold(t.ID, id) }); ok {
			return &t
		}
	}
	return &thumbs[len(thumbs)-1]
}

// Ext guesses the image extension from the thumbnail URL, ".jpg" by default.
func Ext(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if lo.Contains(imageExts, ext) {
		return ext
	}
	return ".jpg"
}

// Save downloads a record's thumbnail into dir next to where the video would
// be written and returns the local path.
func Save(ctx context.Context, client *http.Client, rec *media.Record, thumb *media.Thumbnail, dir string) (string, error) {
	if err := httputil.ValidateURL(thumb.URL); err != nil {
		return "", fmt.Errorf("invalid thumbnail URL: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating thumbnail directory: %w", err)
	}

	localPath, err := httputil.SafeDownloadPath(dir, httputil.RecordFilename(rec.Title, rec.ID, Ext(thumb.URL)))
	if err != nil {
		return "", fmt.Errorf("invalid thumbnail path: %w", err)
	}

	resp, err := httputil.Get(ctx, client, thumb.URL)
	if err != nil {
		return "", fmt.Errorf("downloading thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail download returned status %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a partial image.
	tmp, err := os.CreateTemp(dir, ".thumb-*")
	if err != nil {
		return "", fmt.Errorf("creating thumbnail file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageSize)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing thumbnail file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing thumbnail file: %w", err)
	}
	if err := os.Rename(tmpName, localPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("renaming thumbnail file: %w", err)
	}

	return filepath.Clean(localPath), nil
}
