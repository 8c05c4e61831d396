// Package media defines shared types for the mediagrab application.
package media

import "github.com/samber/mo"

// Record is the normalized description of one extracted video.
type Record struct {
	ID          string         `json:"id"`    // Canonical identifier (e.g., "100047162/9197be8a")
	Title       string         `json:"title"` // Display title
	Description string         `json:"description"`
	Thumbnails  []Thumbnail    `json:"thumbnails"`
	Formats     []Format       `json:"formats"` // Sorted ascending by quality, best last
	Duration    mo.Option[int] `json:"duration"`
	LikeCount   mo.Option[int] `json:"like_count"`
	ViewCount   mo.Option[int] `json:"view_count"`

	Extractor  string `json:"extractor,omitempty"`   // Name of the adapter that produced the record
	WebpageURL string `json:"webpage_url,omitempty"` // URL the record was extracted from
}

// Format is one playable stream of a video.
type Format struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"` // Site-provided version label, e.g. "720p"
	Quality  int    `json:"quality"`   // Higher is better
}

// Thumbnail is a still image of a video.
type Thumbnail struct {
	ID  string `json:"id"` // e.g., "thumb-large"
	URL string `json:"url"`
}

// HistoryEntry represents a single entry in the extraction history.
type HistoryEntry struct {
	ID        string // Canonical record ID
	Title     string // Display title
	Extractor string // Adapter name
	URL       string // Page URL the record was extracted from
	FormatID  string // Format played or downloaded, empty if only printed
	Duration  int    // Duration in seconds, 0 when unknown
}
