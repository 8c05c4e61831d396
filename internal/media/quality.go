package media

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// UnknownQuality is the rank given to labels missing from a ranking list.
const UnknownQuality = -1

// QualityFunc ranks a format label.
type QualityFunc func(label string) int

// Qualities returns a ranking function over labels ordered worst to best.
// A label's rank is its position in the list; labels not in the list get
// UnknownQuality, which sorts below every named label.
func Qualities(labels ...string) QualityFunc {
	ranks := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, seen := ranks[l]; !seen {
			ranks[l] = i
		}
	}
	return func(label string) int {
		if r, ok := ranks[label]; ok {
			return r
		}
		return UnknownQuality
	}
}

// SortFormats orders formats ascending by quality so the best is last.
// Formats of equal quality keep their input order.
func SortFormats(formats []Format) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Quality < formats[j].Quality
	})
}

// BestFormat returns the highest ranked format, or nil if there are none.
func (r *Record) BestFormat() *Format {
	if len(r.Formats) == 0 {
		return nil
	}
	return &r.Formats[len(r.Formats)-1]
}

// WorstFormat returns the lowest ranked format, or nil if there are none.
func (r *Record) WorstFormat() *Format {
	if len(r.Formats) == 0 {
		return nil
	}
	return &r.Formats[0]
}

// SelectFormat picks a format by preference: "best", "worst" or a format ID.
// An unknown format ID falls back to the best format.
func (r *Record) SelectFormat(pref string) *Format {
	switch strings.ToLower(pref) {
	case "", "best":
		return r.BestFormat()
	case "worst":
		return r.WorstFormat()
	}

	_, idx, ok := lo.FindLastIndexOf(r.Formats, func(f Format) bool {
		return strings.EqualFold(f.FormatID, pref)
	})
	if !ok {
		return r.BestFormat()
	}
	return &r.Formats[idx]
}

// LargestThumbnail returns the last thumbnail, which by convention is the
// largest one, or nil if there are none.
func (r *Record) LargestThumbnail() *Thumbnail {
	if len(r.Thumbnails) == 0 {
		return nil
	}
	return &r.Thumbnails[len(r.Thumbnails)-1]
}

// PlainDescription renders the HTML description as plain text, one line per
// paragraph or line break.
func (r *Record) PlainDescription() string {
	if r.Description == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Description))
	if err != nil {
		return strings.TrimSpace(r.Description)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := lo.FilterMap(strings.Split(doc.Text(), "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	return strings.Join(lines, "\n")
}
