package extract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tidwall/gjson"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
)

// DumpertAPI is the base URL of the dumpert.nl mobile metadata API.
const DumpertAPI = "http://api-live.dumpert.nl"

var (
	// dumpertURLPattern matches item, embed and legacy mediabase pages and the
	// ?selectedId= selector on www., legacy. and the bare host.
	dumpertURLPattern = regexp.MustCompile(`^https?://(?:(?:www|legacy)\.)?dumpert\.nl/(?:mediabase/|embed/|item/|(?:toppers|latest)?\?selectedId=)(?P<id>[0-9]+[/_][0-9a-zA-Z]+)`)

	// dumpertIDPattern matches a canonical identifier.
	dumpertIDPattern = regexp.MustCompile(`^[0-9]+/[0-9a-zA-Z]+$`)

	// dumpertQuality ranks variant versions, worst first.
	dumpertQuality = media.Qualities("flv", "mobile", "tablet", "720p", "stream")

	stillBases    = []string{"thumb", "still"}
	stillSuffixes = []string{"", "-medium", "-large"}
)

// Dumpert extracts videos from dumpert.nl.
type Dumpert struct {
	client  *http.Client
	apiBase string
}

// NewDumpert creates a dumpert.nl extractor. A nil client gets the default
// hardened client; an empty apiBase means DumpertAPI.
func NewDumpert(client *http.Client, apiBase string) *Dumpert {
	if client == nil {
		client = httputil.NewClient(0)
	}
	if apiBase == "" {
		apiBase = DumpertAPI
	}
	return &Dumpert{client: client, apiBase: apiBase}
}

func (d *Dumpert) Name() string { return "dumpert" }

// Match returns the canonical "<number>/<hash>" identifier of a dumpert URL.
// Both "/" and "_" are accepted as separator in the URL.
func (d *Dumpert) Match(rawURL string) (string, bool) {
	m := dumpertURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[dumpertURLPattern.SubexpIndex("id")], "_", "/"), true
}

// Extract fetches and maps the metadata of one video.
func (d *Dumpert) Extract(ctx context.Context, id string) (*media.Record, error) {
	id = strings.ReplaceAll(id, "_", "/")
	if !dumpertIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: invalid dumpert ID %q", ErrNoMatch, id)
	}

	apiURL := httputil.BuildURL(d.apiBase, "mobile_api", "json", "info", strings.ReplaceAll(id, "/", "_"))
	log.Debug().Str("url", apiURL).Msg("fetching dumpert metadata")

	body, err := httputil.GetJSON(ctx, d.client, apiURL)
	if err != nil {
		return nil, newFetchError(apiURL, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, &FetchError{URL: apiURL, Err: errors.New("response is not valid JSON")}
	}

	rec, err := parseDumpertInfo(id, gjson.ParseBytes(body))
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("formats", len(rec.Formats)).
		Int("thumbnails", len(rec.Thumbnails)).
		Msg("mapped dumpert metadata")
	return rec, nil
}

// parseDumpertInfo maps an info API response onto a record.
func parseDumpertInfo(id string, doc gjson.Result) (*media.Record, error) {
	items := arrayOf(doc.Get("items"))
	if len(items) == 0 {
		return nil, &SchemaError{Field: "items", Reason: "is missing or empty"}
	}

	item := items[0]
	if !item.IsObject() {
		return nil, &SchemaError{Field: "items.0", Reason: "is not an object"}
	}

	title := item.Get("title")
	if !title.Exists() || title.Type == gjson.Null {
		return nil, &SchemaError{Field: "items.0.title", Reason: "is missing"}
	}
	if title.IsObject() || title.IsArray() {
		return nil, &SchemaError{Field: "items.0.title", Reason: "is not a scalar"}
	}

	video, ok := lo.Find(arrayOf(item.Get("media")), func(m gjson.Result) bool {
		return m.Get("mediatype").String() == "VIDEO"
	})
	if !ok {
		return nil, &SchemaError{Field: "items.0.media", Reason: "has no VIDEO entry"}
	}

	stats := item.Get("stats")

	return &media.Record{
		ID:          id,
		Title:       title.String(),
		Description: stringOf(item.Get("description")),
		Thumbnails:  dumpertThumbnails(item.Get("stills")),
		Formats:     dumpertFormats(video.Get("variants")),
		Duration:    intOrNone(video.Get("duration")),
		LikeCount:   intOrNone(stats.Get("kudos_total")),
		ViewCount:   intOrNone(stats.Get("views_total")),
	}, nil
}

// dumpertFormats builds one format per variant that has a URI, best last.
func dumpertFormats(variants gjson.Result) []media.Format {
	formats := make([]media.Format, 0)
	for _, v := range arrayOf(variants) {
		uri := stringOf(v.Get("uri"))
		if uri == "" {
			continue
		}
		version := stringOf(v.Get("version"))
		formats = append(formats, media.Format{
			URL:      uri,
			FormatID: version,
			Quality:  dumpertQuality(version),
		})
	}
	media.SortFormats(formats)
	return formats
}

// dumpertThumbnails collects stills in size order: thumb, thumb-medium,
// thumb-large, still, still-medium, still-large.
func dumpertThumbnails(stills gjson.Result) []media.Thumbnail {
	thumbnails := make([]media.Thumbnail, 0)
	if !stills.IsObject() {
		return thumbnails
	}

	byName := stills.Map()
	for _, base := range stillBases {
		for _, suffix := range stillSuffixes {
			stillID := base + suffix
			stillURL := stringOf(byName[stillID])
			if stillURL == "" {
				continue
			}
			thumbnails = append(thumbnails, media.Thumbnail{ID: stillID, URL: stillURL})
		}
	}
	return thumbnails
}

// arrayOf returns the elements of a JSON array, or nil for anything else.
func arrayOf(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

// stringOf returns a JSON string value, or "" for anything else.
func stringOf(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// intOrNone coerces a JSON number or numeric string to an int. Anything
// else, including a missing value or a number out of int range, is absent.
func intOrNone(r gjson.Result) mo.Option[int] {
	switch r.Type {
	case gjson.Number:
		if math.IsNaN(r.Num) || r.Num < math.MinInt || r.Num >= math.MaxInt {
			return mo.None[int]()
		}
		return mo.Some(int(r.Num))
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(r.Str)); err == nil {
			return mo.Some(n)
		}
	}
	return mo.None[int]()
}
