package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var ugc = bluemonday.UGCPolicy()

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatNumber": FormatNumber,
		"percent":      Percent,
		"safeHTML":     SafeHTML,
		"embedURL":     EmbedURL,
		"date":         FormatDate,
		"add":          func(a, b int) int { return a + b },
		"join":         strings.Join,
	}
}

// FormatNumber renders audience sizes as 72.1K or 18.5M.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimZero(float64(n)/1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimZero(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func Percent(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64) + "%"
}

// SafeHTML sanitizes stored rich text before marking it trusted.
func SafeHTML(s string) template.HTML {
	return template.HTML(ugc.Sanitize(s))
}

// EmbedURL turns a YouTube watch or short link into its embed form. Other
// URLs are returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	switch strings.TrimPrefix(u.Host, "www.") {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}
	return raw
}

// FormatDate accepts RFC3339 text and renders the date part.
func FormatDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
