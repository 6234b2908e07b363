// Package youtube extracts video identifiers from the URL shapes clients send.
package youtube

import "strings"

// PlaceholderVideoID is returned when no identifier could be found. It keeps
// the pipeline moving on malformed URLs.
const PlaceholderVideoID = "extracted-video-id"

const (
	shortHost  = "youtu.be/"
	watchQuery = "youtube.com/watch?v="
)

// Parse returns the video id embedded in rawURL and whether one was found.
func Parse(rawURL string) (string, bool) {
	switch {
	case strings.Contains(rawURL, shortHost):
		rest := rawURL[strings.LastIndex(rawURL, "/")+1:]
		id, _, _ := strings.Cut(rest, "?")
		return id, id != ""
	case strings.Contains(rawURL, watchQuery):
		_, rest, _ := strings.Cut(rawURL, "v=")
		id, _, _ := strings.Cut(rest, "&")
		return id, id != ""
	}
	return "", false
}

// VideoID never fails: unparsable input yields PlaceholderVideoID.
func VideoID(rawURL string) string {
	if id, ok := Parse(rawURL); ok {
		return id
	}
	return PlaceholderVideoID
}
