package youtube

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL indicates the input is not a recognized YouTube URL or ID.
	ErrInvalidURL = errors.New("invalid YouTube URL")
	// ErrUnsupportedFormat indicates a format outside the allow-list.
	ErrUnsupportedFormat = errors.New("invalid format. Use mp3, mp4, or m4a")
)

const watchBase = "https://www.youtube.com/watch?v="

type matcher struct {
	name    string
	pattern *regexp.Regexp
}

// matchers are evaluated in order; the first one that matches decides the ID.
var matchers = []matcher{
	{"watch", regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^#]*?&)??v=([A-Za-z0-9_-]{11})`)},
	{"short", regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]{11})`)},
	{"embed", regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})`)},
	{"legacy", regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/v/([A-Za-z0-9_-]{11})`)},
	{"mobile", regexp.MustCompile(`^(?:https?://)?m\.youtube\.com/watch\?(?:[^#]*?&)??v=([A-Za-z0-9_-]{11})`)},
	{"id", regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`)},
}

// ExtractVideoID returns the 11-character video ID and the name of the
// matcher that produced it.
func ExtractVideoID(input string) (id, kind string, err error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", "", ErrInvalidURL
	}
	for _, m := range matchers {
		if sub := m.pattern.FindStringSubmatch(s); len(sub) == 2 {
			return sub[1], m.name, nil
		}
	}
	return "", "", ErrInvalidURL
}

// CanonicalURL rewrites any recognized form to https://www.youtube.com/watch?v={id}.
func CanonicalURL(input string) (string, error) {
	id, _, err := ExtractVideoID(input)
	if err != nil {
		return "", err
	}
	return WatchURL(id), nil
}

// WatchURL returns the canonical watch URL for an already extracted ID.
func WatchURL(id string) string {
	return watchBase + id
}
