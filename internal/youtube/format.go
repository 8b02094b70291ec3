package youtube

import "strings"

type Format string

const (
	MP3 Format = "mp3"
	M4A Format = "m4a"
	MP4 Format = "mp4"
)

// ParseFormat lower-cases s and checks it against the allow-list.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case MP3, M4A, MP4:
		return f, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f Format) IsVideo() bool { return f == MP4 }
