package youtube

import (
	"errors"
	"testing"
)

const rickID = "dQw4w9WgXcQ"

func TestExtractVideoID_EquivalentForms(t *testing.T) {
	cases := []struct {
		input string
		kind  string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "watch"},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "watch"},
		{"youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "watch"},
		{"https://youtu.be/dQw4w9WgXcQ", "short"},
		{"youtu.be/dQw4w9WgXcQ?si=abc", "short"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "embed"},
		{"https://youtube.com/v/dQw4w9WgXcQ", "legacy"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "mobile"},
		{"m.youtube.com/watch?app=m&v=dQw4w9WgXcQ", "mobile"},
		{"dQw4w9WgXcQ", "id"},
		{"  https://youtu.be/dQw4w9WgXcQ  ", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			id, kind, err := ExtractVideoID(tc.input)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error = %v", tc.input, err)
			}
			if id != rickID {
				t.Fatalf("id = %q, want %q", id, rickID)
			}
			if kind != tc.kind {
				t.Fatalf("kind = %q, want %q", kind, tc.kind)
			}
		})
	}
}

func TestExtractVideoID_FirstVParamWins(t *testing.T) {
	id, _, err := ExtractVideoID("https://www.youtube.com/watch?v=AAAAAAAAAAA&list=x&v=BBBBBBBBBBB")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if id != "AAAAAAAAAAA" {
		t.Fatalf("id = %q, want AAAAAAAAAAA", id)
	}
}

func TestExtractVideoID_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/channel/UCabcdefghijk",
		"dQw4w9WgXc",
		"dQw4w9WgXcQX",
		"https://evil.example/?u=youtube.com/watch?v=dQw4w9WgXcQ",
	}
	for _, in := range inputs {
		if id, _, err := ExtractVideoID(in); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("ExtractVideoID(%q) = %q, %v; want ErrInvalidURL", in, id, err)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	got, err := CanonicalURL("https://youtu.be/dQw4w9WgXcQ?t=10")
	if err != nil {
		t.Fatalf("CanonicalURL() error = %v", err)
	}
	if want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"; got != want {
		t.Fatalf("CanonicalURL() = %q, want %q", got, want)
	}
	if _, err := CanonicalURL("not a url"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("CanonicalURL(invalid) error = %v, want ErrInvalidURL", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"mp3", "MP3", " m4a ", "mp4"} {
		if _, err := ParseFormat(in); err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", in, err)
		}
	}
	for _, in := range []string{"", "wav", "webm", "mp3 mp4"} {
		if _, err := ParseFormat(in); !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", in, err)
		}
	}
	if f, _ := ParseFormat("MP4"); !f.IsVideo() {
		t.Fatal("mp4 should be video")
	}
	if f, _ := ParseFormat("m4a"); f.IsVideo() {
		t.Fatal("m4a should not be video")
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL(rickID); got != "https://www.youtube.com/watch?v="+rickID {
		t.Fatalf("WatchURL() = %q", got)
	}
}
