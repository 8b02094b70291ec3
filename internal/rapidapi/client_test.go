package rapidapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"yt-relay/internal/youtube"
)

const canonical = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func parseQuery(t *testing.T, raw string) (string, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u.Path, u.Query()
}

func TestBuildURL_Info(t *testing.T) {
	c := NewClient("https://api.example/", "api.example", "k", 0)
	path, q := parseQuery(t, c.BuildURL(Query{Info: true, VideoURL: canonical}))
	if path != "/ajax/api.php" {
		t.Fatalf("path = %q, want /ajax/api.php", path)
	}
	if q.Get("function") != "i" || q.Get("u") != canonical {
		t.Fatalf("query = %v", q)
	}
}

func TestBuildURL_Audio(t *testing.T) {
	c := NewClient("https://api.example", "api.example", "k", 0)
	path, q := parseQuery(t, c.BuildURL(Query{VideoURL: canonical, Format: youtube.MP3}))
	if path != "/ajax/download.php" {
		t.Fatalf("path = %q", path)
	}
	want := map[string]string{
		"format":         "mp3",
		"add_info":       "0",
		"audio_quality":  "128",
		"audio_language": "en",
		"url":            canonical,
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Fatalf("%s = %q, want %q", k, got, v)
		}
	}
	if q.Has("quality") {
		t.Fatalf("audio query must not carry quality: %v", q)
	}

	_, q = parseQuery(t, c.BuildURL(Query{VideoURL: canonical, Format: youtube.M4A, AudioQuality: "320"}))
	if q.Get("audio_quality") != "320" {
		t.Fatalf("audio_quality = %q, want 320", q.Get("audio_quality"))
	}
}

func TestBuildURL_Video(t *testing.T) {
	c := NewClient("https://api.example", "api.example", "k", 0)
	_, q := parseQuery(t, c.BuildURL(Query{VideoURL: canonical, Format: youtube.MP4, Quality: "1080"}))
	if q.Get("format") != "mp4" || q.Get("quality") != "1080" {
		t.Fatalf("query = %v", q)
	}
	if q.Has("audio_language") {
		t.Fatalf("video query must not carry audio_language: %v", q)
	}

	_, q = parseQuery(t, c.BuildURL(Query{VideoURL: canonical, Format: youtube.MP4}))
	if q.Get("quality") != DefaultVideoQuality {
		t.Fatalf("quality = %q, want default", q.Get("quality"))
	}
}

func TestDo_SendsHeadersAndReturnsBody(t *testing.T) {
	var gotKey, gotHost, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(HeaderKey)
		gotHost = r.Header.Get(HeaderHost)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("nope"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "api.example", "secret", 5*time.Second)
	resp, err := c.Do(context.Background(), Query{VideoURL: canonical, Format: youtube.MP3})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotKey != "secret" || gotHost != "api.example" {
		t.Fatalf("headers key=%q host=%q", gotKey, gotHost)
	}
	if gotPath != "/ajax/download.php" {
		t.Fatalf("path = %q", gotPath)
	}
	if resp.StatusCode != http.StatusTeapot || resp.OK() {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != "nope" {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestDo_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()

	c := NewClient(base, "api.example", "k", time.Second)
	_, err := c.Do(context.Background(), Query{VideoURL: canonical, Format: youtube.MP3})
	if err == nil || !strings.Contains(err.Error(), "upstream request") {
		t.Fatalf("Do() error = %v, want upstream request error", err)
	}
}

func TestDo_BodyLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"` + strings.Repeat("a", 64) + `"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "api.example", "k", time.Second)
	c.MaxBodyBytes = 32
	_, err := c.Do(context.Background(), Query{VideoURL: canonical, Format: youtube.MP3})
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("Do() error = %v, want ErrResponseTooLarge", err)
	}

	c.MaxBodyBytes = 1024
	resp, err := c.Do(context.Background(), Query{VideoURL: canonical, Format: youtube.MP3})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(resp.Body) != 76 {
		t.Fatalf("body length = %d, want 76", len(resp.Body))
	}
}
