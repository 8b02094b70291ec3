package rapidapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yt-relay/internal/youtube"
)

const (
	HeaderKey  = "X-RapidAPI-Key"
	HeaderHost = "X-RapidAPI-Host"

	DefaultAudioQuality = "128"
	DefaultVideoQuality = "720"
	audioLanguage       = "en"

	// DefaultMaxBodyBytes caps how much of an upstream body is read.
	DefaultMaxBodyBytes = 8 << 20
)

// ErrResponseTooLarge is returned when the upstream body exceeds MaxBodyBytes.
var ErrResponseTooLarge = errors.New("upstream response too large")

type Client struct {
	BaseURL      string
	Host         string
	APIKey       string
	Client       *http.Client
	MaxBodyBytes int64
}

func NewClient(baseURL, host, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Host:         host,
		APIKey:       apiKey,
		Client:       &http.Client{Timeout: timeout},
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Query describes one upstream lookup. VideoURL must already be canonical.
type Query struct {
	Info         bool
	VideoURL     string
	Format       youtube.Format
	Quality      string
	AudioQuality string
}

// Response is the raw upstream answer. Body is kept as text so callers can
// report on non-JSON payloads.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BuildURL selects the endpoint family and query shape for q.
func (c *Client) BuildURL(q Query) string {
	if q.Info {
		v := url.Values{}
		v.Set("function", "i")
		v.Set("u", q.VideoURL)
		return c.BaseURL + "/ajax/api.php?" + v.Encode()
	}

	v := url.Values{}
	v.Set("format", string(q.Format))
	v.Set("add_info", "0")
	v.Set("allow_extended_duration", "false")
	v.Set("no_merge", "false")
	if q.Format.IsVideo() {
		v.Set("quality", firstNonEmpty(q.Quality, DefaultVideoQuality))
	} else {
		v.Set("audio_quality", firstNonEmpty(q.AudioQuality, q.Quality, DefaultAudioQuality))
		v.Set("audio_language", audioLanguage)
	}
	v.Set("url", q.VideoURL)
	return c.BaseURL + "/ajax/download.php?" + v.Encode()
}

// Do issues a single GET for q. Transport failures are returned as errors;
// any HTTP status is returned in Response for the caller to map.
func (c *Client) Do(ctx context.Context, q Query) (*Response, error) {
	apiURL := c.BuildURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set(HeaderKey, c.APIKey)
	req.Header.Set(HeaderHost, c.Host)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: status %d, over %d bytes", ErrResponseTooLarge, resp.StatusCode, limit)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
