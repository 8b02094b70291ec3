// Package invoker is the caller side of the relay: it sends one lookup to the
// proxy and hands the outcome to a Presenter.
package invoker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yt-relay/internal/domain"
)

const (
	MsgEmptyURL      = "Please enter a valid YouTube URL"
	MsgLinkNotFound  = "Download link not found."
	MsgRequestFailed = "Failed to get download link. Check console."
)

// Presenter renders results. Implementations decide whether Open launches
// the link or only shows it.
type Presenter interface {
	Alert(msg string)
	ShowInfo(title, thumbnail, duration string)
	Open(link string) error
}

type Input struct {
	URL     string
	Format  string
	Quality string
	Action  string
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     log.Default(),
	}
}

// RequestURL builds the query-string call to the proxy. Audio formats send
// the quality as audioQuality.
func (c *Client) RequestURL(in Input) string {
	action := in.Action
	if action == "" {
		action = domain.ActionDownload
	}
	v := url.Values{}
	v.Set("action", action)
	v.Set("url", in.URL)
	if in.Format != "" {
		v.Set("format", in.Format)
	}
	if in.Quality != "" {
		if in.Format == "mp4" {
			v.Set("quality", in.Quality)
		} else {
			v.Set("audioQuality", in.Quality)
		}
	}
	return c.BaseURL + "/api/youtube?" + v.Encode()
}

// Fetch performs the call. Any non-2xx status is reported as a plain HTTP
// error; the envelope is not inspected.
func (c *Client) Fetch(ctx context.Context, in Input) (*domain.DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(in), nil)
	if err != nil {
		return nil, err
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error %d", resp.StatusCode)
	}
	var res domain.DownloadResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &res, nil
}

// Run is one user action: validate, call, render.
func (c *Client) Run(ctx context.Context, p Presenter, in Input) {
	in.URL = strings.TrimSpace(in.URL)
	if in.URL == "" {
		p.Alert(MsgEmptyURL)
		return
	}

	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}

	res, err := c.Fetch(ctx, in)
	if err != nil {
		logger.Printf("download lookup failed: %v", err)
		p.Alert(MsgRequestFailed)
		return
	}

	if res.Title != "" {
		p.ShowInfo(res.Title, res.Thumbnail, string(res.Duration))
	}
	if res.URL == "" {
		p.Alert(MsgLinkNotFound)
		return
	}
	if err := p.Open(res.URL); err != nil {
		logger.Printf("open %s: %v", res.URL, err)
		p.Alert(MsgRequestFailed)
	}
}
