package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"yt-relay/internal/domain"
	"yt-relay/internal/rapidapi"
	"yt-relay/internal/youtube"
)

const (
	maxRequestBody    = 1 << 20
	upstreamErrorSnip = 500
	upstreamParseSnip = 200
)

// Handler validates a download request, forwards it to the upstream API
// once and relays the answer. It holds no per-request state.
type Handler struct {
	apiKey   string
	upstream *rapidapi.Client
	logger   *log.Logger
}

func NewHandler(apiKey string, upstream *rapidapi.Client, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{apiKey: apiKey, upstream: upstream, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := requestID(r.Context())
	body, err := h.serve(r)
	if err != nil {
		e := asError(err)
		h.logger.Printf("[%s] %s %s -> %d %s: %v", id, r.Method, r.URL.Path, e.Status, e.Kind, err)
		writeError(w, e)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) serve(r *http.Request) ([]byte, error) {
	req, err := parseRequest(r)
	if err != nil {
		return nil, err
	}

	if h.apiKey == "" {
		return nil, &Error{
			Kind:    KindConfiguration,
			Status:  http.StatusInternalServerError,
			Message: "Server configuration error: API key not found",
		}
	}

	q, kind, err := buildQuery(req)
	if err != nil {
		return nil, err
	}

	id := requestID(r.Context())
	h.logger.Printf("[%s] forwarding action=%s format=%s url=%s (matched %s)", id, req.Action, q.Format, q.VideoURL, kind)

	resp, err := h.upstream.Do(r.Context(), q)
	if errors.Is(err, rapidapi.ErrResponseTooLarge) {
		return nil, &Error{
			Kind:    KindUpstream,
			Status:  http.StatusBadGateway,
			Message: "Upstream response too large",
			Details: err.Error(),
			Err:     err,
		}
	}
	if err != nil {
		return nil, internalError(err)
	}
	h.logger.Printf("[%s] upstream status %d (%d bytes)", id, resp.StatusCode, len(resp.Body))

	if !resp.OK() {
		return nil, &Error{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API request failed: %d", resp.StatusCode),
			Details: truncate(string(resp.Body), upstreamErrorSnip),
		}
	}

	// RawMessage keeps the JSON value as sent, minus surrounding whitespace.
	var payload json.RawMessage
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, &Error{
			Kind:    KindUpstreamFormat,
			Status:  http.StatusInternalServerError,
			Message: "Invalid JSON response from API",
			Details: "Response: " + truncate(string(resp.Body), upstreamParseSnip) + "...",
			Err:     err,
		}
	}
	return payload, nil
}

// parseRequest accepts the JSON body shape on POST and the query-string
// shape on GET.
func parseRequest(r *http.Request) (domain.DownloadRequest, error) {
	var req domain.DownloadRequest
	switch r.Method {
	case http.MethodPost:
		dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
		if err := dec.Decode(&req); err != nil {
			return req, validationError("Invalid request body", err)
		}
		if req.Action == "" {
			req.Action = domain.ActionDownload
		}
		if strings.TrimSpace(req.URL) == "" || (req.Action != domain.ActionInfo && strings.TrimSpace(req.Format) == "") {
			return req, validationError("URL and format are required", nil)
		}
	case http.MethodGet:
		q := r.URL.Query()
		req = domain.DownloadRequest{
			URL:          q.Get("url"),
			Format:       q.Get("format"),
			Quality:      q.Get("quality"),
			AudioQuality: q.Get("audioQuality"),
			Action:       q.Get("action"),
		}
		if strings.TrimSpace(req.URL) == "" || req.Action == "" {
			return req, validationError("Missing required parameters", nil)
		}
	default:
		return req, &Error{
			Kind:    KindMethodNotAllowed,
			Status:  http.StatusMethodNotAllowed,
			Message: "Method not allowed",
		}
	}
	return req, nil
}

// buildQuery also reports which URL form matched, for logging.
func buildQuery(req domain.DownloadRequest) (rapidapi.Query, string, error) {
	var q rapidapi.Query
	switch req.Action {
	case domain.ActionInfo:
		q.Info = true
	case domain.ActionDownload:
	default:
		return q, "", validationError("Invalid action. Use info or download", nil)
	}

	id, kind, err := youtube.ExtractVideoID(req.URL)
	if err != nil {
		return q, "", validationError("Invalid YouTube URL", err)
	}
	q.VideoURL = youtube.WatchURL(id)

	if q.Info && req.Format == "" {
		return q, kind, nil
	}
	f, err := youtube.ParseFormat(req.Format)
	if err != nil {
		return q, kind, validationError("Invalid format. Use mp3, mp4, or m4a", err)
	}
	q.Format = f
	q.Quality = req.Quality
	q.AudioQuality = req.AudioQuality
	return q, kind, nil
}
