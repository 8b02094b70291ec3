package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	ActionInfo     = "info"
	ActionDownload = "download"
)

type DownloadRequest struct {
	URL          string `json:"url"`
	Format       string `json:"format"`
	Quality      string `json:"quality,omitempty"`
	AudioQuality string `json:"audioQuality,omitempty"`
	Action       string `json:"action,omitempty"`
}

// DownloadResult holds the fields of an upstream payload that callers
// inspect. Anything else the upstream sends is ignored here and relayed
// untouched by the proxy.
type DownloadResult struct {
	Title     string   `json:"title,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Duration  Duration `json:"duration,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// Duration accepts either a JSON string ("3:32") or a number of seconds.
type Duration string

func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Duration(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil {
		*d = Duration(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*d = Duration(n.String())
	return nil
}

type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
