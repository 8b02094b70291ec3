package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"yt-relay/internal/domain"
)

type Kind string

const (
	KindValidation       Kind = "ValidationError"
	KindConfiguration    Kind = "ConfigurationError"
	KindUpstream         Kind = "UpstreamError"
	KindUpstreamFormat   Kind = "UpstreamFormatError"
	KindInternal         Kind = "InternalError"
	KindMethodNotAllowed Kind = "MethodNotAllowed"
	KindRateLimited      Kind = "RateLimited"
)

// Error is what handlers return; writeError turns it into an ErrorEnvelope.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Err: err}
}

func internalError(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Details: err.Error(),
		Err:     err,
	}
}

// asError maps any error onto an *Error, falling back to InternalError.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internalError(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err *Error) {
	writeJSON(w, err.Status, domain.ErrorEnvelope{Error: err.Message, Details: err.Details})
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
