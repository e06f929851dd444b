package maestro

import (
	"encoding/json"

	"github.com/goliatone/go-errors"
)

const (
	// TextCodeServerDetail marks errors whose Message came verbatim from the
	// backend `detail` field and is safe to show to the user.
	TextCodeServerDetail = "SERVER_DETAIL"
	// TextCodeUnauthorized marks a 401 rejection.
	TextCodeUnauthorized = "UNAUTHORIZED"
	// TextCodeTransport marks a request that never produced a response.
	TextCodeTransport = "TRANSPORT_FAILURE"
)

// ErrNoIdentity is returned when an operation needs an authenticated session
// and there is none.
var ErrNoIdentity = errors.New("no authenticated identity", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

type apiErrorBody struct {
	Detail string `json:"detail"`
}

// normalizeAPIError converts a non-2xx response into a categorized error.
// The backend convention is a JSON body carrying a `detail` string; when
// present it becomes the error message verbatim so presentation code never
// pattern-matches on transport shapes.
func normalizeAPIError(status int, body []byte) *errors.Error {
	var payload apiErrorBody
	detail := ""
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil {
			detail = payload.Detail
		}
	}

	switch {
	case status == 401:
		msg := detail
		textCode := TextCodeUnauthorized
		if msg == "" {
			msg = "authentication required"
		} else {
			textCode = TextCodeServerDetail
		}
		return errors.New(msg, errors.CategoryAuth).
			WithTextCode(textCode).
			WithCode(errors.CodeUnauthorized).
			WithMetadata(map[string]any{"status": status})
	case status >= 400 && status < 500:
		msg := detail
		textCode := ""
		if msg == "" {
			msg = "the request was rejected"
		} else {
			textCode = TextCodeServerDetail
		}
		e := errors.New(msg, errors.CategoryValidation).
			WithCode(status)
		if textCode != "" {
			e = e.WithTextCode(textCode)
		}
		return e.WithMetadata(map[string]any{"status": status})
	default:
		msg := detail
		textCode := ""
		if msg == "" {
			msg = "the server failed to process the request"
		} else {
			textCode = TextCodeServerDetail
		}
		e := errors.New(msg, errors.CategoryInternal).
			WithCode(status)
		if textCode != "" {
			e = e.WithTextCode(textCode)
		}
		return e.WithMetadata(map[string]any{"status": status})
	}
}

// normalizeTransportError wraps a network-level failure (no response received).
func normalizeTransportError(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryOperation, "request failed").
		WithTextCode(TextCodeTransport)
}

// IsAuthFailure reports whether err represents a 401 rejection.
func IsAuthFailure(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth
}

// IsTransportFailure reports whether err represents a network-level failure
// where no response was received.
func IsTransportFailure(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeTransport
}

// ErrorMessage extracts the user-facing message from err. Server-supplied
// detail strings win; anything else collapses to the caller's fallback so UI
// code has one uniform failure-handling shape.
func ErrorMessage(err error, fallback string) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeServerDetail {
		return richErr.Message
	}
	return fallback
}
