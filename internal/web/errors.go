package web

// errors.go turns handler errors into responses.
//
// The technical error is logged with the request id; the client receives the
// core.MapError message in the format it asked for (HTMX fragment, JSON or
// plain text).

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/logging"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
	"github.com/JonMunkholm/appdsizer/internal/web/templates"
	"github.com/JonMunkholm/appdsizer/internal/workbook"
)

var (
	errNoFile       = errors.New("no file provided")
	errFileTooLarge = errors.New("file too large")
	errBodyTooLarge = errors.New("request body too large")
	errInvalidJSON  = errors.New("invalid JSON")
)

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the mapped user message with statusCode.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	msg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	)

	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render error alert", "error", err)
		}
	case wantsJSON(r):
		writeJSON(w, statusCode, ErrorResponse{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
	}
}

// statusFor picks the HTTP status of an error returned by the sizing service.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, errFileTooLarge), errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, sizing.ErrTooManyParses):
		return http.StatusServiceUnavailable
	case errors.Is(err, workbook.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, workbook.ErrSheetNotFound), errors.Is(err, workbook.ErrEmptyFile),
		errors.Is(err, core.ErrUnknownSheet), errors.Is(err, errNoFile), errors.Is(err, errInvalidJSON):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "invalid workbook"), strings.Contains(err.Error(), "invalid csv"):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response. API routes default
// to JSON.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
