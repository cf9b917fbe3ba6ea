package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/places"
)

// errorBody is the JSON envelope every error response uses:
//
//	{"error": {"code": "not_found", "message": "trip not found"}}
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encoding response", "error", err)
	}
}

// writeError maps a service error to its HTTP status and writes the error
// envelope. Unknown errors are logged and reported as a generic 500 so
// internal details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	var sentinel error

	var upstream *places.StatusError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code, sentinel = http.StatusBadRequest, "validation_error", domain.ErrValidation
	case errors.Is(err, domain.ErrInvalidOTP):
		status, code, sentinel = http.StatusBadRequest, "invalid_otp", domain.ErrInvalidOTP
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code, sentinel = http.StatusUnauthorized, "invalid_credentials", domain.ErrInvalidCredentials
	case errors.Is(err, domain.ErrNotFound):
		status, code, sentinel = http.StatusNotFound, "not_found", domain.ErrNotFound
	case errors.Is(err, domain.ErrConflict):
		status, code, sentinel = http.StatusConflict, "conflict", domain.ErrConflict
	case errors.As(err, &upstream):
		writeJSON(w, http.StatusBadGateway, errorBody{
			Error: errorDetail{Code: "upstream_error", Message: upstream.Error()},
		})
		return
	default:
		slog.Error("handler: internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
		return
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: sentinelMessage(err, sentinel)}})
}

// writeValidation writes a 400 with the given message, for request-shape
// problems detected before the service layer is reached.
func writeValidation(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// writeNotFoundMsg writes a 404 with the given message.
func writeNotFoundMsg(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorBody{
		Error: errorDetail{Code: "not_found", Message: message},
	})
}

// sentinelMessage extracts the human-facing part of a wrapped sentinel error.
// Services attach the reason after the sentinel's own text, e.g.
// "service.CityService.Add: validation error: popularity score must be
// between 0 and 5" becomes "popularity score must be between 0 and 5".
// A sentinel wrapped without a reason falls back to the sentinel's text.
func sentinelMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
