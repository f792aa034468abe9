package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/aed-backend/internal/services"
	"github.com/AnshRaj112/aed-backend/pkg/utils"
	"github.com/rs/zerolog"
)

// Handler serves the AED and account endpoints.
type Handler struct {
	aeds         *services.AEDService
	accounts     *services.AccountService
	secureCookie bool
	log          zerolog.Logger
}

// New builds a Handler. secureCookie marks the session cookie Secure and
// should be true in production.
func New(aeds *services.AEDService, accounts *services.AccountService, secureCookie bool, log zerolog.Logger) *Handler {
	return &Handler{
		aeds:         aeds,
		accounts:     accounts,
		secureCookie: secureCookie,
		log:          log.With().Str("component", "http").Logger(),
	}
}

// ErrorResponse is the body of every failed request. Details is only set
// for internal errors.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by operations that only confirm success.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps a service error to its status code. internalMsg is the message
// shown for unexpected errors.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: verr.Message})
	case errors.Is(err, services.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNoToken),
		errors.Is(err, services.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "AED not found"})
	case errors.Is(err, services.ErrUploadUnavailable):
		h.log.Error().Str("path", r.URL.Path).Msg("image sent but no upload relay is configured")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: internalMsg, Details: err.Error()})
	default:
		h.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg(internalMsg)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: internalMsg, Details: err.Error()})
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: message})
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
