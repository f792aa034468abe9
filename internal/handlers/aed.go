package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

// AEDResponse wraps a record returned by register and update.
type AEDResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	AED     *models.AED `json:"aed"`
}

// NearbyRequest is the body of POST /api/aed/fetchnearby. Each coordinate
// may be a number or a numeric string.
type NearbyRequest struct {
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
}

// RegisterAED handles POST /api/aed/register-aed
func (h *Handler) RegisterAED(w http.ResponseWriter, r *http.Request) {
	form, err := readAEDForm(r)
	if err != nil {
		h.badRequest(w, "Invalid form data")
		return
	}
	defer form.Close()

	aed, err := h.aeds.Register(r.Context(), form.fields, form.image)
	if err != nil {
		h.fail(w, r, err, "Error registering AED")
		return
	}
	writeJSON(w, http.StatusCreated, AEDResponse{
		Success: true,
		Message: "AED registered successfully",
		AED:     aed,
	})
}

// ListAEDs handles GET /api/aed/aed-list
func (h *Handler) ListAEDs(w http.ResponseWriter, r *http.Request) {
	aeds, err := h.aeds.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Error fetching AED data")
		return
	}
	if aeds == nil {
		aeds = []models.AED{}
	}
	writeJSON(w, http.StatusOK, aeds)
}

// GetAED handles GET /api/aed/{id}
func (h *Handler) GetAED(w http.ResponseWriter, r *http.Request) {
	aed, err := h.aeds.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Error fetching AED")
		return
	}
	writeJSON(w, http.StatusOK, aed)
}

// UpdateAED handles PUT /api/aed/{id}
func (h *Handler) UpdateAED(w http.ResponseWriter, r *http.Request) {
	form, err := readAEDForm(r)
	if err != nil {
		h.badRequest(w, "Invalid form data")
		return
	}
	defer form.Close()

	aed, err := h.aeds.Update(r.Context(), chi.URLParam(r, "id"), form.fields, form.image)
	if err != nil {
		h.fail(w, r, err, "Error updating AED")
		return
	}
	writeJSON(w, http.StatusOK, AEDResponse{
		Success: true,
		Message: "AED updated successfully",
		AED:     aed,
	})
}

// DeleteAED handles DELETE /api/aed/{id}. The record is only flagged.
func (h *Handler) DeleteAED(w http.ResponseWriter, r *http.Request) {
	if err := h.aeds.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "Error deleting AED")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "AED deleted successfully",
	})
}

// FetchNearby handles POST /api/aed/fetchnearby
func (h *Handler) FetchNearby(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, "Invalid request body")
		return
	}

	lat, err := parseCoordinate(req.Latitude)
	if err != nil {
		h.badRequest(w, "latitude must be a number")
		return
	}
	lon, err := parseCoordinate(req.Longitude)
	if err != nil {
		h.badRequest(w, "longitude must be a number")
		return
	}

	results, err := h.aeds.Nearby(r.Context(), lat, lon)
	if err != nil {
		h.fail(w, r, err, "Error fetching nearby AEDs")
		return
	}
	writeJSON(w, http.StatusOK, results)
}
