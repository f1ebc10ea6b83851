package handlers

import (
	"encoding/json"
	"net/http"

	"livemap/models"
	"livemap/pkg"
	"livemap/services"
)

// PinHandler, pin CRUD endpoint'lerini yöneten struct.
type PinHandler struct {
	pinService services.PinService
}

// NewPinHandler, constructor.
func NewPinHandler(pinService services.PinService) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// List godoc
// GET /api/pins?date=YYYY-MM-DD
// date parametresi opsiyonel — verilirse sadece o günün pin'leri döner.
func (h *PinHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	date := r.URL.Query().Get("date")

	pins, err := h.pinService.List(r.Context(), user, date)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pins)
}

// Get godoc
// GET /api/pins/{id}
func (h *PinHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pin, err := h.pinService.Get(r.Context(), user, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pin)
}

// ListFavorites godoc
// GET /api/pins/favorites
// Kullanıcının favorilediği pin'leri döner.
func (h *PinHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pins, err := h.pinService.ListFavorites(r.Context(), user)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pins)
}

// Create godoc
// POST /api/pins
// Body: { "lat": ..., "lng": ..., "category": "...", "title": "...", ... }
func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pin, err := h.pinService.Create(r.Context(), user, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, pin)
}

// Update godoc
// PATCH /api/pins/{id}
// Sadece pin sahibi güncelleyebilir. Konum (lat/lng) değiştirilemez.
func (h *PinHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pin, err := h.pinService.Update(r.Context(), user, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pin)
}

// Delete godoc
// DELETE /api/pins/{id}
// Sadece pin sahibi silebilir.
func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.pinService.Delete(r.Context(), user, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "pin deleted"})
}
