package handlers

import (
	"encoding/json"
	"net/http"

	"livemap/models"
	"livemap/pkg"
	"livemap/services"
)

// ReactionHandler, tepki ve favori endpoint'lerini yöneten struct.
type ReactionHandler struct {
	pinService services.PinService
}

// NewReactionHandler, constructor.
func NewReactionHandler(pinService services.PinService) *ReactionHandler {
	return &ReactionHandler{pinService: pinService}
}

// Toggle godoc
// POST /api/pins/{id}/reactions
// Body: { "type": "like" | "love" | "haha" | "wow" | "sad" | "angry" }
//
// Toggle semantiği: aynı tür ikinci kez gönderilirse tepki kaldırılır,
// farklı tür gönderilirse mevcut tepkinin üzerine yazılır.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Type models.ReactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pin, err := h.pinService.ToggleReaction(r.Context(), user, r.PathValue("id"), req.Type)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pin)
}

// Summary godoc
// GET /api/pins/{id}/reactions
// Tür bazında tepki sayıları ve toplam.
func (h *ReactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.pinService.ReactionSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, summary)
}

// ToggleLike godoc
// POST /api/pins/{id}/like
// Legacy beğeni yolu — "like" tepkisine delege eder.
func (h *ReactionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pin, err := h.pinService.ToggleLike(r.Context(), user, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pin)
}

// ToggleFavorite godoc
// POST /api/pins/{id}/favorite
func (h *ReactionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pin, err := h.pinService.ToggleFavorite(r.Context(), user, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, pin)
}
