package handlers

import (
	"encoding/json"
	"net/http"

	"livemap/models"
	"livemap/pkg"
	"livemap/services"
)

// CommentHandler, yorum endpoint'lerini yöneten struct.
type CommentHandler struct {
	pinService services.PinService
}

// NewCommentHandler, constructor.
func NewCommentHandler(pinService services.PinService) *CommentHandler {
	return &CommentHandler{pinService: pinService}
}

// Create godoc
// POST /api/pins/{id}/comments
// Body: { "text": "...", "media": {...}, "parentId": "..." }
// parentId dolu ise yorum bir cevaptır — cevaba cevap verilemez.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.pinService.AddComment(r.Context(), user, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, comment)
}

// Delete godoc
// DELETE /api/pins/{pinId}/comments/{commentId}
// Yorumun yazarı veya pin'in sahibi silebilir. Cevaplar da silinir.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pinID := r.PathValue("pinId")
	commentID := r.PathValue("commentId")

	if err := h.pinService.DeleteComment(r.Context(), user, pinID, commentID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// ToggleLike godoc
// POST /api/pins/{pinId}/comments/{commentId}/like
// Yorumun beğenisini açar/kapatır; güncel yorumu döner.
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pinID := r.PathValue("pinId")
	commentID := r.PathValue("commentId")

	comment, err := h.pinService.ToggleCommentLike(r.Context(), user, pinID, commentID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comment)
}
