package handlers

import (
	"net/http"

	"livemap/pkg"
	"livemap/services"
)

// UploadHandler, pin medyası yükleme endpoint'ini yöneten struct.
type UploadHandler struct {
	uploadService services.UploadService
}

// NewUploadHandler, constructor.
func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload godoc
// POST /api/upload
// multipart/form-data, field adı: "file". Görsel ve video kabul edilir.
//
// Dönen media objesi ({type, url}) frontend tarafından pin veya yorum
// oluşturma isteğine eklenir.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	media, err := h.uploadService.UploadMedia(r.Context(), file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, media)
}
