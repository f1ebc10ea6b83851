package handlers

import (
	"net/http"

	"livemap/models"
	"livemap/pkg"
)

// CategoryHandler, pin kategori metadata endpoint'i.
// Kategoriler sabittir — storage'a gitmez, auth gerektirmez.
type CategoryHandler struct{}

// NewCategoryHandler, constructor.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List godoc
// GET /api/categories
// Tüm kategorilerin etiket, renk ve ikon bilgilerini döner.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, models.PinCategories)
}
