package handlers

import (
	"net/http"

	"livemap/pkg"
	"livemap/repository"
)

// PreferenceHandler, uygulama tercihleri endpoint'leri.
// Şimdilik tek tercih var: karşılama ekranının kapatılıp kapatılmadığı.
type PreferenceHandler struct {
	flagRepo repository.FlagRepository
}

// NewPreferenceHandler, constructor.
func NewPreferenceHandler(flagRepo repository.FlagRepository) *PreferenceHandler {
	return &PreferenceHandler{flagRepo: flagRepo}
}

// GetWelcome godoc
// GET /api/preferences/welcome
// Response: { "dismissed": true|false }
func (h *PreferenceHandler) GetWelcome(w http.ResponseWriter, r *http.Request) {
	value, err := h.flagRepo.Get(r.Context(), repository.FlagWelcomeDismissed)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"dismissed": value == "true"})
}

// DismissWelcome godoc
// POST /api/preferences/welcome
// Karşılama ekranını kapatıldı olarak işaretler.
func (h *PreferenceHandler) DismissWelcome(w http.ResponseWriter, r *http.Request) {
	if err := h.flagRepo.Set(r.Context(), repository.FlagWelcomeDismissed, "true"); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"dismissed": true})
}
