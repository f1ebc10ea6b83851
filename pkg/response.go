package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// APIResponse, API'nin tek yanıt zarfı. Başarılı yanıtlarda Data,
// hatalı yanıtlarda Error dolu olur — client her iki durumda da
// aynı yapıyı parse eder.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeEnvelope, zarfı serialize edip yazar. Encode hatası WriteHeader
// sonrası oluşursa status artık değiştirilemez; sadece loglanır.
func writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[response] encode failed: %v", err)
	}
}

// JSON, data'yı başarı zarfı içinde gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, APIResponse{Success: true, Data: data})
}

// Error, domain error'ını HTTP status'a çevirip hata zarfı gönderir.
func Error(w http.ResponseWriter, err error) {
	writeEnvelope(w, mapErrorToStatus(err), APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// ErrorWithMessage, status'u sabitleyip serbest metinli hata gönderir.
// Rate limit gibi domain error'a karşılık gelmeyen durumlar için.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, APIResponse{Success: false, Error: message})
}

// mapErrorToStatus, sentinel error'ları HTTP status code'una eşler.
// errors.Is ile chain kontrol edilir, wrap edilmiş error'lar da eşleşir.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
