package repository

import (
	"context"

	"livemap/models"
)

// AuthStateRepository, aktif oturum kaydı ("live_map_auth") işlemleri için interface.
//
// Oturum kaydı kullanıcı dizininden bağımsızdır: login yazar, logout siler,
// profil güncellemesi oturumun sahibini güncelliyorsa tazeler.
type AuthStateRepository interface {
	// Get, kayıtlı oturum durumunu döner. Kayıt yoksa veya bozuksa
	// boş durum döner ({user: nil, isAuthenticated: false}) — hata değil.
	Get(ctx context.Context) (*models.AuthState, error)
	Set(ctx context.Context, state *models.AuthState) error
	// Clear, oturum kaydını siler. Kullanıcı dizinine dokunmaz.
	Clear(ctx context.Context) error
}
