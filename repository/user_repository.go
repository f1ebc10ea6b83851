// Package repository, key-value store erişim katmanını tanımlar.
//
// Repository Pattern: storage işlemlerini (CRUD) soyutlayan tasarım kalıbıdır.
// Service katmanı store anahtarlarını ve JSON layout'unu bilmez —
// repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: Mock repository yazarak store olmadan test edebilirsin
// 2. Esneklik: Key-value store'dan ilişkisel şemaya geçiş sadece yeni implementasyon ister
// 3. Dependency Inversion: Service, concrete struct'a değil interface'e bağımlı
//
// Bu katmanın çalışma modeli kasıtlı olarak basittir: her işlem ilgili
// koleksiyonu bütün olarak okur, bellekte değiştirir, bütün olarak geri
// yazar. Index yok, kısmi yazma yok — last-writer-wins.
package repository

import (
	"context"

	"livemap/models"
)

// UserRepository, kullanıcı dizini ("live_map_users") işlemleri için interface.
//
// Kullanıcılar email ile (exact, case-sensitive match) ve ID ile bulunur.
// Silme işlemi yoktur — kullanıcı kaydı oluşturulduktan sonra yalnızca
// profil güncellemesiyle değişir.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create, kullanıcıyı dizine ekler. Email zaten kayıtlıysa
	// ErrAlreadyExists döner ve dizin değişmeden kalır.
	Create(ctx context.Context, user *models.User) error
	// Update, request'teki dolu alanları kullanıcıya shallow-merge eder.
	// ID dizinde yoksa ErrNotFound döner.
	Update(ctx context.Context, id string, updates *models.UpdateProfileRequest) (*models.User, error)
}
