package repository

import (
	"context"

	"livemap/models"
)

// PinRepository, pin koleksiyonu ("live_map_pins") işlemleri için interface.
//
// Pin, aggregate root'tur: yorumlar, tepkiler ve favoriler pin'in içinde
// yaşar ve her mutasyon koleksiyonun bütününü geri yazar. Okunan her pin
// Normalize() edilmiş halde döner — legacy alanlar katlanmış, türetilmiş
// görünümler güncel.
//
// Toggle method'ları mutasyon sonrası pin'in (yorum toggle'ında yorumun)
// güncel halini döner; hedef kayıt yoksa ErrNotFound.
type PinRepository interface {
	GetAll(ctx context.Context) ([]models.Pin, error)
	GetByID(ctx context.Context, id string) (*models.Pin, error)
	// GetByDate, date alanı verilen güne (YYYY-MM-DD) eşit pin'leri döner.
	// date alanı boş olan eski kayıtlarda createdAt'in yerel günü kullanılır.
	GetByDate(ctx context.Context, date string) ([]models.Pin, error)
	// GetFavorites, favorites listesinde userID geçen pin'leri döner.
	GetFavorites(ctx context.Context, userID string) ([]models.Pin, error)

	// Create, pin'e ID ve createdAt atar, koleksiyonları boş başlatır,
	// koleksiyona ekler ve kalıcılaştırır.
	Create(ctx context.Context, pin *models.Pin) error
	// Update, whitelisted partial alanları shallow-merge eder.
	Update(ctx context.Context, id string, updates *models.UpdatePinRequest) (*models.Pin, error)
	// Delete, pin'i siler; bir silme gerçekleşip gerçekleşmediğini döner.
	Delete(ctx context.Context, id string) (bool, error)
	// ReplaceAll, koleksiyonun tamamını verilen alt kümeyle değiştirir.
	// Günlük temizlik ve migration yazımları için kullanılır.
	ReplaceAll(ctx context.Context, pins []models.Pin) error

	// AddComment, yoruma ID ve createdAt atar ve pin'in yorum listesine ekler.
	AddComment(ctx context.Context, pinID string, comment *models.Comment) error
	// DeleteComment, yorumu VE parentId'si ona eşit tüm cevapları siler
	// (tek seviye cascade); bir silme olup olmadığını döner.
	DeleteComment(ctx context.Context, pinID, commentID string) (bool, error)
	ToggleCommentLike(ctx context.Context, pinID, commentID, userID string) (*models.Comment, error)

	// ToggleReaction: kullanıcının mevcut tepkisi kind ile aynıysa kaldırır
	// (toggle-off), değilse set eder/üzerine yazar. Map semantiği gereği
	// kullanıcı başına en fazla bir tepki korunur.
	ToggleReaction(ctx context.Context, pinID, userID string, kind models.ReactionType) (*models.Pin, error)
	// ToggleLike, legacy like yolu: "like" türüyle ToggleReaction'a delege
	// eder — likes listesi türetilmiş görünüm olduğu için iki alan hiçbir
	// zaman birbirinden kopamaz.
	ToggleLike(ctx context.Context, pinID, userID string) (*models.Pin, error)
	ToggleFavorite(ctx context.Context, pinID, userID string) (*models.Pin, error)
}
