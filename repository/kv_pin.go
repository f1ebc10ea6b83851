package repository

import (
	"context"
	"fmt"
	"time"

	"livemap/models"
	"livemap/pkg"
	"livemap/store"
)

// pinsKey, pin koleksiyonunun saklandığı store anahtarı.
const pinsKey = "live_map_pins"

// kvPinRepo, PinRepository interface'inin key-value store implementasyonu.
//
// Tüm method'lar aynı deseni izler: koleksiyonu oku → ilgili pin'i lineer
// taramayla bul → bellekte değiştir → Normalize → koleksiyonu geri yaz.
// Koleksiyon boyutu (günlük temizlik sayesinde) küçük kaldığı için
// index'e gerek yoktur.
type kvPinRepo struct {
	store *store.Store
}

// NewKVPinRepo, constructor.
func NewKVPinRepo(s *store.Store) PinRepository {
	return &kvPinRepo{store: s}
}

// readPins, koleksiyonu okur ve her pin'i normalize eder.
// Anahtar yoksa veya içerik bozuksa boş koleksiyon döner (store loglar).
func (r *kvPinRepo) readPins(ctx context.Context) []models.Pin {
	var pins []models.Pin
	r.store.ReadJSON(ctx, pinsKey, &pins)
	if pins == nil {
		pins = make([]models.Pin, 0)
	}
	for i := range pins {
		pins[i].Normalize()
	}
	return pins
}

// writePins, koleksiyonu bütün olarak geri yazar. Yazım öncesi sadece
// SyncDerived çalışır — mutasyonlar tepki map'ini değiştirmiş olabilir,
// türetilmiş likes görünümü tazelenir. Normalize (legacy katlama) burada
// ÇAĞRILMAZ: bayat Likes listesi, toggle-off ile silinmiş bir tepkiyi
// map'e geri yazardı.
func (r *kvPinRepo) writePins(ctx context.Context, pins []models.Pin) error {
	for i := range pins {
		pins[i].SyncDerived()
	}
	if err := r.store.WriteJSON(ctx, pinsKey, pins); err != nil {
		return fmt.Errorf("%w: failed to persist pins: %v", pkg.ErrInternal, err)
	}
	return nil
}

// findPin, koleksiyonda id'ye sahip pin'in index'ini döner, yoksa -1.
func findPin(pins []models.Pin, id string) int {
	for i := range pins {
		if pins[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *kvPinRepo) GetAll(ctx context.Context) ([]models.Pin, error) {
	return r.readPins(ctx), nil
}

func (r *kvPinRepo) GetByID(ctx context.Context, id string) (*models.Pin, error) {
	pins := r.readPins(ctx)
	if i := findPin(pins, id); i >= 0 {
		pin := pins[i]
		return &pin, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *kvPinRepo) GetByDate(ctx context.Context, date string) ([]models.Pin, error) {
	matched := make([]models.Pin, 0)
	for _, p := range r.readPins(ctx) {
		pinDate := p.Date
		if pinDate == "" {
			// Eski kayıt — createdAt'in yerel gününe düş
			pinDate = pkg.LocalDateString(p.CreatedAt)
		}
		if pinDate == date {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *kvPinRepo) GetFavorites(ctx context.Context, userID string) ([]models.Pin, error) {
	matched := make([]models.Pin, 0)
	for _, p := range r.readPins(ctx) {
		if p.HasFavorite(userID) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *kvPinRepo) Create(ctx context.Context, pin *models.Pin) error {
	pins := r.readPins(ctx)

	pin.ID = pkg.NewID()
	pin.CreatedAt = time.Now()
	if pin.Date == "" {
		pin.Date = pkg.LocalDateString(pin.CreatedAt)
	}
	pin.Comments = make([]models.Comment, 0)
	pin.Likes = make([]string, 0)
	pin.Reactions = make(map[string]models.ReactionType)
	pin.Favorites = make([]string, 0)
	pin.Normalize()

	pins = append(pins, *pin)
	return r.writePins(ctx, pins)
}

func (r *kvPinRepo) Update(ctx context.Context, id string, updates *models.UpdatePinRequest) (*models.Pin, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, id)
	if i < 0 {
		return nil, pkg.ErrNotFound
	}

	updates.ApplyTo(&pins[i])
	if err := r.writePins(ctx, pins); err != nil {
		return nil, err
	}

	pin := pins[i]
	return &pin, nil
}

func (r *kvPinRepo) Delete(ctx context.Context, id string) (bool, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, id)
	if i < 0 {
		return false, nil
	}

	pins = append(pins[:i], pins[i+1:]...)
	if err := r.writePins(ctx, pins); err != nil {
		return false, err
	}
	return true, nil
}

func (r *kvPinRepo) ReplaceAll(ctx context.Context, pins []models.Pin) error {
	return r.writePins(ctx, pins)
}

func (r *kvPinRepo) AddComment(ctx context.Context, pinID string, comment *models.Comment) error {
	pins := r.readPins(ctx)

	i := findPin(pins, pinID)
	if i < 0 {
		return pkg.ErrNotFound
	}

	comment.ID = pkg.NewID()
	comment.PinID = pinID
	comment.CreatedAt = time.Now()
	if comment.Likes == nil {
		comment.Likes = make([]string, 0)
	}

	pins[i].Comments = append(pins[i].Comments, *comment)
	return r.writePins(ctx, pins)
}

func (r *kvPinRepo) DeleteComment(ctx context.Context, pinID, commentID string) (bool, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, pinID)
	if i < 0 {
		return false, nil
	}

	// Yorumu ve ona cevap olan tüm yorumları birlikte sil (tek seviye cascade).
	// Taze slice: in-place filtreleme backing array'i bozar, yazma başarısız
	// olursa in-memory kopya çoktan değişmiş olurdu.
	kept := make([]models.Comment, 0, len(pins[i].Comments))
	for _, c := range pins[i].Comments {
		if c.ID == commentID {
			continue
		}
		if c.ParentID != nil && *c.ParentID == commentID {
			continue
		}
		kept = append(kept, c)
	}

	if len(kept) == len(pins[i].Comments) {
		return false, nil
	}

	pins[i].Comments = kept
	if err := r.writePins(ctx, pins); err != nil {
		return false, err
	}
	return true, nil
}

func (r *kvPinRepo) ToggleCommentLike(ctx context.Context, pinID, commentID, userID string) (*models.Comment, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, pinID)
	if i < 0 {
		return nil, pkg.ErrNotFound
	}

	for ci := range pins[i].Comments {
		c := &pins[i].Comments[ci]
		if c.ID != commentID {
			continue
		}

		liked := -1
		for li, uid := range c.Likes {
			if uid == userID {
				liked = li
				break
			}
		}
		if liked >= 0 {
			c.Likes = append(c.Likes[:liked], c.Likes[liked+1:]...)
		} else {
			c.Likes = append(c.Likes, userID)
		}

		if err := r.writePins(ctx, pins); err != nil {
			return nil, err
		}
		comment := *c
		return &comment, nil
	}

	return nil, pkg.ErrNotFound
}

func (r *kvPinRepo) ToggleReaction(ctx context.Context, pinID, userID string, kind models.ReactionType) (*models.Pin, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, pinID)
	if i < 0 {
		return nil, pkg.ErrNotFound
	}

	// Aynı tür tekrar gönderildiyse kaldır (toggle-off), değilse set et /
	// üzerine yaz. Map anahtarı userID olduğu için kullanıcı başına
	// birden fazla tepki yapısal olarak imkânsızdır.
	if pins[i].Reactions[userID] == kind {
		delete(pins[i].Reactions, userID)
	} else {
		pins[i].Reactions[userID] = kind
	}

	if err := r.writePins(ctx, pins); err != nil {
		return nil, err
	}

	pin := pins[i]
	return &pin, nil
}

func (r *kvPinRepo) ToggleLike(ctx context.Context, pinID, userID string) (*models.Pin, error) {
	return r.ToggleReaction(ctx, pinID, userID, models.ReactionLike)
}

func (r *kvPinRepo) ToggleFavorite(ctx context.Context, pinID, userID string) (*models.Pin, error) {
	pins := r.readPins(ctx)

	i := findPin(pins, pinID)
	if i < 0 {
		return nil, pkg.ErrNotFound
	}

	fav := -1
	for fi, uid := range pins[i].Favorites {
		if uid == userID {
			fav = fi
			break
		}
	}
	if fav >= 0 {
		pins[i].Favorites = append(pins[i].Favorites[:fav], pins[i].Favorites[fav+1:]...)
	} else {
		pins[i].Favorites = append(pins[i].Favorites, userID)
	}

	if err := r.writePins(ctx, pins); err != nil {
		return nil, err
	}

	pin := pins[i]
	return &pin, nil
}
