package services

import (
	"context"
	"fmt"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
	"livemap/ws"
)

// PinService interface'i — pin, yorum, tepki ve favori iş kuralları.
//
// actor: işlemi yapan (authenticate olmuş) kullanıcı. Yazar bilgileri
// (isim, avatar) pin/yorum oluşturulurken actor'dan snapshot alınır;
// okuma sırasında viewer'ın kendi kayıtları güncel profiliyle gösterilir.
type PinService interface {
	Create(ctx context.Context, actor *models.User, req *models.CreatePinRequest) (*models.Pin, error)
	// List: date boşsa tüm pin'ler, doluysa (YYYY-MM-DD) o günün pin'leri.
	List(ctx context.Context, viewer *models.User, date string) ([]models.Pin, error)
	Get(ctx context.Context, viewer *models.User, pinID string) (*models.Pin, error)
	ListFavorites(ctx context.Context, viewer *models.User) ([]models.Pin, error)
	Update(ctx context.Context, actor *models.User, pinID string, req *models.UpdatePinRequest) (*models.Pin, error)
	Delete(ctx context.Context, actor *models.User, pinID string) error

	AddComment(ctx context.Context, actor *models.User, pinID string, req *models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor *models.User, pinID, commentID string) error
	ToggleCommentLike(ctx context.Context, actor *models.User, pinID, commentID string) (*models.Comment, error)

	ToggleReaction(ctx context.Context, actor *models.User, pinID string, kind models.ReactionType) (*models.Pin, error)
	ToggleLike(ctx context.Context, actor *models.User, pinID string) (*models.Pin, error)
	ToggleFavorite(ctx context.Context, actor *models.User, pinID string) (*models.Pin, error)
	ReactionSummary(ctx context.Context, pinID string) (*models.ReactionSummary, error)
}

// CommentEventData, yorum event'lerinin broadcast payload'ı.
type CommentEventData struct {
	PinID   string          `json:"pinId"`
	Comment *models.Comment `json:"comment,omitempty"`
	// CommentID sadece silme event'inde dolu
	CommentID string `json:"commentId,omitempty"`
}

// PinDeleteData, pin silme event'inin payload'ı.
type PinDeleteData struct {
	PinID string `json:"pinId"`
}

type pinService struct {
	pinRepo repository.PinRepository
	hub     ws.EventPublisher
}

// NewPinService, constructor.
func NewPinService(pinRepo repository.PinRepository, hub ws.EventPublisher) PinService {
	return &pinService{
		pinRepo: pinRepo,
		hub:     hub,
	}
}

// Create, yeni pin oluşturur.
//
// Yazar bilgileri (userId, userName, userAvatar) actor'dan kopyalanır —
// client'ın gönderdiği yazar alanlarına güvenilmez.
func (s *pinService) Create(ctx context.Context, actor *models.User, req *models.CreatePinRequest) (*models.Pin, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	pin := &models.Pin{
		Lat:         req.Lat,
		Lng:         req.Lng,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Medias:      req.Medias,
		UserID:      actor.ID,
		UserName:    actor.Name,
		UserAvatar:  actor.Avatar,
	}

	if err := s.pinRepo.Create(ctx, pin); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{Op: ws.OpPinCreate, Data: pin})

	return pin, nil
}

// List, pin'leri listeler; date doluysa o günün pin'lerini döner.
func (s *pinService) List(ctx context.Context, viewer *models.User, date string) ([]models.Pin, error) {
	var (
		pins []models.Pin
		err  error
	)
	if date != "" {
		pins, err = s.pinRepo.GetByDate(ctx, date)
	} else {
		pins, err = s.pinRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.overlayPins(viewer, pins)
	return pins, nil
}

// Get, tek bir pin'i döner.
func (s *pinService) Get(ctx context.Context, viewer *models.User, pinID string) (*models.Pin, error) {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}

	s.overlayPin(viewer, pin)
	return pin, nil
}

// ListFavorites, viewer'ın favorilediği pin'leri döner.
func (s *pinService) ListFavorites(ctx context.Context, viewer *models.User) ([]models.Pin, error) {
	pins, err := s.pinRepo.GetFavorites(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	s.overlayPins(viewer, pins)
	return pins, nil
}

// Update, pin'in whitelisted alanlarını günceller. Sadece pin sahibi
// güncelleyebilir.
func (s *pinService) Update(ctx context.Context, actor *models.User, pinID string, req *models.UpdatePinRequest) (*models.Pin, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}
	if pin.UserID != actor.ID {
		return nil, fmt.Errorf("%w: only the pin owner can update it", pkg.ErrForbidden)
	}

	updated, err := s.pinRepo.Update(ctx, pinID, req)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{Op: ws.OpPinUpdate, Data: updated})

	return updated, nil
}

// Delete, pin'i siler. Sadece pin sahibi silebilir.
func (s *pinService) Delete(ctx context.Context, actor *models.User, pinID string) error {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return err
	}
	if pin.UserID != actor.ID {
		return fmt.Errorf("%w: only the pin owner can delete it", pkg.ErrForbidden)
	}

	deleted, err := s.pinRepo.Delete(ctx, pinID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: pin %s", pkg.ErrNotFound, pinID)
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{Op: ws.OpPinDelete, Data: PinDeleteData{PinID: pinID}})

	return nil
}

// AddComment, pin'e yorum (veya parentId doluysa cevap) ekler.
//
// parentId verilmişse hedef yorumun pin'de var olduğu ve kendisinin bir
// cevap olmadığı kontrol edilir — cevaba cevap verilemez (tek seviye).
func (s *pinService) AddComment(ctx context.Context, actor *models.User, pinID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent := findComment(pin.Comments, *req.ParentID)
		if parent == nil {
			return nil, fmt.Errorf("%w: parent comment %s", pkg.ErrNotFound, *req.ParentID)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: replies cannot be nested", pkg.ErrBadRequest)
		}
	}

	comment := &models.Comment{
		PinID:      pinID,
		UserID:     actor.ID,
		UserName:   actor.Name,
		UserAvatar: actor.Avatar,
		Text:       req.Text,
		Media:      req.Media,
		ParentID:   req.ParentID,
	}

	if err := s.pinRepo.AddComment(ctx, pinID, comment); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{
		Op:   ws.OpCommentCreate,
		Data: CommentEventData{PinID: pinID, Comment: comment},
	})

	return comment, nil
}

// DeleteComment, yorumu ve cevaplarını siler.
// Yorumun yazarı veya pin'in sahibi silebilir.
func (s *pinService) DeleteComment(ctx context.Context, actor *models.User, pinID, commentID string) error {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return err
	}

	comment := findComment(pin.Comments, commentID)
	if comment == nil {
		return fmt.Errorf("%w: comment %s", pkg.ErrNotFound, commentID)
	}
	if comment.UserID != actor.ID && pin.UserID != actor.ID {
		return fmt.Errorf("%w: only the comment author or pin owner can delete it", pkg.ErrForbidden)
	}

	deleted, err := s.pinRepo.DeleteComment(ctx, pinID, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: comment %s", pkg.ErrNotFound, commentID)
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{
		Op:   ws.OpCommentDelete,
		Data: CommentEventData{PinID: pinID, CommentID: commentID},
	})

	return nil
}

// ToggleCommentLike, yorumun beğenisini açar/kapatır.
func (s *pinService) ToggleCommentLike(ctx context.Context, actor *models.User, pinID, commentID string) (*models.Comment, error) {
	comment, err := s.pinRepo.ToggleCommentLike(ctx, pinID, commentID, actor.ID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{
		Op:   ws.OpCommentLikeUpdate,
		Data: CommentEventData{PinID: pinID, Comment: comment},
	})

	return comment, nil
}

// ToggleReaction, pin'e tepki ekler/kaldırır/değiştirir.
func (s *pinService) ToggleReaction(ctx context.Context, actor *models.User, pinID string, kind models.ReactionType) (*models.Pin, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: invalid reaction type: %s", pkg.ErrBadRequest, kind)
	}

	pin, err := s.pinRepo.ToggleReaction(ctx, pinID, actor.ID, kind)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{Op: ws.OpReactionUpdate, Data: pin})

	return pin, nil
}

// ToggleLike, legacy beğeni yolu — "like" tepkisine delege eder.
func (s *pinService) ToggleLike(ctx context.Context, actor *models.User, pinID string) (*models.Pin, error) {
	return s.ToggleReaction(ctx, actor, pinID, models.ReactionLike)
}

// ToggleFavorite, pin'i viewer'ın favorilerine ekler/çıkarır.
func (s *pinService) ToggleFavorite(ctx context.Context, actor *models.User, pinID string) (*models.Pin, error) {
	pin, err := s.pinRepo.ToggleFavorite(ctx, pinID, actor.ID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAllExcept(actor.ID, ws.Event{Op: ws.OpFavoriteUpdate, Data: pin})

	return pin, nil
}

// ReactionSummary, pin'in tepki sayılarını ve toplamını döner.
func (s *pinService) ReactionSummary(ctx context.Context, pinID string) (*models.ReactionSummary, error) {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}

	return &models.ReactionSummary{
		Counts: pin.ReactionCounts(),
		Total:  pin.TotalReactionCount(),
	}, nil
}

// ─── Private Helpers ───

// overlayPins, viewer'ın sahibi olduğu pin ve yorumlarda yazar snapshot'ını
// viewer'ın güncel profiliyle değiştirir. Snapshot'lar storage'da oluşturma
// anındaki haliyle durur; güncel isim/avatar okuma sırasında bindirilir.
func (s *pinService) overlayPins(viewer *models.User, pins []models.Pin) {
	if viewer == nil {
		return
	}
	for i := range pins {
		s.overlayPin(viewer, &pins[i])
	}
}

func (s *pinService) overlayPin(viewer *models.User, pin *models.Pin) {
	if viewer == nil {
		return
	}
	if pin.UserID == viewer.ID {
		pin.UserName = viewer.Name
		pin.UserAvatar = viewer.Avatar
	}
	for i := range pin.Comments {
		if pin.Comments[i].UserID == viewer.ID {
			pin.Comments[i].UserName = viewer.Name
			pin.Comments[i].UserAvatar = viewer.Avatar
		}
	}
}

func findComment(comments []models.Comment, commentID string) *models.Comment {
	for i := range comments {
		if comments[i].ID == commentID {
			return &comments[i]
		}
	}
	return nil
}
