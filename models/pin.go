package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// PinCategory, bir pin'in haritadaki olay kategorisini temsil eder.
// Go'da enum yoktur — typed constant'lar kullanılır.
type PinCategory string

// İzin verilen PinCategory değerleri.
const (
	CategoryGeneral  PinCategory = "general"
	CategoryAccident PinCategory = "accident"
	CategoryEvent    PinCategory = "event"
	CategoryWarning  PinCategory = "warning"
	CategoryHelp     PinCategory = "help"
)

// Valid, kategori değerinin tanımlı enum üyelerinden biri olup olmadığını döner.
func (c PinCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryAccident, CategoryEvent, CategoryWarning, CategoryHelp:
		return true
	}
	return false
}

// CategoryInfo, bir kategorinin harita üzerindeki görsel meta verisi.
// Label'lar uygulamanın orijinal Thai arayüz metinleridir.
type CategoryInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// PinCategories, kategori → görsel meta veri tablosu.
// Frontend marker rengini ve ikonunu buradan alır.
var PinCategories = map[PinCategory]CategoryInfo{
	CategoryGeneral:  {Label: "ทั่วไป", Color: "#3b82f6", Icon: "📌"},
	CategoryAccident: {Label: "อุบัติเหตุ", Color: "#ef4444", Icon: "🚨"},
	CategoryEvent:    {Label: "กิจกรรม", Color: "#22c55e", Icon: "🎉"},
	CategoryWarning:  {Label: "เตือนภัย", Color: "#f97316", Icon: "⚠️"},
	CategoryHelp:     {Label: "ขอความช่วยเหลือ", Color: "#a855f7", Icon: "🆘"},
}

// ReactionType, bir kullanıcının pin'e verdiği tepki türü.
type ReactionType string

// İzin verilen ReactionType değerleri.
const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes, sayaç başlatma ve validation için sabit sıralı liste.
var ReactionTypes = []ReactionType{
	ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry,
}

// Valid, tepki türünün tanımlı enum üyelerinden biri olup olmadığını döner.
func (t ReactionType) Valid() bool {
	for _, rt := range ReactionTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// MediaType, bir medya parçasının türü.
type MediaType string

// İzin verilen MediaType değerleri.
const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaGIF   MediaType = "gif"
)

// Media, tek bir medya parçası. url, upload endpoint'inden dönen public
// dosya yoludur; data, eski client'ların inline gönderdiği base64 data
// URI'dir — kayıt başına ikisinden biri dolu olur.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url,omitempty"`
	Data string    `json:"data,omitempty"`
}

// Pin, haritaya bırakılmış bir işareti ve ona bağlı her şeyi temsil eder:
// yorumlar, tepkiler, favoriler ve medya. Pin aggregate'in sahibidir —
// hiçbir yorum pin'den bağımsız yaşamaz.
//
// userName/userAvatar, oluşturma ANINDA alınan snapshot'tır; sahibin sonraki
// profil değişiklikleriyle senkronize EDİLMEZ. Okuma katmanı, görüntüleyen
// kullanıcı pin'in sahibiyse canlı profil verisini yerine koyar
// (join-at-read-time) — diğer kullanıcılar eski snapshot'ı görmeye devam eder.
//
// date, oluşturma anındaki YEREL takvim günüdür (YYYY-MM-DD) ve gün bazlı
// filtrelemenin tek otoritesidir; createdAt sadece date'i olmayan eski
// kayıtlar için fallback'tir.
type Pin struct {
	ID          string      `json:"id"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	Category    PinCategory `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	UserID      string      `json:"userId"`
	UserName    string      `json:"userName"`
	UserAvatar  *string     `json:"userAvatar,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Date        string      `json:"date"`
	Comments    []Comment   `json:"comments"`

	// Eski tekil medya alanları — geriye dönük uyumluluk için okunur ve
	// yazılır, canonical temsil her zaman Images/Medias dizileridir.
	Image *string `json:"image,omitempty"`
	Media *Media  `json:"media,omitempty"`

	Images []string `json:"images,omitempty"`
	Medias []Media  `json:"medias,omitempty"`

	// Likes, Reactions map'inden türetilen legacy görünümdür: tepkisi
	// "like" olan kullanıcı ID'lerinin sıralı listesi. Tek doğruluk
	// kaynağı Reactions'tır — Likes her yazımda yeniden türetilir.
	Likes     []string                `json:"likes"`
	Reactions map[string]ReactionType `json:"reactions"`
	Favorites []string                `json:"favorites"`
}

// Comment, bir pin'e yapılmış yorumu temsil eder.
// parentId dolu ise bu bir cevaptır (tek seviye — cevapların cevabı olmaz).
// pinId, store'daki back-reference alanıdır; sahiplik ilişkisi değildir.
type Comment struct {
	ID         string    `json:"id"`
	PinID      string    `json:"pinId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar *string   `json:"userAvatar,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	Media      *Media    `json:"media,omitempty"`
	Likes      []string  `json:"likes"`
	ParentID   *string   `json:"parentId,omitempty"`
}

// Normalize, pin'i canonical iç temsile getirir. Idempotent'tir ve
// SADECE okuma sınırında çağrılır.
//
// Yapılanlar:
//  1. Eski tekil image/media alanları plural dizilere katlanır
//     (sadece plural alanlar boşsa — çift saymayı önler).
//  2. Legacy likes listesindeki, reactions map'inde karşılığı olmayan
//     kullanıcılar "like" tepkisi olarak map'e taşınır.
//  3. SyncDerived ile türetilmiş görünümler yeniden kurulur.
//
// Katlamanın okuma sınırıyla sınırlı kalması kritik: yazma yolunda
// tekrar katlansaydı, toggle-off ile silinen bir tepki bayat Likes
// listesinden geri gelirdi. Mutasyon sonrası yazma yolu yalnızca
// SyncDerived çağırır.
func (p *Pin) Normalize() {
	if len(p.Images) == 0 && p.Image != nil && *p.Image != "" {
		p.Images = []string{*p.Image}
	}
	if len(p.Medias) == 0 && p.Media != nil {
		p.Medias = []Media{*p.Media}
	}

	if p.Reactions == nil {
		p.Reactions = make(map[string]ReactionType)
	}
	for _, uid := range p.Likes {
		if _, ok := p.Reactions[uid]; !ok {
			p.Reactions[uid] = ReactionLike
		}
	}

	p.SyncDerived()
}

// SyncDerived, türetilmiş görünümleri tek doğruluk kaynaklarından
// yeniden kurar: Likes listesi Reactions map'inden, tekil image/media
// alanları plural dizilerin ilk elemanından. nil koleksiyonlar boş
// değerlerle değiştirilir, böylece JSON çıktısında null yerine [] / {}
// görünür. Her yazma öncesi çağrılır.
func (p *Pin) SyncDerived() {
	if p.Reactions == nil {
		p.Reactions = make(map[string]ReactionType)
	}

	likes := make([]string, 0)
	for uid, kind := range p.Reactions {
		if kind == ReactionLike {
			likes = append(likes, uid)
		}
	}
	sort.Strings(likes) // map iterasyonu deterministik değil — çıktıyı sabitle
	p.Likes = likes

	if len(p.Images) > 0 {
		first := p.Images[0]
		p.Image = &first
	} else {
		p.Image = nil
	}
	if len(p.Medias) > 0 {
		first := p.Medias[0]
		p.Media = &first
	} else {
		p.Media = nil
	}

	if p.Favorites == nil {
		p.Favorites = make([]string, 0)
	}
	if p.Comments == nil {
		p.Comments = make([]Comment, 0)
	}
	for i := range p.Comments {
		if p.Comments[i].Likes == nil {
			p.Comments[i].Likes = make([]string, 0)
		}
	}
}

// ReactionCounts, tepki türü başına sayaç döner.
// Tüm türler sıfırdan başlatılır — frontend eksik anahtar kontrolü yapmaz.
func (p *Pin) ReactionCounts() map[ReactionType]int {
	counts := make(map[ReactionType]int, len(ReactionTypes))
	for _, rt := range ReactionTypes {
		counts[rt] = 0
	}
	for _, kind := range p.Reactions {
		counts[kind]++
	}
	return counts
}

// TotalReactionCount, tepki veren farklı kullanıcı sayısını döner.
func (p *Pin) TotalReactionCount() int {
	return len(p.Reactions)
}

// HasFavorite, userID'nin pin'i favorilemiş olup olmadığını döner.
func (p *Pin) HasFavorite(userID string) bool {
	for _, uid := range p.Favorites {
		if uid == userID {
			return true
		}
	}
	return false
}

// ReactionSummary, bir pin'in tepki özetini taşır (API response'u).
type ReactionSummary struct {
	Counts map[ReactionType]int `json:"counts"`
	Total  int                  `json:"total"`
}

// CreatePinRequest, yeni pin oluştururken frontend'den gelen veri.
// id, createdAt ve koleksiyonlar server tarafında doldurulur.
type CreatePinRequest struct {
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	Category    PinCategory `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Images      []string    `json:"images,omitempty"`
	Medias      []Media     `json:"medias,omitempty"`
}

// Validate, CreatePinRequest'i kontrol eder.
func (r *CreatePinRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > 120 {
		return fmt.Errorf("title must be at most 120 characters")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid category: %s", r.Category)
	}
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90")
	}
	if r.Lng < -180 || r.Lng > 180 {
		return fmt.Errorf("lng must be between -180 and 180")
	}
	return nil
}

// UpdatePinRequest, pin güncellemesinde kabul edilen whitelisted alan seti.
// Konum (lat/lng) ve yazar alanları bilinçli olarak güncellenemez.
type UpdatePinRequest struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Category    *PinCategory            `json:"category,omitempty"`
	Images      []string                `json:"images,omitempty"`
	Medias      []Media                 `json:"medias,omitempty"`
	Reactions   map[string]ReactionType `json:"reactions,omitempty"`
	Favorites   []string                `json:"favorites,omitempty"`
	UserAvatar  *string                 `json:"userAvatar,omitempty"`
}

// Validate, UpdatePinRequest'i kontrol eder.
func (r *UpdatePinRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > 120 {
			return fmt.Errorf("title must be at most 120 characters")
		}
		r.Title = &trimmed
	}
	if r.Category != nil && !r.Category.Valid() {
		return fmt.Errorf("invalid category: %s", *r.Category)
	}
	for _, kind := range r.Reactions {
		if !kind.Valid() {
			return fmt.Errorf("invalid reaction type: %s", kind)
		}
	}
	return nil
}

// ApplyTo, request'teki dolu alanları pin'e shallow-merge eder.
func (r *UpdatePinRequest) ApplyTo(p *Pin) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.Medias != nil {
		p.Medias = r.Medias
	}
	if r.Reactions != nil {
		p.Reactions = r.Reactions
	}
	if r.Favorites != nil {
		p.Favorites = r.Favorites
	}
	if r.UserAvatar != nil {
		p.UserAvatar = r.UserAvatar
	}
}

// CreateCommentRequest, yorum eklerken frontend'den gelen veri.
// parentId dolu ise yorum bir cevaptır.
type CreateCommentRequest struct {
	Text     string  `json:"text"`
	Media    *Media  `json:"media,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// Validate, CreateCommentRequest'i kontrol eder.
// Metin veya medya en az biri zorunludur — ikisi birden boş olamaz.
func (r *CreateCommentRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" && r.Media == nil {
		return fmt.Errorf("comment text or media is required")
	}
	if utf8.RuneCountInString(r.Text) > 1000 {
		return fmt.Errorf("comment must be at most 1000 characters")
	}
	return nil
}
