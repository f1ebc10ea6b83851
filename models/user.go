// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Key-value store'da saklanan JSON dokümanlarının Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
// JSON tag'leri storage formatıyla birebir aynıdır — eski bir
// localStorage export'u olduğu gibi import edilebilir.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir kullanıcıyı temsil eder.
//
// avatar bir URL veya data URI olabilir — ikisi de string olarak taşınır.
// Sosyal alanlar (facebook, instagram, twitter, line) serbest metin handle'lardır.
// Not: Şifre saklanmaz — giriş kontrolü placeholder seviyesindedir,
// gerçek bir kimlik sağlayıcısı bağlanana kadar bilinçli olarak böyledir.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Facebook  *string   `json:"facebook,omitempty"`
	Instagram *string   `json:"instagram,omitempty"`
	Twitter   *string   `json:"twitter,omitempty"`
	Line      *string   `json:"line,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthState, aktif oturum kaydını temsil eder.
// "live_map_auth" anahtarı altında tek başına saklanır —
// logout bu kaydı temizler, kullanıcı dizinine dokunmaz.
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// emailRegex, basit email format kontrolü.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupRequest, kayıt olurken frontend'den gelen veri.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
func (r *SignupRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(r.Name) > 64 {
		return fmt.Errorf("name must be at most 64 characters")
	}

	if r.Password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
// Not: Email üyelik kontrolü ve şifre kontrolü service katmanındadır —
// burada sadece alanların varlığına bakılır.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// UpdateProfileRequest, profil güncellemesi için partial alan seti.
// Pointer alanlar "gönderilmedi" (nil) ile "boş değere çekildi" ("")
// ayrımını yapar — shallow merge sadece gönderilen alanları yazar.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Line      *string `json:"line,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// Validate, UpdateProfileRequest'i kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return fmt.Errorf("name cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > 64 {
			return fmt.Errorf("name must be at most 64 characters")
		}
		r.Name = &trimmed
	}
	if r.Bio != nil && utf8.RuneCountInString(*r.Bio) > 500 {
		return fmt.Errorf("bio must be at most 500 characters")
	}
	return nil
}

// ApplyTo, request'teki dolu alanları user'a shallow-merge eder.
func (r *UpdateProfileRequest) ApplyTo(u *User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Avatar != nil {
		u.Avatar = r.Avatar
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Facebook != nil {
		u.Facebook = r.Facebook
	}
	if r.Instagram != nil {
		u.Instagram = r.Instagram
	}
	if r.Twitter != nil {
		u.Twitter = r.Twitter
	}
	if r.Line != nil {
		u.Line = r.Line
	}
	if r.Bio != nil {
		u.Bio = r.Bio
	}
}
