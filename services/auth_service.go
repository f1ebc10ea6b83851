// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (storage) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - JWT token oluşturma ve doğrulama
//   - Sahiplik / yetki kontrolleri
//   - Pin ve yorum iş kuralları
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan storage'a dokunmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"livemap/models"
	"livemap/pkg"
	"livemap/pkg/email"
	"livemap/repository"
	"livemap/ws"
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	Logout(ctx context.Context) error
	// GetState, kalıcı oturum kaydını döner. Oturum yoksa boş state döner
	// (user=nil, isAuthenticated=false) — hata değil.
	GetState(ctx context.Context) (*models.AuthState, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// AuthResult, signup/login sonrası dönen access token ve kullanıcı.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo    repository.UserRepository
	authRepo    repository.AuthStateRepository
	hub         ws.EventPublisher
	emailSender email.EmailSender // nil olabilir — email opsiyonel
	jwtSecret   []byte
	accessExp   time.Duration
}

// NewAuthService, constructor.
//
// emailSender nil geçilebilir: Resend API key yapılandırılmamışsa
// hoş geldin email'i atlanır, kayıt akışı etkilenmez.
func NewAuthService(
	userRepo repository.UserRepository,
	authRepo repository.AuthStateRepository,
	hub ws.EventPublisher,
	emailSender email.EmailSender,
	jwtSecret string,
	accessExpHours int,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		authRepo:    authRepo,
		hub:         hub,
		emailSender: emailSender,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpHours) * time.Hour,
	}
}

// Signup, yeni kullanıcı kaydı oluşturur.
//
// Kullanıcı dizine eklenir, oturum kaydı yazılır ve access token üretilir.
// Aynı email ile ikinci kayıt ErrAlreadyExists döner — dizin değişmez.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	if err := s.authRepo.Set(ctx, &models.AuthState{User: user, IsAuthenticated: true}); err != nil {
		return nil, err
	}

	// Hoş geldin email'i kayıt akışını bloke etmemeli — goroutine'de gönder,
	// hata sadece loglanır.
	if s.emailSender != nil {
		go func(toEmail, name string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.emailSender.SendWelcome(sendCtx, toEmail, name); err != nil {
				log.Printf("[auth] welcome email failed for %s: %v", toEmail, err)
			}
		}(user.Email, user.Name)
	}

	return s.buildResult(user)
}

// Login, email ile kullanıcı girişi yapar.
//
// Kullanıcı dizinde yoksa ErrNotFound döner. Şifre alanı boşsa
// ErrUnauthorized döner; dolu her şifre kabul edilir — gerçek şifre
// doğrulaması henüz yok, hesaplar şifresiz kayıtlardır.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	if req.Password == "" {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
	}

	if err := s.authRepo.Set(ctx, &models.AuthState{User: user, IsAuthenticated: true}); err != nil {
		return nil, err
	}

	return s.buildResult(user)
}

// Logout, oturum kaydını temizler. Kullanıcı dizindeki kaydı silinmez —
// aynı email ile tekrar giriş yapılabilir.
func (s *authService) Logout(ctx context.Context) error {
	return s.authRepo.Clear(ctx)
}

// GetState, kalıcı oturum kaydını döner.
func (s *authService) GetState(ctx context.Context) (*models.AuthState, error) {
	return s.authRepo.Get(ctx)
}

// UpdateProfile, kullanıcının profil alanlarını günceller.
//
// Sadece istekte gönderilen alanlar değişir (shallow merge). Kullanıcı
// dizinde yoksa ErrNotFound döner ve dizin değişmez. Oturum kaydındaki
// kullanıcı güncelleniyorsa oturum snapshot'ı da tazelenir.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.Update(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// Oturum kaydı aynı kullanıcıya aitse snapshot'ı tazele
	state, err := s.authRepo.Get(ctx)
	if err == nil && state.User != nil && state.User.ID == userID {
		state.User = user
		if err := s.authRepo.Set(ctx, state); err != nil {
			log.Printf("[auth] failed to refresh auth state after profile update: %v", err)
		}
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpProfileUpdate, Data: user})

	return user, nil
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// ─── Private Helpers ───

func (s *authService) buildResult(user *models.User) (*AuthResult, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "livemap",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AuthResult{
		AccessToken: signed,
		User:        *user,
	}, nil
}
