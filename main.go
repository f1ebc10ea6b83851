// Package main, livemap backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Key-value store'u başlat
//  3. Upload dizinini oluştur
//  4. Repository'leri oluştur (store ile)
//  5. Açılış bakımını çalıştır (date migration + günlük temizlik)
//  6. WebSocket Hub'ı başlat
//  7. Service'leri oluştur (repository'ler + hub ile)
//  8. Handler'ları oluştur (service'ler ile)
//  9. HTTP router'ı kur, route'ları bağla
// 10. CORS yapılandır
// 11. HTTP Server'ı başlat
// 12. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	"livemap/config"
	"livemap/handlers"
	"livemap/middleware"
	"livemap/pkg/email"
	"livemap/pkg/ratelimit"
	"livemap/repository"
	"livemap/services"
	"livemap/store"
	"livemap/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] livemap server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Key-Value Store ───
	kv, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("[main] failed to initialize store: %v", err)
	}
	defer kv.Close()

	// ─── 3. Upload Dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// ─── 4. Repository Layer ───
	userRepo := repository.NewKVUserRepo(kv)
	authRepo := repository.NewKVAuthStateRepo(kv)
	pinRepo := repository.NewKVPinRepo(kv)
	flagRepo := repository.NewKVFlagRepo(kv)

	// ─── 5. Açılış Bakımı ───
	//
	// Migration ve günlük temizlik server dinlemeye başlamadan ÖNCE çalışır —
	// ilk request asla eski/migrate edilmemiş veri görmez. Rutinler
	// idempotent'tir: migration flag guard'ı ile, temizlik yerel gün
	// marker'ı ile korunur.
	maintenanceService := services.NewMaintenanceService(pinRepo, flagRepo)
	if err := maintenanceService.Startup(context.Background()); err != nil {
		log.Fatalf("[main] startup maintenance failed: %v", err)
	}

	// ─── 6. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 7. Service Layer ───
	//
	// Email opsiyonel: API key yapılandırılmamışsa sender nil kalır,
	// hoş geldin email'i atlanır.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[main] email sender enabled (resend)")
	}

	authService := services.NewAuthService(
		userRepo,
		authRepo,
		hub,
		emailSender,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
	)
	pinService := services.NewPinService(pinRepo, hub)
	uploadService := services.NewUploadService(userRepo, cfg.Upload.Dir, cfg.Upload.MaxSize)

	// ─── 8. Handler Layer ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)

	authHandler := handlers.NewAuthHandler(authService, uploadService, loginLimiter)
	pinHandler := handlers.NewPinHandler(pinService)
	commentHandler := handlers.NewCommentHandler(pinService)
	reactionHandler := handlers.NewReactionHandler(pinService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	categoryHandler := handlers.NewCategoryHandler()
	preferenceHandler := handlers.NewPreferenceHandler(flagRepo)
	wsHandler := ws.NewHandler(hub, authService)

	// ─── 9. HTTP Router ───
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMiddleware.Require(http.HandlerFunc(handler))
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"livemap"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/state", authHandler.State)

	// User
	mux.Handle("GET /api/users/me", auth(authHandler.Me))
	mux.Handle("PATCH /api/users/me/profile", auth(authHandler.UpdateProfile))
	mux.Handle("POST /api/users/me/avatar", auth(authHandler.UploadAvatar))

	// Pins
	//
	// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
	// tanımlanmalı. "/api/pins/favorites" → "/api/pins/{id}" öncesinde,
	// yoksa Go router "favorites" kelimesini bir pin ID olarak yorumlar.
	mux.Handle("GET /api/pins/favorites", auth(pinHandler.ListFavorites))
	mux.Handle("GET /api/pins", auth(pinHandler.List))
	mux.Handle("POST /api/pins", auth(pinHandler.Create))
	mux.Handle("GET /api/pins/{id}", auth(pinHandler.Get))
	mux.Handle("PATCH /api/pins/{id}", auth(pinHandler.Update))
	mux.Handle("DELETE /api/pins/{id}", auth(pinHandler.Delete))

	// Reactions & Favorites
	mux.Handle("GET /api/pins/{id}/reactions", auth(reactionHandler.Summary))
	mux.Handle("POST /api/pins/{id}/reactions", auth(reactionHandler.Toggle))
	mux.Handle("POST /api/pins/{id}/like", auth(reactionHandler.ToggleLike))
	mux.Handle("POST /api/pins/{id}/favorite", auth(reactionHandler.ToggleFavorite))

	// Comments
	mux.Handle("POST /api/pins/{id}/comments", auth(commentHandler.Create))
	mux.Handle("DELETE /api/pins/{pinId}/comments/{commentId}", auth(commentHandler.Delete))
	mux.Handle("POST /api/pins/{pinId}/comments/{commentId}/like", auth(commentHandler.ToggleLike))

	// Upload — pin/yorum medyası
	mux.Handle("POST /api/upload", auth(uploadHandler.Upload))

	// Categories — sabit metadata, auth gerektirmez
	mux.HandleFunc("GET /api/categories", categoryHandler.List)

	// Preferences
	mux.HandleFunc("GET /api/preferences/welcome", preferenceHandler.GetWelcome)
	mux.HandleFunc("POST /api/preferences/welcome", preferenceHandler.DismissWelcome)

	// Static file serving — yüklenen dosyalara erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// http.FileServer zaten ".." path'lerini reddeder; ek güvenlik için
	// sadece düz dosya isimlerini kabul edip subdirectory'leri reddediyoruz.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// JWT token URL query parameter olarak gönderilir: ws://server/ws?token=JWT
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// ─── 10. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // dev server
			"http://localhost:5173", // Vite dev
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 11. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 12. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// yeni request kabulü durur, mevcut request'ler 5sn içinde biter.
	hub.Shutdown()
	loginLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
