// Package ratelimit — IP bazlı login rate limiting.
//
// Brute-force saldırılarına karşı login endpoint'ini korur: her IP için
// sabit pencere (fixed window) sayacı tutulur, pencere içinde limit
// aşılırsa istek reddedilir. Başarılı login sonrası Reset() ile sayaç
// temizlenir.
//
// Neden in-memory? Tek instance deploy için Redis gibi harici bir
// bağımlılık gereksiz; sync.Mutex korumalı map yeterli. Süresi dolmuş
// kayıtlar arka plan goroutine'i ile temizlenir (memory leak engeli).
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// entry, bir IP için deneme sayısını ve pencere başlangıcını tutar.
type entry struct {
	count int
	start time.Time
}

// LoginRateLimiter, IP başına login denemelerini sınırlar.
//
// Kullanım:
//
//	limiter := NewLoginRateLimiter(5, 2*time.Minute)
//	if !limiter.Allow(ip) { // 429 dön }
//	// başarılı login'de:
//	limiter.Reset(ip)
type LoginRateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	maxAttempts int
	window      time.Duration
	stop        chan struct{}
}

// NewLoginRateLimiter, yeni rate limiter oluşturur ve temizleme
// goroutine'ini başlatır.
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		entries:     make(map[string]*entry),
		maxAttempts: maxAttempts,
		window:      window,
		stop:        make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow, IP'nin yeni bir login denemesine izin verilip verilmediğini döner.
// Her çağrı sayacı artırır; başarılı login'de caller Reset() çağırmalıdır.
func (rl *LoginRateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[ip]
	if !ok || now.Sub(e.start) > rl.window {
		// İlk istek veya pencere dolmuş — yeni pencere başlat
		rl.entries[ip] = &entry{count: 1, start: now}
		return true
	}

	e.count++
	return e.count <= rl.maxAttempts
}

// Reset, başarılı login sonrası IP sayacını temizler. Temizlenmezse
// meşru kullanıcı sonraki denemelerinde gereksiz yere bloke olur.
func (rl *LoginRateLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.entries, ip)
}

// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner (HTTP Retry-After header değeri).
func (rl *LoginRateLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[ip]
	if !ok {
		return 0
	}
	remaining := rl.window - time.Since(e.start)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // yukarı yuvarla
}

// Stop, temizleme goroutine'ini durdurur.
func (rl *LoginRateLimiter) Stop() {
	close(rl.stop)
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *LoginRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, e := range rl.entries {
		if now.Sub(e.start) > rl.window {
			delete(rl.entries, ip)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Reverse proxy arkasında RemoteAddr her zaman proxy'nin adresidir;
// gerçek IP önce X-Forwarded-For (ilk değer), sonra X-Real-IP
// header'ında aranır.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir metne çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)".
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
