// Package store, uygulamanın key-value kalıcılık katmanını yönetir.
//
// Tüm uygulama verisi sabit anahtarlar altında JSON dokümanı olarak saklanır:
//
//	live_map_users  → User[]
//	live_map_pins   → Pin[]
//	live_map_auth   → { user, isAuthenticated }
//	lastDailyReset  → "YYYY-MM-DD"
//
// Altyapı olarak tek tablolu bir SQLite veritabanı kullanılır
// (kv: key TEXT PRIMARY KEY, value TEXT). İlişkisel şema yok —
// repository katmanı her işlemde ilgili koleksiyonu bütün olarak okur,
// bellekte değiştirir ve bütün olarak geri yazar (last-writer-wins).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver — CGO gerekmez, her platformda çalışır
)

// Store, key-value veritabanı bağlantısını saran struct.
// *sql.DB Go'nun built-in connection pool'udur — thread-safe'dir.
type Store struct {
	db *sql.DB
}

// New, SQLite dosyasını açar ve kv tablosunu oluşturur (yoksa).
func New(dbPath string) (*Store, error) {
	// Veritabanı dosyasının bulunduğu dizini oluştur (yoksa)
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// "_pragma=journal_mode(WAL)" → Write-Ahead Logging: eşzamanlı okuma/yazma performansı
	// modernc.org/sqlite driver adı "sqlite" (mattn'ınki "sqlite3" idi)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	log.Println("[store] key-value store ready")
	return &Store{db: db}, nil
}

// Close, veritabanı bağlantısını kapatır.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get, bir anahtarın ham değerini döner. Anahtar yoksa found=false döner.
func (s *Store) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	var raw string
	err = s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return []byte(raw), true, nil
}

// Set, bir anahtarın değerini yazar (varsa üzerine).
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete, bir anahtarı siler. Anahtar yoksa sessizce başarılı sayılır.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// ReadJSON, bir anahtarın JSON değerini dest'e parse eder.
//
// Hata politikası: anahtarın olmaması, okuma hatası veya bozuk JSON
// çağırana hata olarak DÖNMEZ — loglanır ve dest dokunulmadan bırakılır
// (çağıran zero-value/boş koleksiyon ile devam eder). Repository katmanı
// böylece bozuk storage'ı "veri yok" gibi ele alır ve uygulama ayakta kalır.
// Dönen bool, değerin başarıyla parse edilip edilmediğini belirtir.
func (s *Store) ReadJSON(ctx context.Context, key string, dest any) bool {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		log.Printf("[store] error reading key %q: %v", key, err)
		return false
	}
	if !found {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[store] malformed JSON under key %q, treating as empty: %v", key, err)
		return false
	}
	return true
}

// WriteJSON, value'yu JSON'a serialize edip anahtara yazar.
// Yazma hatası maskelenmez — okumanın aksine, kaybolan bir yazma
// sessizce yutulursa kullanıcı verisi kaybolur.
func (s *Store) WriteJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
