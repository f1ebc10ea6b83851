package repository

import "context"

// Flag anahtarları — küçük, tek değerli işaretler.
const (
	// FlagLastDailyReset, günlük temizliğin en son çalıştığı yerel gün (YYYY-MM-DD).
	FlagLastDailyReset = "lastDailyReset"
	// FlagDateMigration, tek seferlik date alanı migration'ının tamamlandığını işaretler.
	FlagDateMigration = "pins_date_migration_v1"
	// FlagWelcomeDismissed, ilk açılış karşılama ekranının kapatıldığını işaretler.
	FlagWelcomeDismissed = "welcomeDismissed"
)

// FlagRepository, tek değerli işaret anahtarları için interface.
// Migration guard'ı, günlük temizlik marker'ı ve karşılama ekranı
// durumu gibi küçük string değerler burada yaşar.
type FlagRepository interface {
	// Get, flag değerini döner. Flag yoksa boş string döner — hata değil.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
