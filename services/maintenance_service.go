package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
)

// pinTTL: pin'lerin yaşam süresi. Günlük temizlik bu eşikten eski
// pin'leri koleksiyondan düşürür.
const pinTTL = 24 * time.Hour

// MaintenanceService, açılışta çalışan bakım rutinleri: tek seferlik
// date migration'ı ve günlük pin temizliği.
//
// Rutinler idempotent'tir — migration flag guard'ı ile, temizlik yerel
// gün marker'ı ile korunur. Sunucu aynı gün içinde kaç kez yeniden
// başlarsa başlasın temizlik bir kez çalışır.
type MaintenanceService interface {
	// Startup, açılış sırasını çalıştırır: önce migration, sonra günlük
	// temizlik kontrolü.
	Startup(ctx context.Context) error
	// MigratePinDates, date alanı boş eski pin'lere createdAt'in yerel
	// gününü yazar. Guard flag'i doluysa hiçbir şey yapmaz.
	MigratePinDates(ctx context.Context) error
	// CheckAndResetDaily, marker bugünden farklıysa PerformDailyReset
	// çalıştırır ve marker'ı bugüne çeker.
	CheckAndResetDaily(ctx context.Context) error
	// PerformDailyReset, 24 saatten eski pin'leri düşürür; kaldırılan
	// pin sayısını döner.
	PerformDailyReset(ctx context.Context) (int, error)
}

type maintenanceService struct {
	pinRepo  repository.PinRepository
	flagRepo repository.FlagRepository
}

// NewMaintenanceService, constructor.
func NewMaintenanceService(pinRepo repository.PinRepository, flagRepo repository.FlagRepository) MaintenanceService {
	return &maintenanceService{
		pinRepo:  pinRepo,
		flagRepo: flagRepo,
	}
}

func (s *maintenanceService) Startup(ctx context.Context) error {
	if err := s.MigratePinDates(ctx); err != nil {
		return fmt.Errorf("date migration failed: %w", err)
	}
	if err := s.CheckAndResetDaily(ctx); err != nil {
		return fmt.Errorf("daily reset check failed: %w", err)
	}
	return nil
}

func (s *maintenanceService) MigratePinDates(ctx context.Context) error {
	done, err := s.flagRepo.Get(ctx, repository.FlagDateMigration)
	if err != nil {
		return err
	}
	if done != "" {
		return nil // migration zaten çalışmış
	}

	pins, err := s.pinRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	// Her pin için date yeniden hesaplanır — migration'ın varlık sebebi,
	// daha önce UTC gün sınırıyla YANLIŞ yazılmış date değerlerini yerel
	// takvim gününe çekmek. Sadece boş olanları doldurmak kaymış kayıtları
	// atlardı.
	migrated := 0
	for i := range pins {
		want := pkg.LocalDateString(pins[i].CreatedAt)
		if pins[i].Date != want {
			pins[i].Date = want
			migrated++
		}
	}

	if migrated > 0 {
		if err := s.pinRepo.ReplaceAll(ctx, pins); err != nil {
			return err
		}
	}

	if err := s.flagRepo.Set(ctx, repository.FlagDateMigration, "true"); err != nil {
		return err
	}

	log.Printf("[maintenance] date migration complete: %d pin(s) migrated", migrated)
	return nil
}

func (s *maintenanceService) CheckAndResetDaily(ctx context.Context) error {
	today := pkg.Today()

	last, err := s.flagRepo.Get(ctx, repository.FlagLastDailyReset)
	if err != nil {
		return err
	}
	if last == today {
		return nil // bugünün temizliği zaten yapılmış
	}

	removed, err := s.PerformDailyReset(ctx)
	if err != nil {
		return err
	}

	if err := s.flagRepo.Set(ctx, repository.FlagLastDailyReset, today); err != nil {
		return err
	}

	log.Printf("[maintenance] daily reset complete: %d pin(s) removed", removed)
	return nil
}

func (s *maintenanceService) PerformDailyReset(ctx context.Context) (int, error) {
	pins, err := s.pinRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-pinTTL)
	kept := make([]models.Pin, 0, len(pins))
	for _, pin := range pins {
		if pin.CreatedAt.After(cutoff) {
			kept = append(kept, pin)
		}
	}

	removed := len(pins) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.pinRepo.ReplaceAll(ctx, kept); err != nil {
		return 0, err
	}

	return removed, nil
}
