package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
	"livemap/store"
)

type maintenanceFixture struct {
	svc      MaintenanceService
	pinRepo  repository.PinRepository
	flagRepo repository.FlagRepository
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	pinRepo := repository.NewKVPinRepo(s)
	flagRepo := repository.NewKVFlagRepo(s)
	return &maintenanceFixture{
		svc:      NewMaintenanceService(pinRepo, flagRepo),
		pinRepo:  pinRepo,
		flagRepo: flagRepo,
	}
}

// seedPin, createdAt'i kontrol edilebilen bir pin'i ReplaceAll ile yazar.
func (f *maintenanceFixture) seedPin(t *testing.T, ctx context.Context, title string, createdAt time.Time, date string) {
	t.Helper()
	pins, err := f.pinRepo.GetAll(ctx)
	require.NoError(t, err)

	pins = append(pins, models.Pin{
		ID:        pkg.NewID(),
		Lat:       13.75,
		Lng:       100.5,
		Category:  models.CategoryGeneral,
		Title:     title,
		UserID:    "u1",
		UserName:  "Alice",
		CreatedAt: createdAt,
		Date:      date,
	})
	require.NoError(t, f.pinRepo.ReplaceAll(ctx, pins))
}

func TestMaintenanceService_PerformDailyReset(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.seedPin(t, ctx, "fresh", now, pkg.Today())
	f.seedPin(t, ctx, "almost-day-old", now.Add(-23*time.Hour), pkg.LocalDateString(now.Add(-23*time.Hour)))
	f.seedPin(t, ctx, "stale", now.Add(-25*time.Hour), pkg.LocalDateString(now.Add(-25*time.Hour)))

	removed, err := f.svc.PerformDailyReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	pins, err := f.pinRepo.GetAll(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(pins))
	for _, p := range pins {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"fresh", "almost-day-old"}, titles)

	t.Run("second run removes nothing", func(t *testing.T) {
		removed, err := f.svc.PerformDailyReset(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
}

func TestMaintenanceService_CheckAndResetDaily(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()

	f.seedPin(t, ctx, "stale", time.Now().Add(-48*time.Hour), "old")

	t.Run("first run sweeps and writes today's marker", func(t *testing.T) {
		require.NoError(t, f.svc.CheckAndResetDaily(ctx))

		marker, err := f.flagRepo.Get(ctx, repository.FlagLastDailyReset)
		require.NoError(t, err)
		assert.Equal(t, pkg.Today(), marker)

		pins, err := f.pinRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})

	t.Run("same-day second run is a no-op", func(t *testing.T) {
		// marker bugüne eşit — eski pin eklesek bile süpürülmez
		f.seedPin(t, ctx, "survivor", time.Now().Add(-48*time.Hour), "old")
		require.NoError(t, f.svc.CheckAndResetDaily(ctx))

		pins, err := f.pinRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, pins, 1)
	})

	t.Run("stale marker triggers a sweep", func(t *testing.T) {
		require.NoError(t, f.flagRepo.Set(ctx, repository.FlagLastDailyReset, "2000-01-01"))
		require.NoError(t, f.svc.CheckAndResetDaily(ctx))

		pins, err := f.pinRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})
}

func TestMaintenanceService_MigratePinDates(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.seedPin(t, ctx, "legacy", now, "")            // date alanı boş
	f.seedPin(t, ctx, "skewed", now, "1999-12-31")  // UTC kaymasıyla yanlış yazılmış
	f.seedPin(t, ctx, "correct", now, pkg.LocalDateString(now))

	t.Run("recomputes every date from createdAt local day", func(t *testing.T) {
		require.NoError(t, f.svc.MigratePinDates(ctx))

		pins, err := f.pinRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, pins, 3)
		for _, p := range pins {
			// Boş da yanlış da olsa hedef aynı: createdAt'in yerel günü
			assert.Equal(t, pkg.LocalDateString(now), p.Date, "pin %q", p.Title)
		}

		flag, err := f.flagRepo.Get(ctx, repository.FlagDateMigration)
		require.NoError(t, err)
		assert.NotEmpty(t, flag)
	})

	t.Run("guard flag makes second run a no-op", func(t *testing.T) {
		f.seedPin(t, ctx, "later-legacy", now, "")
		require.NoError(t, f.svc.MigratePinDates(ctx))

		pins, err := f.pinRepo.GetAll(ctx)
		require.NoError(t, err)
		for _, p := range pins {
			if p.Title == "later-legacy" {
				assert.Equal(t, "", p.Date)
			}
		}
	})
}

func TestMaintenanceService_Startup(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()

	f.seedPin(t, ctx, "legacy-stale", time.Now().Add(-48*time.Hour), "")

	require.NoError(t, f.svc.Startup(ctx))

	// migration flag yazıldı, günlük temizlik eski pin'i süpürdü
	flag, err := f.flagRepo.Get(ctx, repository.FlagDateMigration)
	require.NoError(t, err)
	assert.NotEmpty(t, flag)

	marker, err := f.flagRepo.Get(ctx, repository.FlagLastDailyReset)
	require.NoError(t, err)
	assert.Equal(t, pkg.Today(), marker)

	pins, err := f.pinRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, pins)
}
