package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livemap/models"
	"livemap/pkg"
	"livemap/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestPin(title string) *models.Pin {
	return &models.Pin{
		Lat:      13.75,
		Lng:      100.5,
		Category: models.CategoryGeneral,
		Title:    title,
		UserID:   "u1",
		UserName: "Alice",
	}
}

func TestKVPinRepo_Create(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	pin := newTestPin("first")
	require.NoError(t, repo.Create(ctx, pin))

	t.Run("assigns id, timestamps and date", func(t *testing.T) {
		assert.NotEmpty(t, pin.ID)
		assert.WithinDuration(t, time.Now(), pin.CreatedAt, 5*time.Second)
		assert.Equal(t, pkg.LocalDateString(pin.CreatedAt), pin.Date)
	})

	t.Run("collections start empty, not nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, pin.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Comments)
		assert.NotNil(t, got.Likes)
		assert.NotNil(t, got.Reactions)
		assert.NotNil(t, got.Favorites)
		assert.Empty(t, got.Comments)
	})

	t.Run("GetByID on unknown pin returns ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}

func TestKVPinRepo_UpdateDelete(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	pin := newTestPin("original")
	require.NoError(t, repo.Create(ctx, pin))

	t.Run("update merges only provided fields", func(t *testing.T) {
		title := "edited"
		updated, err := repo.Update(ctx, pin.ID, &models.UpdatePinRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Title)
		assert.Equal(t, pin.Lat, updated.Lat)
		assert.Equal(t, models.CategoryGeneral, updated.Category)
	})

	t.Run("update on unknown pin returns ErrNotFound", func(t *testing.T) {
		title := "x"
		_, err := repo.Update(ctx, "missing", &models.UpdatePinRequest{Title: &title})
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("delete removes pin and reports it", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, pin.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, pin.ID)
		assert.ErrorIs(t, err, pkg.ErrNotFound)

		deleted, err = repo.Delete(ctx, pin.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestKVPinRepo_GetByDate(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	today := pkg.Today()

	a := newTestPin("today-a")
	b := newTestPin("today-b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	// date alanını elle geçmişe çek
	old := newTestPin("yesterday")
	old.Date = "2020-01-01"
	require.NoError(t, repo.Create(ctx, old))

	t.Run("filters by date field", func(t *testing.T) {
		pins, err := repo.GetByDate(ctx, today)
		require.NoError(t, err)
		assert.Len(t, pins, 2)

		pins, err = repo.GetByDate(ctx, "2020-01-01")
		require.NoError(t, err)
		require.Len(t, pins, 1)
		assert.Equal(t, "yesterday", pins[0].Title)
	})

	t.Run("empty date field falls back to local day of createdAt", func(t *testing.T) {
		// Eski kayıt simülasyonu: date alanı boş
		pins, err := repo.GetAll(ctx)
		require.NoError(t, err)
		for i := range pins {
			pins[i].Date = ""
		}
		require.NoError(t, repo.ReplaceAll(ctx, pins))

		got, err := repo.GetByDate(ctx, today)
		require.NoError(t, err)
		assert.Len(t, got, 3) // hepsi bugün oluşturuldu
	})
}

func TestKVPinRepo_Reactions(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	pin := newTestPin("reactions")
	require.NoError(t, repo.Create(ctx, pin))

	t.Run("toggle on sets reaction and derives likes", func(t *testing.T) {
		got, err := repo.ToggleReaction(ctx, pin.ID, "u1", models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionLike, got.Reactions["u1"])
		assert.Equal(t, []string{"u1"}, got.Likes)
	})

	t.Run("different kind overwrites, user keeps single reaction", func(t *testing.T) {
		got, err := repo.ToggleReaction(ctx, pin.ID, "u1", models.ReactionLove)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionLove, got.Reactions["u1"])
		assert.Len(t, got.Reactions, 1)
		// like olmayan tepki likes görünümünde yer almaz
		assert.Empty(t, got.Likes)
	})

	t.Run("same kind toggles off", func(t *testing.T) {
		got, err := repo.ToggleReaction(ctx, pin.ID, "u1", models.ReactionLove)
		require.NoError(t, err)
		assert.NotContains(t, got.Reactions, "u1")

		// Silinme store'a da işlemiş olmalı — taze okuma tepkiyi geri getirmez
		reread, err := repo.GetByID(ctx, pin.ID)
		require.NoError(t, err)
		assert.NotContains(t, reread.Reactions, "u1")
	})

	t.Run("ToggleLike is the like reaction", func(t *testing.T) {
		got, err := repo.ToggleLike(ctx, pin.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, models.ReactionLike, got.Reactions["u2"])
		assert.Equal(t, []string{"u2"}, got.Likes)

		got, err = repo.ToggleLike(ctx, pin.ID, "u2")
		require.NoError(t, err)
		assert.Empty(t, got.Likes)

		// Türetilmiş likes görünümü toggle-off'u geri yazmamalı:
		// taze okumada kullanıcı ne reactions'ta ne likes'ta görünür
		reread, err := repo.GetByID(ctx, pin.ID)
		require.NoError(t, err)
		assert.NotContains(t, reread.Reactions, "u2")
		assert.Empty(t, reread.Likes)
	})

	t.Run("unknown pin returns ErrNotFound", func(t *testing.T) {
		_, err := repo.ToggleReaction(ctx, "missing", "u1", models.ReactionLike)
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}

func TestKVPinRepo_Favorites(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	a := newTestPin("a")
	b := newTestPin("b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	t.Run("toggle adds and removes", func(t *testing.T) {
		got, err := repo.ToggleFavorite(ctx, a.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, got.Favorites)

		got, err = repo.ToggleFavorite(ctx, a.ID, "u1")
		require.NoError(t, err)
		assert.Empty(t, got.Favorites)
	})

	t.Run("GetFavorites filters by user", func(t *testing.T) {
		_, err := repo.ToggleFavorite(ctx, b.ID, "u1")
		require.NoError(t, err)
		_, err = repo.ToggleFavorite(ctx, a.ID, "u2")
		require.NoError(t, err)

		favs, err := repo.GetFavorites(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, "b", favs[0].Title)
	})
}

func TestKVPinRepo_Comments(t *testing.T) {
	repo := NewKVPinRepo(newTestStore(t))
	ctx := context.Background()

	pin := newTestPin("commented")
	require.NoError(t, repo.Create(ctx, pin))

	parent := &models.Comment{UserID: "u1", UserName: "Alice", Text: "parent"}
	require.NoError(t, repo.AddComment(ctx, pin.ID, parent))
	require.NotEmpty(t, parent.ID)

	reply1 := &models.Comment{UserID: "u2", UserName: "Bob", Text: "reply 1", ParentID: &parent.ID}
	reply2 := &models.Comment{UserID: "u3", UserName: "Cem", Text: "reply 2", ParentID: &parent.ID}
	other := &models.Comment{UserID: "u2", UserName: "Bob", Text: "unrelated"}
	require.NoError(t, repo.AddComment(ctx, pin.ID, reply1))
	require.NoError(t, repo.AddComment(ctx, pin.ID, reply2))
	require.NoError(t, repo.AddComment(ctx, pin.ID, other))

	t.Run("comments persist on the pin", func(t *testing.T) {
		got, err := repo.GetByID(ctx, pin.ID)
		require.NoError(t, err)
		assert.Len(t, got.Comments, 4)
		assert.Equal(t, pin.ID, got.Comments[0].PinID)
	})

	t.Run("toggle comment like", func(t *testing.T) {
		c, err := repo.ToggleCommentLike(ctx, pin.ID, parent.ID, "u5")
		require.NoError(t, err)
		assert.Equal(t, []string{"u5"}, c.Likes)

		c, err = repo.ToggleCommentLike(ctx, pin.ID, parent.ID, "u5")
		require.NoError(t, err)
		assert.Empty(t, c.Likes)
	})

	t.Run("deleting parent cascades to its replies only", func(t *testing.T) {
		deleted, err := repo.DeleteComment(ctx, pin.ID, parent.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := repo.GetByID(ctx, pin.ID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "unrelated", got.Comments[0].Text)
	})

	t.Run("deleting unknown comment reports false", func(t *testing.T) {
		deleted, err := repo.DeleteComment(ctx, pin.ID, "missing")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestKVPinRepo_LegacyNormalization(t *testing.T) {
	s := newTestStore(t)
	repo := NewKVPinRepo(s)
	ctx := context.Background()

	// Eski formatta kaydedilmiş bir pin'i doğrudan store'a yaz:
	// tekil image alanı, reactions yok, likes listesi var.
	raw := `[{
		"id": "1700000000000",
		"lat": 13.75, "lng": 100.5,
		"category": "general",
		"title": "legacy",
		"userId": "u1", "userName": "Alice",
		"createdAt": "2023-11-14T12:00:00Z",
		"image": "/api/uploads/old.jpg",
		"likes": ["u2", "u1"]
	}]`
	require.NoError(t, s.Set(ctx, "live_map_pins", []byte(raw)))

	got, err := repo.GetByID(ctx, "1700000000000")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/uploads/old.jpg"}, got.Images)
	assert.Equal(t, models.ReactionLike, got.Reactions["u1"])
	assert.Equal(t, models.ReactionLike, got.Reactions["u2"])
	assert.Equal(t, []string{"u1", "u2"}, got.Likes)
	assert.NotNil(t, got.Comments)
	assert.NotNil(t, got.Favorites)
}
