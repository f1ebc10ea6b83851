package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
	"livemap/store"
	"livemap/ws"
)

func newPinService(t *testing.T) (PinService, repository.PinRepository) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	pinRepo := repository.NewKVPinRepo(s)
	return NewPinService(pinRepo, ws.NewHub()), pinRepo
}

func testUser(id, name string) *models.User {
	return &models.User{ID: id, Name: name, Email: id + "@example.com"}
}

func validPinReq(title string) *models.CreatePinRequest {
	return &models.CreatePinRequest{
		Lat:      13.75,
		Lng:      100.5,
		Category: models.CategoryEvent,
		Title:    title,
	}
}

func TestPinService_Create(t *testing.T) {
	svc, _ := newPinService(t)
	ctx := context.Background()
	alice := testUser("u1", "Alice")

	t.Run("author fields come from the actor, not the request", func(t *testing.T) {
		pin, err := svc.Create(ctx, alice, validPinReq("meetup"))
		require.NoError(t, err)
		assert.Equal(t, "u1", pin.UserID)
		assert.Equal(t, "Alice", pin.UserName)
		assert.NotEmpty(t, pin.ID)
	})

	t.Run("invalid request is a bad request", func(t *testing.T) {
		req := validPinReq("ok")
		req.Category = "bogus"
		_, err := svc.Create(ctx, alice, req)
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})
}

func TestPinService_Ownership(t *testing.T) {
	svc, _ := newPinService(t)
	ctx := context.Background()
	alice := testUser("u1", "Alice")
	bob := testUser("u2", "Bob")

	pin, err := svc.Create(ctx, alice, validPinReq("owned"))
	require.NoError(t, err)

	t.Run("non-owner cannot update", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.Update(ctx, bob, pin.ID, &models.UpdatePinRequest{Title: &title})
		assert.ErrorIs(t, err, pkg.ErrForbidden)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, bob, pin.ID)
		assert.ErrorIs(t, err, pkg.ErrForbidden)
	})

	t.Run("owner can update and delete", func(t *testing.T) {
		title := "renamed"
		updated, err := svc.Update(ctx, alice, pin.ID, &models.UpdatePinRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)

		require.NoError(t, svc.Delete(ctx, alice, pin.ID))
		_, err = svc.Get(ctx, alice, pin.ID)
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}

func TestPinService_Comments(t *testing.T) {
	svc, _ := newPinService(t)
	ctx := context.Background()
	alice := testUser("u1", "Alice")
	bob := testUser("u2", "Bob")
	carol := testUser("u3", "Carol")

	pin, err := svc.Create(ctx, alice, validPinReq("discussed"))
	require.NoError(t, err)

	parent, err := svc.AddComment(ctx, bob, pin.ID, &models.CreateCommentRequest{Text: "first"})
	require.NoError(t, err)

	t.Run("author snapshot comes from actor", func(t *testing.T) {
		assert.Equal(t, "u2", parent.UserID)
		assert.Equal(t, "Bob", parent.UserName)
	})

	t.Run("reply to a reply is rejected", func(t *testing.T) {
		reply, err := svc.AddComment(ctx, carol, pin.ID, &models.CreateCommentRequest{
			Text:     "reply",
			ParentID: &parent.ID,
		})
		require.NoError(t, err)

		_, err = svc.AddComment(ctx, alice, pin.ID, &models.CreateCommentRequest{
			Text:     "nested",
			ParentID: &reply.ID,
		})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})

	t.Run("reply to unknown parent is not found", func(t *testing.T) {
		missing := "nope"
		_, err := svc.AddComment(ctx, alice, pin.ID, &models.CreateCommentRequest{
			Text:     "orphan",
			ParentID: &missing,
		})
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("stranger cannot delete a comment", func(t *testing.T) {
		err := svc.DeleteComment(ctx, carol, pin.ID, parent.ID)
		assert.ErrorIs(t, err, pkg.ErrForbidden)
	})

	t.Run("pin owner can delete any comment", func(t *testing.T) {
		err := svc.DeleteComment(ctx, alice, pin.ID, parent.ID)
		require.NoError(t, err)

		got, err := svc.Get(ctx, alice, pin.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Comments) // cevap da cascade ile gitti
	})

	t.Run("comment author can delete own comment", func(t *testing.T) {
		c, err := svc.AddComment(ctx, bob, pin.ID, &models.CreateCommentRequest{Text: "mine"})
		require.NoError(t, err)
		require.NoError(t, svc.DeleteComment(ctx, bob, pin.ID, c.ID))
	})
}

func TestPinService_Reactions(t *testing.T) {
	svc, _ := newPinService(t)
	ctx := context.Background()
	alice := testUser("u1", "Alice")
	bob := testUser("u2", "Bob")

	pin, err := svc.Create(ctx, alice, validPinReq("reacted"))
	require.NoError(t, err)

	t.Run("invalid reaction kind is a bad request", func(t *testing.T) {
		_, err := svc.ToggleReaction(ctx, bob, pin.ID, "meh")
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})

	t.Run("summary counts per kind", func(t *testing.T) {
		_, err := svc.ToggleReaction(ctx, alice, pin.ID, models.ReactionLove)
		require.NoError(t, err)
		_, err = svc.ToggleLike(ctx, bob, pin.ID)
		require.NoError(t, err)

		summary, err := svc.ReactionSummary(ctx, pin.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Counts[models.ReactionLove])
		assert.Equal(t, 1, summary.Counts[models.ReactionLike])
		assert.Equal(t, 0, summary.Counts[models.ReactionSad])
		assert.Equal(t, 2, summary.Total)
	})

	t.Run("favorites feed lists only the viewer's favorites", func(t *testing.T) {
		other, err := svc.Create(ctx, alice, validPinReq("other"))
		require.NoError(t, err)

		_, err = svc.ToggleFavorite(ctx, bob, other.ID)
		require.NoError(t, err)

		favs, err := svc.ListFavorites(ctx, bob)
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, other.ID, favs[0].ID)

		favs, err = svc.ListFavorites(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, favs)
	})
}

func TestPinService_ViewerOverlay(t *testing.T) {
	svc, _ := newPinService(t)
	ctx := context.Background()

	alice := testUser("u1", "Alice")
	pin, err := svc.Create(ctx, alice, validPinReq("snapshot"))
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, alice, pin.ID, &models.CreateCommentRequest{Text: "hi"})
	require.NoError(t, err)

	// Profil değişti — storage'daki snapshot eski isimle durur,
	// okuma sırasında viewer'ın kendi kayıtları güncel profille gösterilir.
	renamed := testUser("u1", "Alice Renamed")

	t.Run("own pins and comments show the live profile", func(t *testing.T) {
		got, err := svc.Get(ctx, renamed, pin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Renamed", got.UserName)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "Alice Renamed", got.Comments[0].UserName)
	})

	t.Run("other viewers still see the stored snapshot", func(t *testing.T) {
		bob := testUser("u2", "Bob")
		got, err := svc.Get(ctx, bob, pin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.UserName)
	})

	t.Run("date filter in List", func(t *testing.T) {
		pins, err := svc.List(ctx, renamed, pkg.Today())
		require.NoError(t, err)
		assert.Len(t, pins, 1)

		pins, err = svc.List(ctx, renamed, "1999-01-01")
		require.NoError(t, err)
		assert.Empty(t, pins)
	})
}
